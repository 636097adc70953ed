package common

// ColorGold is the embed color of winner announcements
const ColorGold = 0xF1C40F

// Embed limits enforced by Discord
const (
	MaxEmbedDescription = 4096
	MaxFieldValue       = 1024
)
