package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token     string
	ChannelID string
}

// Bot owns the Discord session used for announcements
type Bot struct {
	config   Config
	session  *discordgo.Session
	notifier *DiscordNotifier
}

// New creates a Discord session and the notifier posting through it
func New(config Config) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds

	return &Bot{
		config:   config,
		session:  dg,
		notifier: NewDiscordNotifier(dg, config.ChannelID),
	}, nil
}

// Open connects to the Discord gateway
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening discord connection: %w", err)
	}
	log.WithField("channelID", b.config.ChannelID).Info("Discord session opened")
	return nil
}

// Notifier returns the winner notifier bound to this session
func (b *Bot) Notifier() *DiscordNotifier {
	return b.notifier
}

// Close closes the Discord session
func (b *Bot) Close() error {
	return b.session.Close()
}
