package dto

import (
	"bolao/domain/entities"
)

// CreateGameRequest carries the fields an administrator sets on a new game.
// Zero numeric fields and a nil AutoCloseOnWin take the service defaults.
type CreateGameRequest struct {
	Name                  string  `json:"name"`
	OwnerID               string  `json:"owner_id"`
	NumbersPerSequence    int     `json:"numbers_per_sequence"`
	RequiredHits          int     `json:"required_hits"`
	MaxNumber             int     `json:"max_number"`
	SequencePrice         int64   `json:"sequence_price"`
	AdminProfitPercentage float64 `json:"admin_profit_percentage"`
	AutoCloseOnWin        *bool   `json:"auto_close_on_win"`
}

// GameConfig converts the request into game rules, taking the auto-close
// flag from defaults when the request leaves it unset
func (r CreateGameRequest) GameConfig(defaults entities.GameConfig) entities.GameConfig {
	autoClose := defaults.AutoCloseOnWin
	if r.AutoCloseOnWin != nil {
		autoClose = *r.AutoCloseOnWin
	}

	return entities.GameConfig{
		NumbersPerSequence:    r.NumbersPerSequence,
		RequiredHits:          r.RequiredHits,
		MaxNumber:             r.MaxNumber,
		SequencePrice:         r.SequencePrice,
		AdminProfitPercentage: r.AdminProfitPercentage,
		AutoCloseOnWin:        autoClose,
	}
}

// AddPlayerRequest registers a player with their initial combinations
type AddPlayerRequest struct {
	Name         string  `json:"name"`
	Combinations [][]int `json:"combinations"`
}

// RenamePlayerRequest changes a player's display name
type RenamePlayerRequest struct {
	Name string `json:"name"`
}

// AddCombinationRequest adds one combination to a player
type AddCombinationRequest struct {
	Numbers []int `json:"numbers"`
}

// AddDrawRequest records the numbers drawn on a date (YYYY-MM-DD)
type AddDrawRequest struct {
	Date    string `json:"date"`
	Numbers []int  `json:"numbers"`
}
