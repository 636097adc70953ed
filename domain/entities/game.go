package entities

import (
	"errors"
	"fmt"
	"time"
)

// GameStatus represents the lifecycle state of a game
type GameStatus string

const (
	GameStatusActive   GameStatus = "active"
	GameStatusClosed   GameStatus = "closed"
	GameStatusCanceled GameStatus = "canceled"
)

// Game configuration defaults
const (
	DefaultNumbersPerSequence = 6
	DefaultRequiredHits       = 6
	DefaultMaxNumber          = 80
)

var (
	ErrInvalidGameConfig       = errors.New("invalid game configuration")
	ErrGameNotActive           = errors.New("game is not active")
	ErrInvalidStatusTransition = errors.New("invalid game status transition")
)

// IsValid returns true if the status is a known game status
func (s GameStatus) IsValid() bool {
	switch s {
	case GameStatusActive, GameStatusClosed, GameStatusCanceled:
		return true
	}
	return false
}

// CanTransitionTo reports whether a game may move from s to next.
// Closed and canceled are terminal.
func (s GameStatus) CanTransitionTo(next GameStatus) bool {
	return s == GameStatusActive && (next == GameStatusClosed || next == GameStatusCanceled)
}

// GameConfig holds the rules a game is played under
type GameConfig struct {
	NumbersPerSequence    int     `db:"numbers_per_sequence" json:"numbers_per_sequence"`
	RequiredHits          int     `db:"required_hits" json:"required_hits"`
	MaxNumber             int     `db:"max_number" json:"max_number"`
	SequencePrice         int64   `db:"sequence_price" json:"sequence_price"`                   // In cents
	AdminProfitPercentage float64 `db:"admin_profit_percentage" json:"admin_profit_percentage"` // 0..100
	AutoCloseOnWin        bool    `db:"auto_close_on_win" json:"auto_close_on_win"`
}

// WithDefaults fills zero-valued fields with the package defaults
func (c GameConfig) WithDefaults() GameConfig {
	if c.NumbersPerSequence == 0 {
		c.NumbersPerSequence = DefaultNumbersPerSequence
	}
	if c.RequiredHits == 0 {
		c.RequiredHits = c.NumbersPerSequence
	}
	if c.MaxNumber == 0 {
		c.MaxNumber = DefaultMaxNumber
	}
	return c
}

// Validate checks the configuration is playable
func (c GameConfig) Validate() error {
	switch {
	case c.NumbersPerSequence < 1:
		return fmt.Errorf("%w: numbers per sequence must be positive", ErrInvalidGameConfig)
	case c.RequiredHits < 1 || c.RequiredHits > c.NumbersPerSequence:
		return fmt.Errorf("%w: required hits must be between 1 and %d", ErrInvalidGameConfig, c.NumbersPerSequence)
	case c.MaxNumber < c.NumbersPerSequence:
		return fmt.Errorf("%w: max number %d cannot hold %d unique numbers", ErrInvalidGameConfig, c.MaxNumber, c.NumbersPerSequence)
	case c.SequencePrice < 0:
		return fmt.Errorf("%w: sequence price cannot be negative", ErrInvalidGameConfig)
	case c.AdminProfitPercentage < 0 || c.AdminProfitPercentage > 100:
		return fmt.Errorf("%w: admin profit percentage must be between 0 and 100", ErrInvalidGameConfig)
	}
	return nil
}

// Threshold returns the number of hits a combination needs to win
func (c GameConfig) Threshold() int {
	if c.RequiredHits <= 0 {
		return DefaultRequiredHits
	}
	return c.RequiredHits
}

// Game is the aggregate root for a lottery pool.
// Players, draws and winners are owned by and deleted with their game.
type Game struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Status    GameStatus `db:"status" json:"status"`
	OwnerID   string     `db:"owner_id" json:"owner_id"`
	StartedAt time.Time  `db:"started_at" json:"started_at"`
	EndedAt   *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	Config    GameConfig `json:"config"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// IsActive returns true if the game still accepts draws and player changes
func (g *Game) IsActive() bool {
	return g.Status == GameStatusActive
}

// Close ends the game
func (g *Game) Close(now time.Time) error {
	return g.transition(GameStatusClosed, now)
}

// Cancel aborts the game
func (g *Game) Cancel(now time.Time) error {
	return g.transition(GameStatusCanceled, now)
}

func (g *Game) transition(next GameStatus, now time.Time) error {
	if !g.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, g.Status, next)
	}
	g.Status = next
	g.EndedAt = &now
	return nil
}
