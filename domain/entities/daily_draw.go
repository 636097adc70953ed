package entities

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDraw         = errors.New("invalid draw")
	ErrDrawAlreadyRecorded = errors.New("a draw is already recorded for this date")
)

// DailyDraw is the set of numbers announced for a game on a calendar date.
// Draws are append-only.
type DailyDraw struct {
	ID        int64     `db:"id" json:"id"`
	GameID    int64     `db:"game_id" json:"game_id"`
	DrawDate  time.Time `db:"draw_date" json:"draw_date"`
	Numbers   []int     `db:"numbers" json:"numbers"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ValidateDrawNumbers checks drawn numbers against the game rules
func ValidateDrawNumbers(numbers []int, cfg GameConfig) error {
	if len(numbers) == 0 {
		return fmt.Errorf("%w: no numbers drawn", ErrInvalidDraw)
	}
	if err := validateNumberSet(numbers, cfg.MaxNumber); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDraw, err)
	}
	return nil
}

// TruncateToDate returns midnight UTC of t's calendar date
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
