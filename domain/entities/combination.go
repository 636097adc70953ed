package entities

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidCombination   = errors.New("invalid combination")
	ErrDuplicateCombination = errors.New("duplicate combination")
)

// Combination is a player's chosen sequence of numbers.
// Numbers are fixed once validated; Hits is derived from the draw history.
type Combination struct {
	ID        int64     `db:"id" json:"id"`
	GameID    int64     `db:"game_id" json:"game_id"`
	PlayerID  int64     `db:"player_id" json:"player_id"`
	Numbers   []int     `db:"numbers" json:"numbers"`
	Hits      int       `db:"hits" json:"hits"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Key returns the canonical form of the number set
func (c *Combination) Key() string {
	return NumbersKey(c.Numbers)
}

// IsWinning reports whether the combination reached the threshold
func (c *Combination) IsWinning(requiredHits int) bool {
	return c.Hits == requiredHits
}

// ValidateCombination checks a number sequence against the game rules
func ValidateCombination(numbers []int, cfg GameConfig) error {
	if len(numbers) != cfg.NumbersPerSequence {
		return fmt.Errorf("%w: expected %d numbers, got %d", ErrInvalidCombination, cfg.NumbersPerSequence, len(numbers))
	}
	if err := validateNumberSet(numbers, cfg.MaxNumber); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCombination, err)
	}
	return nil
}

// NormalizeNumbers returns a sorted copy of numbers
func NormalizeNumbers(numbers []int) []int {
	out := make([]int, len(numbers))
	copy(out, numbers)
	sort.Ints(out)
	return out
}

// NumbersKey renders a number set as a sorted, dash separated string
func NumbersKey(numbers []int) string {
	sorted := NormalizeNumbers(numbers)
	parts := make([]string, len(sorted))
	for i, n := range sorted {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}

func validateNumberSet(numbers []int, maxNumber int) error {
	seen := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		if n < 1 || n > maxNumber {
			return fmt.Errorf("number %d out of range [1, %d]", n, maxNumber)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("number %d repeated", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}
