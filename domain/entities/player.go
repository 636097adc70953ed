package entities

import "time"

// Player is a participant in a game with one or more combinations
type Player struct {
	ID           int64          `db:"id" json:"id"`
	GameID       int64          `db:"game_id" json:"game_id"`
	Name         string         `db:"name" json:"name"`
	Combinations []*Combination `json:"combinations"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// BestHits returns the highest hit count across the player's combinations
func (p *Player) BestHits() int {
	best := 0
	for _, c := range p.Combinations {
		if c.Hits > best {
			best = c.Hits
		}
	}
	return best
}

// WinningCombinations returns the combinations whose hits equal requiredHits
func (p *Player) WinningCombinations(requiredHits int) []*Combination {
	var winning []*Combination
	for _, c := range p.Combinations {
		if c.IsWinning(requiredHits) {
			winning = append(winning, c)
		}
	}
	return winning
}

// HasWinningCombination reports whether any combination reached requiredHits
func (p *Player) HasWinningCombination(requiredHits int) bool {
	for _, c := range p.Combinations {
		if c.IsWinning(requiredHits) {
			return true
		}
	}
	return false
}

// FindCombination returns the combination with the given ID, or nil
func (p *Player) FindCombination(id int64) *Combination {
	for _, c := range p.Combinations {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// HasCombination reports whether the player already holds this number set
func (p *Player) HasCombination(numbers []int) bool {
	key := NumbersKey(numbers)
	for _, c := range p.Combinations {
		if c.Key() == key {
			return true
		}
	}
	return false
}
