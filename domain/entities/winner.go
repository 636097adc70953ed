package entities

import (
	"errors"
	"time"
)

// ErrCombinationHasWinner is returned when removing a combination that already won
var ErrCombinationHasWinner = errors.New("combination is referenced by a winner")

// Winner records a winning combination. There is at most one per
// (game, player, combination).
type Winner struct {
	ID            int64     `db:"id" json:"id"`
	GameID        int64     `db:"game_id" json:"game_id"`
	PlayerID      int64     `db:"player_id" json:"player_id"`
	CombinationID int64     `db:"combination_id" json:"combination_id"`
	PrizeAmount   *int64    `db:"prize_amount" json:"prize_amount,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Key returns the uniqueness key of the record
func (w *Winner) Key() WinnerKey {
	return WinnerKey{GameID: w.GameID, PlayerID: w.PlayerID, CombinationID: w.CombinationID}
}

// WinnerKey identifies a winning (game, player, combination) triple
type WinnerKey struct {
	GameID        int64 `json:"game_id"`
	PlayerID      int64 `json:"player_id"`
	CombinationID int64 `json:"combination_id"`
}

// NearWinner is a combination one hit short of the threshold
type NearWinner struct {
	PlayerID    int64        `json:"player_id"`
	PlayerName  string       `json:"player_name"`
	Combination *Combination `json:"combination"`
	Missing     []int        `json:"missing"`
}

// RankingEntry is a player's standing in a game
type RankingEntry struct {
	Position int     `json:"position"`
	Player   *Player `json:"player"`
	BestHits int     `json:"best_hits"`
	IsWinner bool    `json:"is_winner"`
}
