package dto

import (
	"bolao/domain/entities"
	"bolao/domain/interfaces"
)

// RefreshSummary reports what a recalculation pass changed
type RefreshSummary struct {
	GameID              int64                `json:"game_id"`
	GameStatus          entities.GameStatus  `json:"game_status"`
	ChangedCombinations int                  `json:"changed_combinations"`
	Winners             []WinningPlayer      `json:"winners"`
	NewWinners          []entities.WinnerKey `json:"new_winners"`
	FailedWinners       []FailedWinner       `json:"failed_winners,omitempty"`
	AutoClosed          bool                 `json:"auto_closed"`
}

// WinningPlayer is a player with at least one combination at the threshold
type WinningPlayer struct {
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
}

// FailedWinner is a winning pair whose record could not be written
type FailedWinner struct {
	entities.WinnerKey
	Error string `json:"error"`
}

// PlayerChange is the response to a change in a player's combinations
type PlayerChange struct {
	Player  *entities.Player `json:"player"`
	Refresh *RefreshSummary  `json:"refresh"`
}

// CombinationChange is the response to adding a combination
type CombinationChange struct {
	Combination *entities.Combination `json:"combination"`
	Refresh     *RefreshSummary       `json:"refresh"`
}

// DrawChange is the response to recording a draw
type DrawChange struct {
	Draw    *entities.DailyDraw `json:"draw"`
	Refresh *RefreshSummary     `json:"refresh"`
}

// NewRefreshSummary converts a refresh result. A nil result gives nil.
func NewRefreshSummary(result *interfaces.RefreshResult) *RefreshSummary {
	if result == nil || result.Game == nil {
		return nil
	}

	summary := &RefreshSummary{
		GameID:              result.Game.ID,
		GameStatus:          result.Game.Status,
		ChangedCombinations: result.ChangedCombinations,
		Winners:             []WinningPlayer{},
		NewWinners:          []entities.WinnerKey{},
		AutoClosed:          result.AutoClosed,
	}

	if result.Detection == nil {
		return summary
	}

	for _, player := range result.Detection.Winners {
		summary.Winners = append(summary.Winners, WinningPlayer{PlayerID: player.ID, Name: player.Name})
	}
	for _, winner := range result.Detection.NewlyDetected {
		summary.NewWinners = append(summary.NewWinners, winner.Key())
	}
	for _, failure := range result.Detection.Failed {
		summary.FailedWinners = append(summary.FailedWinners, FailedWinner{
			WinnerKey: failure.Key,
			Error:     failure.Err.Error(),
		})
	}

	return summary
}
