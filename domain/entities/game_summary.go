package entities

import "math"

// GameSummary aggregates the financial and progress figures of a game
type GameSummary struct {
	GameID             int64      `json:"game_id"`
	GameName           string     `json:"game_name"`
	Status             GameStatus `json:"status"`
	PlayerCount        int        `json:"player_count"`
	CombinationCount   int        `json:"combination_count"`
	DrawCount          int        `json:"draw_count"`
	DrawnNumbers       []int      `json:"drawn_numbers"`
	TotalCollected     int64      `json:"total_collected"`
	AdminProfit        int64      `json:"admin_profit"`
	PrizePool          int64      `json:"prize_pool"`
	WinningPlayerCount int        `json:"winning_player_count"`
	PrizePerWinner     int64      `json:"prize_per_winner"`
}

// CalculatePrizes fills the money fields from the combination count and config.
// Amounts are in cents. The percentage has two decimals and is applied in basis
// points; the admin share is truncated and the remainder goes to the pool.
func (s *GameSummary) CalculatePrizes(cfg GameConfig) {
	s.TotalCollected = int64(s.CombinationCount) * cfg.SequencePrice
	basisPoints := int64(math.Round(cfg.AdminProfitPercentage * 100))
	s.AdminProfit = s.TotalCollected * basisPoints / 10000
	s.PrizePool = s.TotalCollected - s.AdminProfit
	s.PrizePerWinner = PrizeShare(s.PrizePool, s.WinningPlayerCount)
}

// PrizeShare splits a pool evenly between winners, rounding down
func PrizeShare(pool int64, winners int) int64 {
	if winners <= 0 {
		return 0
	}
	return pool / int64(winners)
}
