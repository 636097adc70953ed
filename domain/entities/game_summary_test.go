package entities

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameSummary_CalculatePrizes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		combinations  int
		winners       int
		cfg           GameConfig
		wantCollected int64
		wantProfit    int64
		wantPool      int64
		wantPerWinner int64
	}{
		{
			name:          "no winners",
			combinations:  10,
			cfg:           GameConfig{SequencePrice: 1000, AdminProfitPercentage: 20},
			wantCollected: 10000,
			wantProfit:    2000,
			wantPool:      8000,
			wantPerWinner: 0,
		},
		{
			name:          "split between three winners rounds down",
			combinations:  10,
			winners:       3,
			cfg:           GameConfig{SequencePrice: 1000, AdminProfitPercentage: 20},
			wantCollected: 10000,
			wantProfit:    2000,
			wantPool:      8000,
			wantPerWinner: 2666,
		},
		{
			name:          "profit truncates to cents",
			combinations:  3,
			winners:       1,
			cfg:           GameConfig{SequencePrice: 333, AdminProfitPercentage: 12.5},
			wantCollected: 999,
			wantProfit:    124,
			wantPool:      875,
			wantPerWinner: 875,
		},
		{
			name:          "fractional percentage is exact to the cent",
			combinations:  10,
			winners:       1,
			cfg:           GameConfig{SequencePrice: 1000, AdminProfitPercentage: 1.13},
			wantCollected: 10000,
			wantProfit:    113,
			wantPool:      9887,
			wantPerWinner: 9887,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			summary := &GameSummary{CombinationCount: tt.combinations, WinningPlayerCount: tt.winners}
			summary.CalculatePrizes(tt.cfg)

			assert.Equal(t, tt.wantCollected, summary.TotalCollected)
			assert.Equal(t, tt.wantProfit, summary.AdminProfit)
			assert.Equal(t, tt.wantPool, summary.PrizePool)
			assert.Equal(t, tt.wantPerWinner, summary.PrizePerWinner)
		})
	}
}

func TestGameSummary_CalculatePrizes_EveryTwoDecimalPercentage(t *testing.T) {
	t.Parallel()

	// 10000 cents makes each basis point exactly one cent
	for bp := int64(1); bp < 10000; bp++ {
		pct := float64(bp) / 100
		summary := &GameSummary{CombinationCount: 10}
		summary.CalculatePrizes(GameConfig{SequencePrice: 1000, AdminProfitPercentage: pct})

		if !assert.Equal(t, bp, summary.AdminProfit, fmt.Sprintf("percentage %.2f", pct)) {
			return
		}
		assert.Equal(t, 10000-bp, summary.PrizePool)
	}
}
