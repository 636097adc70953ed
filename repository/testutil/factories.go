package testutil

import (
	"time"

	"bolao/domain/entities"
)

// CreateTestGame creates an active game with the default rules
func CreateTestGame(name string) *entities.Game {
	return &entities.Game{
		Name:      name,
		Status:    entities.GameStatusActive,
		OwnerID:   "admin",
		StartedAt: time.Now().UTC(),
		Config: entities.GameConfig{
			NumbersPerSequence:    entities.DefaultNumbersPerSequence,
			RequiredHits:          entities.DefaultRequiredHits,
			MaxNumber:             entities.DefaultMaxNumber,
			SequencePrice:         1000,
			AdminProfitPercentage: 20,
		},
	}
}

// CreateTestPlayer creates a player without combinations
func CreateTestPlayer(gameID int64, name string) *entities.Player {
	return &entities.Player{GameID: gameID, Name: name}
}

// CreateTestCombination creates a combination owned by a player
func CreateTestCombination(gameID, playerID int64, numbers ...int) *entities.Combination {
	return &entities.Combination{
		GameID:   gameID,
		PlayerID: playerID,
		Numbers:  entities.NormalizeNumbers(numbers),
	}
}

// CreateTestDraw creates a draw for a day of October 2026
func CreateTestDraw(gameID int64, day int, numbers ...int) *entities.DailyDraw {
	return &entities.DailyDraw{
		GameID:   gameID,
		DrawDate: time.Date(2026, time.October, day, 0, 0, 0, 0, time.UTC),
		Numbers:  entities.NormalizeNumbers(numbers),
	}
}

// CreateTestWinner creates a winner record for a combination
func CreateTestWinner(combination *entities.Combination) *entities.Winner {
	return &entities.Winner{
		GameID:        combination.GameID,
		PlayerID:      combination.PlayerID,
		CombinationID: combination.ID,
	}
}
