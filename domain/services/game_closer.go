package services

import (
	"context"
	"fmt"
	"time"

	"bolao/domain/entities"
	"bolao/domain/interfaces"
	"bolao/events"

	log "github.com/sirupsen/logrus"
)

// gameCloser closes games and splits the prize pool between winning players.
// It is shared by manual closing and closing on first win.
type gameCloser struct {
	gameRepo        interfaces.GameRepository
	combinationRepo interfaces.CombinationRepository
	winnerRepo      interfaces.WinnerRepository
	eventPublisher  interfaces.EventPublisher
}

func (c *gameCloser) close(ctx context.Context, game *entities.Game, automatic bool) error {
	oldStatus := game.Status
	if err := game.Close(time.Now().UTC()); err != nil {
		return err
	}

	if err := c.gameRepo.UpdateStatus(ctx, game); err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}

	if err := c.assignPrizes(ctx, game); err != nil {
		return err
	}

	if err := c.eventPublisher.Publish(events.GameStatusChangeEvent{
		GameID:    game.ID,
		OldStatus: string(oldStatus),
		NewStatus: string(game.Status),
		Automatic: automatic,
	}); err != nil {
		log.WithError(err).Error("Failed to publish game status change event")
	}

	log.WithFields(log.Fields{
		"gameID":    game.ID,
		"automatic": automatic,
	}).Info("Game closed")

	return nil
}

// assignPrizes gives each winning player an equal share of the pool. The
// share is stored on the player's first winner record; further winning
// combinations of the same player record zero.
func (c *gameCloser) assignPrizes(ctx context.Context, game *entities.Game) error {
	winners, err := c.winnerRepo.GetByGame(ctx, game.ID)
	if err != nil {
		return fmt.Errorf("failed to get winners: %w", err)
	}
	if len(winners) == 0 {
		return nil
	}

	combinationCount, err := c.combinationRepo.CountByGame(ctx, game.ID)
	if err != nil {
		return fmt.Errorf("failed to count combinations: %w", err)
	}

	summary := &entities.GameSummary{
		CombinationCount:   combinationCount,
		WinningPlayerCount: countDistinctPlayers(winners),
	}
	summary.CalculatePrizes(game.Config)

	amounts := make(map[int64]int64, len(winners))
	paid := make(map[int64]bool)
	for _, winner := range winners {
		if paid[winner.PlayerID] {
			amounts[winner.ID] = 0
			continue
		}
		paid[winner.PlayerID] = true
		amounts[winner.ID] = summary.PrizePerWinner
	}

	if err := c.winnerRepo.SetPrizeAmounts(ctx, amounts); err != nil {
		return fmt.Errorf("failed to set prize amounts: %w", err)
	}
	return nil
}

func countDistinctPlayers(winners []*entities.Winner) int {
	players := make(map[int64]struct{}, len(winners))
	for _, w := range winners {
		players[w.PlayerID] = struct{}{}
	}
	return len(players)
}
