package services

import (
	"context"
	"errors"
	"fmt"

	"bolao/domain/entities"
	"bolao/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// winnerDetector records combinations that reached a game's required hits
type winnerDetector struct {
	winnerRepo interfaces.WinnerRepository
	notifier   interfaces.Notifier
}

// NewWinnerDetector creates a new winner detector. notifier may be nil.
func NewWinnerDetector(winnerRepo interfaces.WinnerRepository, notifier interfaces.Notifier) interfaces.WinnerDetector {
	return &winnerDetector{
		winnerRepo: winnerRepo,
		notifier:   notifier,
	}
}

// DetectWinners scans recalculated players for qualifying combinations and
// persists a winner record for every pair not recorded yet. A failure on
// one pair does not stop the others; the returned detection is non-nil
// whenever the scan ran, even if some pairs failed.
func (d *winnerDetector) DetectWinners(ctx context.Context, game *entities.Game, players []*entities.Player) (*interfaces.WinnerDetection, error) {
	threshold := game.Config.Threshold()

	priorWinners, err := d.winnerRepo.CountByGame(ctx, game.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count existing winners: %w", err)
	}

	detection := &interfaces.WinnerDetection{
		Winners:       []*entities.Player{},
		NewlyDetected: []*entities.Winner{},
	}

	var errs []error
	var newNumbers [][]int
	newPlayers := make(map[int64]bool)

	for _, player := range players {
		if player == nil {
			continue
		}

		winning := player.WinningCombinations(threshold)
		if len(winning) == 0 {
			continue
		}
		detection.Winners = append(detection.Winners, player)

		for _, combination := range winning {
			key := entities.WinnerKey{GameID: game.ID, PlayerID: player.ID, CombinationID: combination.ID}

			winner, err := d.recordWinner(ctx, key)
			if err != nil {
				log.WithFields(log.Fields{
					"gameID":        key.GameID,
					"playerID":      key.PlayerID,
					"combinationID": key.CombinationID,
				}).WithError(err).Error("Failed to record winner")

				detection.Failed = append(detection.Failed, interfaces.WinnerFailure{Key: key, Err: err})
				errs = append(errs, fmt.Errorf("player %d combination %d: %w", key.PlayerID, key.CombinationID, err))
				continue
			}
			if winner == nil {
				continue
			}

			detection.NewlyDetected = append(detection.NewlyDetected, winner)
			newNumbers = append(newNumbers, combination.Numbers)
			newPlayers[player.ID] = true
		}
	}

	if len(detection.NewlyDetected) > 0 {
		log.WithFields(log.Fields{
			"gameID":       game.ID,
			"newWinners":   len(detection.NewlyDetected),
			"priorWinners": priorWinners,
			"requiredHits": threshold,
		}).Info("New winners detected")
	}

	if len(detection.NewlyDetected) > 0 && priorWinners == 0 {
		d.notify(ctx, game, players, detection.Winners, newPlayers, newNumbers)
	}

	if len(errs) > 0 {
		return detection, fmt.Errorf("%w: %w", ErrWinnerPersistence, errors.Join(errs...))
	}
	return detection, nil
}

// recordWinner inserts a winner for key unless one exists. It returns nil
// when the pair was already recorded.
func (d *winnerDetector) recordWinner(ctx context.Context, key entities.WinnerKey) (*entities.Winner, error) {
	exists, err := d.winnerRepo.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing winner: %w", err)
	}
	if exists {
		return nil, nil
	}

	winner := &entities.Winner{
		GameID:        key.GameID,
		PlayerID:      key.PlayerID,
		CombinationID: key.CombinationID,
	}
	created, err := d.winnerRepo.Create(ctx, winner)
	if err != nil {
		return nil, fmt.Errorf("failed to create winner: %w", err)
	}
	if !created {
		// Inserted by a concurrent pass after our existence check
		return nil, nil
	}

	return winner, nil
}

func (d *winnerDetector) notify(ctx context.Context, game *entities.Game, players, winners []*entities.Player, newPlayers map[int64]bool, newNumbers [][]int) {
	if d.notifier == nil {
		return
	}

	combinations := 0
	for _, player := range players {
		if player != nil {
			combinations += len(player.Combinations)
		}
	}
	summary := &entities.GameSummary{
		CombinationCount:   combinations,
		WinningPlayerCount: len(winners),
	}
	summary.CalculatePrizes(game.Config)

	names := make([]string, 0, len(newPlayers))
	for _, player := range winners {
		if newPlayers[player.ID] {
			names = append(names, player.Name)
		}
	}

	notification := interfaces.WinnerNotification{
		GameID:         game.ID,
		GameName:       game.Name,
		PlayerNames:    names,
		WinningNumbers: newNumbers,
		PrizePerWinner: summary.PrizePerWinner,
	}
	if err := d.notifier.NotifyWinners(ctx, notification); err != nil {
		log.WithFields(log.Fields{
			"gameID":  game.ID,
			"winners": names,
		}).WithError(err).Error("Failed to notify winners")
	}
}
