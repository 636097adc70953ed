package services

import (
	"context"
	"fmt"
	"sort"

	"bolao/domain/entities"
	"bolao/domain/interfaces"
	"bolao/events"

	log "github.com/sirupsen/logrus"
)

// resultsService is the single place hits are recalculated and winners detected
type resultsService struct {
	gameRepo        interfaces.GameRepository
	playerRepo      interfaces.PlayerRepository
	combinationRepo interfaces.CombinationRepository
	drawRepo        interfaces.DrawRepository
	winnerRepo      interfaces.WinnerRepository
	detector        interfaces.WinnerDetector
	eventPublisher  interfaces.EventPublisher
	closer          *gameCloser
}

// NewResultsService creates a new results service
func NewResultsService(
	gameRepo interfaces.GameRepository,
	playerRepo interfaces.PlayerRepository,
	combinationRepo interfaces.CombinationRepository,
	drawRepo interfaces.DrawRepository,
	winnerRepo interfaces.WinnerRepository,
	detector interfaces.WinnerDetector,
	eventPublisher interfaces.EventPublisher,
) interfaces.ResultsService {
	return &resultsService{
		gameRepo:        gameRepo,
		playerRepo:      playerRepo,
		combinationRepo: combinationRepo,
		drawRepo:        drawRepo,
		winnerRepo:      winnerRepo,
		detector:        detector,
		eventPublisher:  eventPublisher,
		closer: &gameCloser{
			gameRepo:        gameRepo,
			combinationRepo: combinationRepo,
			winnerRepo:      winnerRepo,
			eventPublisher:  eventPublisher,
		},
	}
}

// Refresh recalculates a game from its full draw history. The game row is
// locked for the rest of the transaction so concurrent refreshes of the same
// game run one after the other. Closed and canceled games still get their
// hits refreshed but record no new winners.
//
// When the hit write-back fails the recalculated players are still returned
// alongside the error. Winner persistence failures are reported with a
// non-nil Detection and an error wrapping ErrWinnerPersistence.
func (s *resultsService) Refresh(ctx context.Context, gameID int64) (*interfaces.RefreshResult, error) {
	game, err := s.gameRepo.GetByIDForUpdate(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	draws, players, err := s.loadState(ctx, gameID)
	if err != nil {
		return nil, err
	}

	recalculated := RecalculateHits(draws, players)
	result := &interfaces.RefreshResult{
		Game:    game,
		Players: recalculated,
	}

	changed := changedHits(players, recalculated)
	result.ChangedCombinations = len(changed)
	if len(changed) > 0 {
		if err := s.combinationRepo.UpdateHits(ctx, changed); err != nil {
			return result, fmt.Errorf("failed to update combination hits: %w", err)
		}
	}

	var detection *interfaces.WinnerDetection
	var detectErr error
	if game.IsActive() {
		detection, detectErr = s.detector.DetectWinners(ctx, game, recalculated)
		if detection == nil {
			return result, fmt.Errorf("failed to detect winners: %w", detectErr)
		}
	} else {
		// Prizes were split when the game ended, so no winner is recorded afterwards
		detection = qualifyingPlayers(recalculated, game.Config.Threshold())
	}
	result.Detection = detection

	s.publishRefresh(game, recalculated, draws, detection, len(changed))

	// Closing waits for a clean pass so the prize split sees every winner
	if detectErr == nil && len(detection.Winners) > 0 && game.IsActive() && game.Config.AutoCloseOnWin {
		if err := s.closer.close(ctx, game, true); err != nil {
			return result, fmt.Errorf("failed to close game: %w", err)
		}
		result.AutoClosed = true
	}

	log.WithFields(log.Fields{
		"gameID":              game.ID,
		"draws":               len(draws),
		"players":             len(recalculated),
		"changedCombinations": len(changed),
		"winners":             len(detection.Winners),
		"newWinners":          len(detection.NewlyDetected),
		"failedWinners":       len(detection.Failed),
		"autoClosed":          result.AutoClosed,
	}).Info("Game results refreshed")

	return result, detectErr
}

// qualifyingPlayers reports the players at the threshold without recording anything
func qualifyingPlayers(players []*entities.Player, threshold int) *interfaces.WinnerDetection {
	detection := &interfaces.WinnerDetection{
		Winners:       []*entities.Player{},
		NewlyDetected: []*entities.Winner{},
	}
	for _, player := range players {
		if player.HasWinningCombination(threshold) {
			detection.Winners = append(detection.Winners, player)
		}
	}
	return detection
}

func (s *resultsService) loadState(ctx context.Context, gameID int64) ([]*entities.DailyDraw, []*entities.Player, error) {
	draws, err := s.drawRepo.GetByGame(ctx, gameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get draws: %w", err)
	}

	players, err := s.playerRepo.GetByGame(ctx, gameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get players: %w", err)
	}

	return draws, players, nil
}

func (s *resultsService) publishRefresh(game *entities.Game, players []*entities.Player, draws []*entities.DailyDraw, detection *interfaces.WinnerDetection, changed int) {
	combinations := 0
	for _, p := range players {
		combinations += len(p.Combinations)
	}

	if err := s.eventPublisher.Publish(events.HitsRecalculatedEvent{
		GameID:                game.ID,
		CombinationCount:      combinations,
		ChangedCombinations:   changed,
		DrawnNumberCount:      len(DrawnNumbers(draws)),
		QualifyingPlayerCount: len(detection.Winners),
	}); err != nil {
		log.WithError(err).Error("Failed to publish hits recalculated event")
	}

	if len(detection.NewlyDetected) == 0 {
		return
	}

	names := make(map[int64]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}

	refs := make([]events.WinnerRef, 0, len(detection.NewlyDetected))
	for _, w := range detection.NewlyDetected {
		refs = append(refs, events.WinnerRef{
			WinnerID:      w.ID,
			PlayerID:      w.PlayerID,
			PlayerName:    names[w.PlayerID],
			CombinationID: w.CombinationID,
		})
	}

	if err := s.eventPublisher.Publish(events.WinnersDetectedEvent{
		GameID:  game.ID,
		Winners: refs,
	}); err != nil {
		log.WithError(err).Error("Failed to publish winners detected event")
	}
}

// Winners returns the persisted winner records of a game
func (s *resultsService) Winners(ctx context.Context, gameID int64) ([]*entities.Winner, error) {
	if _, err := s.getGame(ctx, gameID); err != nil {
		return nil, err
	}

	winners, err := s.winnerRepo.GetByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get winners: %w", err)
	}
	return winners, nil
}

// NearWinners lists combinations exactly one hit short of the threshold.
// It reads the recalculated state and writes nothing.
func (s *resultsService) NearWinners(ctx context.Context, gameID int64) ([]*entities.NearWinner, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	draws, players, err := s.loadState(ctx, gameID)
	if err != nil {
		return nil, err
	}

	drawn := DrawnNumbers(draws)
	target := game.Config.Threshold() - 1

	nearWinners := []*entities.NearWinner{}
	if target < 1 {
		return nearWinners, nil
	}

	for _, player := range RecalculateHits(draws, players) {
		for _, c := range player.Combinations {
			if c.Hits != target {
				continue
			}
			nearWinners = append(nearWinners, &entities.NearWinner{
				PlayerID:    player.ID,
				PlayerName:  player.Name,
				Combination: c,
				Missing:     missingNumbers(c.Numbers, drawn),
			})
		}
	}

	return nearWinners, nil
}

// Ranking orders players by best hits, then by name
func (s *resultsService) Ranking(ctx context.Context, gameID int64) ([]*entities.RankingEntry, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	draws, players, err := s.loadState(ctx, gameID)
	if err != nil {
		return nil, err
	}

	threshold := game.Config.Threshold()
	entries := make([]*entities.RankingEntry, 0, len(players))
	for _, player := range RecalculateHits(draws, players) {
		entries = append(entries, &entities.RankingEntry{
			Player:   player,
			BestHits: player.BestHits(),
			IsWinner: player.HasWinningCombination(threshold),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].BestHits != entries[j].BestHits {
			return entries[i].BestHits > entries[j].BestHits
		}
		return entries[i].Player.Name < entries[j].Player.Name
	})

	// Ties share a position
	for i, entry := range entries {
		if i > 0 && entry.BestHits == entries[i-1].BestHits {
			entry.Position = entries[i-1].Position
			continue
		}
		entry.Position = i + 1
	}

	return entries, nil
}

// Summary reports the counts and prize figures of a game
func (s *resultsService) Summary(ctx context.Context, gameID int64) (*entities.GameSummary, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	draws, players, err := s.loadState(ctx, gameID)
	if err != nil {
		return nil, err
	}

	winners, err := s.winnerRepo.GetByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get winners: %w", err)
	}

	combinations := 0
	for _, p := range players {
		combinations += len(p.Combinations)
	}

	summary := &entities.GameSummary{
		GameID:             game.ID,
		GameName:           game.Name,
		Status:             game.Status,
		PlayerCount:        len(players),
		CombinationCount:   combinations,
		DrawCount:          len(draws),
		DrawnNumbers:       SortedNumbers(DrawnNumbers(draws)),
		WinningPlayerCount: countDistinctPlayers(winners),
	}
	summary.CalculatePrizes(game.Config)

	return summary, nil
}

func (s *resultsService) getGame(ctx context.Context, gameID int64) (*entities.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}
