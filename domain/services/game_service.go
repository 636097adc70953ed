package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bolao/domain/entities"
	"bolao/domain/interfaces"
	"bolao/events"

	log "github.com/sirupsen/logrus"
)

// gameService implements game lifecycle operations
type gameService struct {
	gameRepo       interfaces.GameRepository
	eventPublisher interfaces.EventPublisher
	defaults       entities.GameConfig
	closer         *gameCloser
}

// NewGameService creates a new game service. defaults fills the numeric
// config fields left at zero when a game is created.
func NewGameService(
	gameRepo interfaces.GameRepository,
	combinationRepo interfaces.CombinationRepository,
	winnerRepo interfaces.WinnerRepository,
	eventPublisher interfaces.EventPublisher,
	defaults entities.GameConfig,
) interfaces.GameService {
	return &gameService{
		gameRepo:       gameRepo,
		eventPublisher: eventPublisher,
		defaults:       defaults,
		closer: &gameCloser{
			gameRepo:        gameRepo,
			combinationRepo: combinationRepo,
			winnerRepo:      winnerRepo,
			eventPublisher:  eventPublisher,
		},
	}
}

// CreateGame starts a new active game
func (s *gameService) CreateGame(ctx context.Context, name, ownerID string, cfg entities.GameConfig) (*entities.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidGameName
	}

	cfg = s.applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	game := &entities.Game{
		Name:      name,
		Status:    entities.GameStatusActive,
		OwnerID:   ownerID,
		StartedAt: time.Now().UTC(),
		Config:    cfg,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err := s.eventPublisher.Publish(events.GameCreatedEvent{
		GameID:  game.ID,
		Name:    game.Name,
		OwnerID: game.OwnerID,
	}); err != nil {
		log.WithError(err).Error("Failed to publish game created event")
	}

	log.WithFields(log.Fields{
		"gameID":         game.ID,
		"name":           game.Name,
		"requiredHits":   cfg.RequiredHits,
		"autoCloseOnWin": cfg.AutoCloseOnWin,
	}).Info("Game created")

	return game, nil
}

// applyDefaults layers the service defaults and then the package defaults
// under the numeric fields the caller left at zero
func (s *gameService) applyDefaults(cfg entities.GameConfig) entities.GameConfig {
	if cfg.NumbersPerSequence == 0 {
		cfg.NumbersPerSequence = s.defaults.NumbersPerSequence
	}
	if cfg.RequiredHits == 0 {
		cfg.RequiredHits = s.defaults.RequiredHits
	}
	if cfg.MaxNumber == 0 {
		cfg.MaxNumber = s.defaults.MaxNumber
	}
	return cfg.WithDefaults()
}

// GetGame retrieves a game
func (s *gameService) GetGame(ctx context.Context, id int64) (*entities.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// ListGames returns games, optionally filtered by status
func (s *gameService) ListGames(ctx context.Context, status *entities.GameStatus) ([]*entities.Game, error) {
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGameStatus, *status)
	}

	games, err := s.gameRepo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// CloseGame closes an active game and splits the prize pool between its winners
func (s *gameService) CloseGame(ctx context.Context, id int64) (*entities.Game, error) {
	game, err := s.lockGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.closer.close(ctx, game, false); err != nil {
		return nil, err
	}
	return game, nil
}

// CancelGame aborts an active game. No prizes are assigned.
func (s *gameService) CancelGame(ctx context.Context, id int64) (*entities.Game, error) {
	game, err := s.lockGame(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStatus := game.Status
	if err := game.Cancel(time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.gameRepo.UpdateStatus(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game status: %w", err)
	}

	if err := s.eventPublisher.Publish(events.GameStatusChangeEvent{
		GameID:    game.ID,
		OldStatus: string(oldStatus),
		NewStatus: string(game.Status),
	}); err != nil {
		log.WithError(err).Error("Failed to publish game status change event")
	}

	log.WithField("gameID", game.ID).Info("Game canceled")
	return game, nil
}

// DeleteGame removes a game and everything it owns
func (s *gameService) DeleteGame(ctx context.Context, id int64) error {
	if _, err := s.lockGame(ctx, id); err != nil {
		return err
	}

	if err := s.gameRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	log.WithField("gameID", id).Info("Game deleted")
	return nil
}

func (s *gameService) lockGame(ctx context.Context, id int64) (*entities.Game, error) {
	game, err := s.gameRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	return game, nil
}
