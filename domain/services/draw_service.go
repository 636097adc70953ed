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

// drawService records daily draws. Draws are never edited or removed.
type drawService struct {
	gameRepo       interfaces.GameRepository
	drawRepo       interfaces.DrawRepository
	eventPublisher interfaces.EventPublisher
}

// NewDrawService creates a new draw service
func NewDrawService(
	gameRepo interfaces.GameRepository,
	drawRepo interfaces.DrawRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.DrawService {
	return &drawService{
		gameRepo:       gameRepo,
		drawRepo:       drawRepo,
		eventPublisher: eventPublisher,
	}
}

// AddDraw records the numbers drawn on a date for an active game
func (s *drawService) AddDraw(ctx context.Context, gameID int64, date time.Time, numbers []int) (*entities.DailyDraw, error) {
	game, err := s.gameRepo.GetByIDForUpdate(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if !game.IsActive() {
		return nil, entities.ErrGameNotActive
	}

	if err := entities.ValidateDrawNumbers(numbers, game.Config); err != nil {
		return nil, err
	}

	drawDate := entities.TruncateToDate(date)
	existing, err := s.drawRepo.GetByGameAndDate(ctx, gameID, drawDate)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing draw: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrDrawAlreadyRecorded, drawDate.Format(time.DateOnly))
	}

	draw := &entities.DailyDraw{
		GameID:   gameID,
		DrawDate: drawDate,
		Numbers:  entities.NormalizeNumbers(numbers),
	}
	if err := s.drawRepo.Create(ctx, draw); err != nil {
		return nil, fmt.Errorf("failed to create draw: %w", err)
	}

	if err := s.eventPublisher.Publish(events.DrawRecordedEvent{
		GameID:   gameID,
		DrawID:   draw.ID,
		DrawDate: drawDate.Format(time.DateOnly),
		Numbers:  draw.Numbers,
	}); err != nil {
		log.WithError(err).Error("Failed to publish draw recorded event")
	}

	log.WithFields(log.Fields{
		"gameID":   gameID,
		"drawID":   draw.ID,
		"drawDate": drawDate.Format(time.DateOnly),
		"numbers":  draw.Numbers,
	}).Info("Draw recorded")

	return draw, nil
}

// ListDraws returns the draws of a game ordered by date
func (s *drawService) ListDraws(ctx context.Context, gameID int64) ([]*entities.DailyDraw, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	draws, err := s.drawRepo.GetByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draws: %w", err)
	}
	return draws, nil
}
