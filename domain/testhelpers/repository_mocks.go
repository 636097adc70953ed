package testhelpers

import (
	"context"
	"time"

	"bolao/domain/entities"
	"bolao/domain/interfaces"
	"bolao/events"

	"github.com/stretchr/testify/mock"
)

// MockGameRepository is a mock implementation of GameRepository
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *entities.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetByID(ctx context.Context, id int64) (*entities.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Game), args.Error(1)
}

func (m *MockGameRepository) List(ctx context.Context, status *entities.GameStatus) ([]*entities.Game, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Game), args.Error(1)
}

func (m *MockGameRepository) UpdateStatus(ctx context.Context, game *entities.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlayerRepository is a mock implementation of PlayerRepository
type MockPlayerRepository struct {
	mock.Mock
}

func (m *MockPlayerRepository) Create(ctx context.Context, player *entities.Player) error {
	args := m.Called(ctx, player)
	return args.Error(0)
}

func (m *MockPlayerRepository) GetByID(ctx context.Context, id int64) (*entities.Player, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Player), args.Error(1)
}

func (m *MockPlayerRepository) GetByGame(ctx context.Context, gameID int64) ([]*entities.Player, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Player), args.Error(1)
}

func (m *MockPlayerRepository) UpdateName(ctx context.Context, id int64, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

// MockCombinationRepository is a mock implementation of CombinationRepository
type MockCombinationRepository struct {
	mock.Mock
}

func (m *MockCombinationRepository) Create(ctx context.Context, combination *entities.Combination) error {
	args := m.Called(ctx, combination)
	return args.Error(0)
}

func (m *MockCombinationRepository) GetByID(ctx context.Context, id int64) (*entities.Combination, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Combination), args.Error(1)
}

func (m *MockCombinationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCombinationRepository) UpdateHits(ctx context.Context, hits map[int64]int) error {
	args := m.Called(ctx, hits)
	return args.Error(0)
}

func (m *MockCombinationRepository) CountByGame(ctx context.Context, gameID int64) (int, error) {
	args := m.Called(ctx, gameID)
	return args.Int(0), args.Error(1)
}

// MockDrawRepository is a mock implementation of DrawRepository
type MockDrawRepository struct {
	mock.Mock
}

func (m *MockDrawRepository) Create(ctx context.Context, draw *entities.DailyDraw) error {
	args := m.Called(ctx, draw)
	return args.Error(0)
}

func (m *MockDrawRepository) GetByGame(ctx context.Context, gameID int64) ([]*entities.DailyDraw, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DailyDraw), args.Error(1)
}

func (m *MockDrawRepository) GetByGameAndDate(ctx context.Context, gameID int64, date time.Time) (*entities.DailyDraw, error) {
	args := m.Called(ctx, gameID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DailyDraw), args.Error(1)
}

// MockWinnerRepository is a mock implementation of WinnerRepository
type MockWinnerRepository struct {
	mock.Mock
}

func (m *MockWinnerRepository) Exists(ctx context.Context, key entities.WinnerKey) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockWinnerRepository) Create(ctx context.Context, winner *entities.Winner) (bool, error) {
	args := m.Called(ctx, winner)
	return args.Bool(0), args.Error(1)
}

func (m *MockWinnerRepository) CountByGame(ctx context.Context, gameID int64) (int, error) {
	args := m.Called(ctx, gameID)
	return args.Int(0), args.Error(1)
}

func (m *MockWinnerRepository) GetByGame(ctx context.Context, gameID int64) ([]*entities.Winner, error) {
	args := m.Called(ctx, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Winner), args.Error(1)
}

func (m *MockWinnerRepository) SetPrizeAmounts(ctx context.Context, amounts map[int64]int64) error {
	args := m.Called(ctx, amounts)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyWinners(ctx context.Context, notification interfaces.WinnerNotification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// MockWinnerDetector is a mock implementation of WinnerDetector
type MockWinnerDetector struct {
	mock.Mock
}

func (m *MockWinnerDetector) DetectWinners(ctx context.Context, game *entities.Game, players []*entities.Player) (*interfaces.WinnerDetection, error) {
	args := m.Called(ctx, game, players)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.WinnerDetection), args.Error(1)
}
