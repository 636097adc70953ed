package services

import (
	"context"
	"testing"

	"bolao/domain/entities"
	"bolao/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestGameService(mocks *TestMocks) *gameService {
	defaults := entities.GameConfig{NumbersPerSequence: 6, RequiredHits: 6, MaxNumber: 60}
	return NewGameService(mocks.GameRepo, mocks.CombinationRepo, mocks.WinnerRepo, mocks.EventPublisher, defaults).(*gameService)
}

func TestGameService_CreateGame(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		gameName   string
		cfg        entities.GameConfig
		wantErr    error
		wantConfig entities.GameConfig
	}{
		{
			name:     "service defaults fill missing fields",
			gameName: "Mega da Virada",
			cfg:      entities.GameConfig{SequencePrice: 500, AdminProfitPercentage: 10},
			wantConfig: entities.GameConfig{
				NumbersPerSequence:    6,
				RequiredHits:          6,
				MaxNumber:             60,
				SequencePrice:         500,
				AdminProfitPercentage: 10,
			},
		},
		{
			name:     "explicit config kept",
			gameName: "  Quina  ",
			cfg:      entities.GameConfig{NumbersPerSequence: 5, RequiredHits: 5, MaxNumber: 80, AutoCloseOnWin: true},
			wantConfig: entities.GameConfig{
				NumbersPerSequence: 5,
				RequiredHits:       5,
				MaxNumber:          80,
				AutoCloseOnWin:     true,
			},
		},
		{
			name:     "blank name rejected",
			gameName: "   ",
			wantErr:  ErrInvalidGameName,
		},
		{
			name:     "invalid config rejected",
			gameName: "Broken",
			cfg:      entities.GameConfig{NumbersPerSequence: 6, RequiredHits: 7},
			wantErr:  entities.ErrInvalidGameConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			mocks := NewTestMocks()
			service := newTestGameService(mocks)

			if tt.wantErr == nil {
				mocks.GameRepo.On("Create", ctx, mock.AnythingOfType("*entities.Game")).
					Run(func(args mock.Arguments) { args.Get(1).(*entities.Game).ID = 42 }).
					Return(nil)
				mocks.EventPublisher.On("Publish", mock.AnythingOfType("events.GameCreatedEvent")).Return(nil)
			}

			game, err := service.CreateGame(ctx, tt.gameName, testOwner, tt.cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				mocks.GameRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, int64(42), game.ID)
			assert.Equal(t, entities.GameStatusActive, game.Status)
			assert.NotEqual(t, "", game.Name)
			assert.Equal(t, tt.wantConfig, game.Config)
			assert.False(t, game.StartedAt.IsZero())
			mocks.AssertAllExpectations(t)
		})
	}
}

func TestGameService_CloseGame_SplitsPrizeBetweenPlayers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mocks := NewTestMocks()
	service := newTestGameService(mocks)

	game := createTestGame()
	winners := []*entities.Winner{
		{ID: 1, GameID: testGameID, PlayerID: 1, CombinationID: 100},
		{ID: 2, GameID: testGameID, PlayerID: 2, CombinationID: 200},
		{ID: 3, GameID: testGameID, PlayerID: 1, CombinationID: 101},
	}

	mocks.GameRepo.On("GetByIDForUpdate", ctx, testGameID).Return(game, nil)
	mocks.GameRepo.On("UpdateStatus", ctx, game).Return(nil)
	mocks.WinnerRepo.On("GetByGame", ctx, testGameID).Return(winners, nil)
	mocks.CombinationRepo.On("CountByGame", ctx, testGameID).Return(10, nil)
	// 10 x 1000 collected, 20% profit, 8000 split between two players
	mocks.WinnerRepo.On("SetPrizeAmounts", ctx, map[int64]int64{1: 4000, 2: 4000, 3: 0}).Return(nil)
	mocks.EventPublisher.On("Publish", events.GameStatusChangeEvent{
		GameID:    testGameID,
		OldStatus: "active",
		NewStatus: "closed",
	}).Return(nil)

	closed, err := service.CloseGame(ctx, testGameID)
	require.NoError(t, err)
	assert.Equal(t, entities.GameStatusClosed, closed.Status)
	assert.NotNil(t, closed.EndedAt)
	mocks.AssertAllExpectations(t)
}

func TestGameService_CloseGame_WithoutWinners(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mocks := NewTestMocks()
	service := newTestGameService(mocks)

	game := createTestGame()
	mocks.GameRepo.On("GetByIDForUpdate", ctx, testGameID).Return(game, nil)
	mocks.GameRepo.On("UpdateStatus", ctx, game).Return(nil)
	mocks.WinnerRepo.On("GetByGame", ctx, testGameID).Return([]*entities.Winner{}, nil)
	mocks.EventPublisher.On("Publish", mock.AnythingOfType("events.GameStatusChangeEvent")).Return(nil)

	_, err := service.CloseGame(ctx, testGameID)
	require.NoError(t, err)
	mocks.WinnerRepo.AssertNotCalled(t, "SetPrizeAmounts", mock.Anything, mock.Anything)
}

func TestGameService_TerminalStatesCannotChange(t *testing.T) {
	t.Parallel()

	for _, status := range []entities.GameStatus{entities.GameStatusClosed, entities.GameStatusCanceled} {
		ctx := context.Background()
		mocks := NewTestMocks()
		service := newTestGameService(mocks)

		game := createTestGame(func(g *entities.Game) { g.Status = status })
		mocks.GameRepo.On("GetByIDForUpdate", ctx, testGameID).Return(game, nil)

		_, err := service.CloseGame(ctx, testGameID)
		assert.ErrorIs(t, err, entities.ErrInvalidStatusTransition)

		_, err = service.CancelGame(ctx, testGameID)
		assert.ErrorIs(t, err, entities.ErrInvalidStatusTransition)

		mocks.GameRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	}
}

func TestGameService_CancelGame(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mocks := NewTestMocks()
	service := newTestGameService(mocks)

	game := createTestGame()
	mocks.GameRepo.On("GetByIDForUpdate", ctx, testGameID).Return(game, nil)
	mocks.GameRepo.On("UpdateStatus", ctx, game).Return(nil)
	mocks.EventPublisher.On("Publish", events.GameStatusChangeEvent{
		GameID:    testGameID,
		OldStatus: "active",
		NewStatus: "canceled",
	}).Return(nil)

	canceled, err := service.CancelGame(ctx, testGameID)
	require.NoError(t, err)
	assert.Equal(t, entities.GameStatusCanceled, canceled.Status)
	mocks.AssertAllExpectations(t)
}

func TestGameService_ListGames(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mocks := NewTestMocks()
	service := newTestGameService(mocks)

	active := entities.GameStatusActive
	mocks.GameRepo.On("List", ctx, &active).Return([]*entities.Game{createTestGame()}, nil)

	games, err := service.ListGames(ctx, &active)
	require.NoError(t, err)
	assert.Len(t, games, 1)

	bogus := entities.GameStatus("paused")
	_, err = service.ListGames(ctx, &bogus)
	assert.ErrorIs(t, err, ErrInvalidGameStatus)
}

func TestGameService_DeleteAndGet_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mocks := NewTestMocks()
	service := newTestGameService(mocks)

	mocks.GameRepo.On("GetByIDForUpdate", ctx, int64(5)).Return(nil, nil)
	mocks.GameRepo.On("GetByID", ctx, int64(5)).Return(nil, nil)

	assert.ErrorIs(t, service.DeleteGame(ctx, 5), ErrGameNotFound)
	_, err := service.GetGame(ctx, 5)
	assert.ErrorIs(t, err, ErrGameNotFound)
	mocks.GameRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestGameService_DeleteGame(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mocks := NewTestMocks()
	service := newTestGameService(mocks)

	mocks.GameRepo.On("GetByIDForUpdate", ctx, testGameID).Return(createTestGame(), nil)
	mocks.GameRepo.On("Delete", ctx, testGameID).Return(nil)

	require.NoError(t, service.DeleteGame(ctx, testGameID))
	mocks.AssertAllExpectations(t)
}
