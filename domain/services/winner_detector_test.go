package services

import (
	"context"
	"errors"
	"testing"

	"bolao/domain/entities"
	"bolao/domain/interfaces"
	"bolao/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// assignWinnerID mimics the store assigning an ID on insert
func assignWinnerID(id int64) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(1).(*entities.Winner).ID = id
	}
}

func TestWinnerDetector_FirstWinnerAcrossTwoDraws(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mocks := NewTestMocks()
	detector := NewWinnerDetector(mocks.WinnerRepo, mocks.Notifier)
	game := createTestGame()
	ana := createTestPlayer(1, "Ana", []int{1, 2, 3, 4, 5, 6})
	key := entities.WinnerKey{GameID: testGameID, PlayerID: 1, CombinationID: 100}

	// Day one: three hits, nobody qualifies
	afterFirst := RecalculateHits([]*entities.DailyDraw{createTestDraw(1, 1, 1, 2, 3)}, []*entities.Player{ana})
	require.Equal(t, 3, afterFirst[0].Combinations[0].Hits)

	mocks.WinnerRepo.On("CountByGame", ctx, testGameID).Return(0, nil).Once()

	detection, err := detector.DetectWinners(ctx, game, afterFirst)
	require.NoError(t, err)
	assert.Empty(t, detection.Winners)
	assert.Empty(t, detection.NewlyDetected)

	// Day two completes the combination
	draws := []*entities.DailyDraw{createTestDraw(1, 1, 1, 2, 3), createTestDraw(2, 2, 4, 5, 6, 7)}
	afterSecond := RecalculateHits(draws, []*entities.Player{ana})
	require.Equal(t, 6, afterSecond[0].Combinations[0].Hits)

	mocks.WinnerRepo.On("CountByGame", ctx, testGameID).Return(0, nil).Once()
	mocks.WinnerRepo.On("Exists", ctx, key).Return(false, nil).Once()
	mocks.WinnerRepo.On("Create", ctx, mock.MatchedBy(func(w *entities.Winner) bool {
		return w.Key() == key
	})).Run(assignWinnerID(1)).Return(true, nil).Once()
	// One combination at 10.00 with 20% kept by the admin leaves 8.00
	mocks.Notifier.On("NotifyWinners", ctx, interfaces.WinnerNotification{
		GameID:         testGameID,
		GameName:       game.Name,
		PlayerNames:    []string{"Ana"},
		WinningNumbers: [][]int{{1, 2, 3, 4, 5, 6}},
		PrizePerWinner: 800,
	}).Return(nil).Once()

	detection, err = detector.DetectWinners(ctx, game, afterSecond)
	require.NoError(t, err)
	require.Len(t, detection.Winners, 1)
	assert.Equal(t, "Ana", detection.Winners[0].Name)
	require.Len(t, detection.NewlyDetected, 1)
	assert.Equal(t, key, detection.NewlyDetected[0].Key())
	assert.Equal(t, int64(1), detection.NewlyDetected[0].ID)

	// Running again with the same state records nothing new and stays quiet
	mocks.WinnerRepo.On("CountByGame", ctx, testGameID).Return(1, nil).Once()
	mocks.WinnerRepo.On("Exists", ctx, key).Return(true, nil).Once()

	detection, err = detector.DetectWinners(ctx, game, afterSecond)
	require.NoError(t, err)
	assert.Empty(t, detection.NewlyDetected)
	require.Len(t, detection.Winners, 1)
	assert.Equal(t, "Ana", detection.Winners[0].Name)

	mocks.AssertAllExpectations(t)
	mocks.WinnerRepo.AssertNumberOfCalls(t, "Create", 1)
	mocks.Notifier.AssertNumberOfCalls(t, "NotifyWinners", 1)
}

func TestWinnerDetector_ThresholdIsExact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		requiredHits int
		hits         []int
		wantWinning  []int64
	}{
		{name: "five of six is not a win", requiredHits: 6, hits: []int{5}, wantWinning: nil},
		{name: "six of six wins", requiredHits: 6, hits: []int{6}, wantWinning: []int64{100}},
		{name: "only qualifying combinations reported", requiredHits: 6, hits: []int{6, 4, 6}, wantWinning: []int64{100, 102}},
		{name: "lower threshold", requiredHits: 4, hits: []int{3, 4, 5}, wantWinning: []int64{101}},
		{name: "zero threshold defaults to six", requiredHits: 0, hits: []int{5, 6}, wantWinning: []int64{101}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			winnerRepo := new(testhelpers.MockWinnerRepository)
			detector := NewWinnerDetector(winnerRepo, nil)
			game := createTestGame(func(g *entities.Game) { g.Config.RequiredHits = tt.requiredHits })

			player := &entities.Player{ID: 1, GameID: testGameID, Name: "Ana"}
			for i, hits := range tt.hits {
				player.Combinations = append(player.Combinations, &entities.Combination{ID: 100 + int64(i), PlayerID: 1, Hits: hits})
			}

			winnerRepo.On("CountByGame", ctx, testGameID).Return(0, nil)
			winnerRepo.On("Exists", ctx, mock.Anything).Return(false, nil)
			winnerRepo.On("Create", ctx, mock.Anything).Return(true, nil)

			detection, err := detector.DetectWinners(ctx, game, []*entities.Player{player})
			require.NoError(t, err)

			var got []int64
			for _, w := range detection.NewlyDetected {
				got = append(got, w.CombinationID)
			}
			assert.Equal(t, tt.wantWinning, got)
			assert.Equal(t, len(tt.wantWinning) > 0, len(detection.Winners) == 1)
		})
	}
}

func TestWinnerDetector_PartialFailureKeepsSuccessfulInserts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mocks := NewTestMocks()
	detector := NewWinnerDetector(mocks.WinnerRepo, mocks.Notifier)
	game := createTestGame()

	ana := createTestPlayer(1, "Ana", []int{1, 2, 3, 4, 5, 6})
	bia := createTestPlayer(2, "Bia", []int{1, 2, 3, 4, 5, 7})
	ana.Combinations[0].Hits = 6
	bia.Combinations[0].Hits = 6
	anaKey := entities.WinnerKey{GameID: testGameID, PlayerID: 1, CombinationID: 100}
	biaKey := entities.WinnerKey{GameID: testGameID, PlayerID: 2, CombinationID: 200}
	dbErr := errors.New("connection reset")

	mocks.WinnerRepo.On("CountByGame", ctx, testGameID).Return(0, nil)
	mocks.WinnerRepo.On("Exists", ctx, anaKey).Return(false, nil)
	mocks.WinnerRepo.On("Exists", ctx, biaKey).Return(false, nil)
	mocks.WinnerRepo.On("Create", ctx, mock.MatchedBy(func(w *entities.Winner) bool { return w.PlayerID == 1 })).
		Return(false, dbErr)
	mocks.WinnerRepo.On("Create", ctx, mock.MatchedBy(func(w *entities.Winner) bool { return w.PlayerID == 2 })).
		Run(assignWinnerID(7)).Return(true, nil)
	mocks.Notifier.On("NotifyWinners", ctx, mock.MatchedBy(func(n interfaces.WinnerNotification) bool {
		return assert.ObjectsAreEqual([]string{"Bia"}, n.PlayerNames)
	})).Return(nil)

	detection, err := detector.DetectWinners(ctx, game, []*entities.Player{ana, bia})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWinnerPersistence)
	assert.ErrorIs(t, err, dbErr)
	require.NotNil(t, detection)
	assert.Len(t, detection.Winners, 2)
	require.Len(t, detection.NewlyDetected, 1)
	assert.Equal(t, biaKey, detection.NewlyDetected[0].Key())
	require.Len(t, detection.Failed, 1)
	assert.Equal(t, anaKey, detection.Failed[0].Key)
	mocks.AssertAllExpectations(t)
}

func TestWinnerDetector_ConcurrentInsertIsNotNew(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	winnerRepo := new(testhelpers.MockWinnerRepository)
	notifier := new(testhelpers.MockNotifier)
	detector := NewWinnerDetector(winnerRepo, notifier)

	ana := createTestPlayer(1, "Ana", []int{1, 2, 3, 4, 5, 6})
	ana.Combinations[0].Hits = 6

	winnerRepo.On("CountByGame", ctx, testGameID).Return(0, nil)
	winnerRepo.On("Exists", ctx, mock.Anything).Return(false, nil)
	winnerRepo.On("Create", ctx, mock.Anything).Return(false, nil)

	detection, err := detector.DetectWinners(ctx, createTestGame(), []*entities.Player{ana})
	require.NoError(t, err)
	assert.Empty(t, detection.NewlyDetected)
	assert.Len(t, detection.Winners, 1)
	notifier.AssertNotCalled(t, "NotifyWinners", mock.Anything, mock.Anything)
}

func TestWinnerDetector_NotifiesOnlyFirstCohort(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	winnerRepo := new(testhelpers.MockWinnerRepository)
	notifier := new(testhelpers.MockNotifier)
	detector := NewWinnerDetector(winnerRepo, notifier)

	bia := createTestPlayer(2, "Bia", []int{1, 2, 3, 4, 5, 7})
	bia.Combinations[0].Hits = 6

	// Another player already won in an earlier pass
	winnerRepo.On("CountByGame", ctx, testGameID).Return(1, nil)
	winnerRepo.On("Exists", ctx, mock.Anything).Return(false, nil)
	winnerRepo.On("Create", ctx, mock.Anything).Return(true, nil)

	detection, err := detector.DetectWinners(ctx, createTestGame(), []*entities.Player{bia})
	require.NoError(t, err)
	assert.Len(t, detection.NewlyDetected, 1)
	notifier.AssertNotCalled(t, "NotifyWinners", mock.Anything, mock.Anything)
}

func TestWinnerDetector_NotifierErrorDoesNotFailDetection(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	winnerRepo := new(testhelpers.MockWinnerRepository)
	notifier := new(testhelpers.MockNotifier)
	detector := NewWinnerDetector(winnerRepo, notifier)

	ana := createTestPlayer(1, "Ana", []int{1, 2, 3, 4, 5, 6})
	ana.Combinations[0].Hits = 6

	winnerRepo.On("CountByGame", ctx, testGameID).Return(0, nil)
	winnerRepo.On("Exists", ctx, mock.Anything).Return(false, nil)
	winnerRepo.On("Create", ctx, mock.Anything).Return(true, nil)
	notifier.On("NotifyWinners", ctx, mock.Anything).Return(errors.New("discord unavailable"))

	detection, err := detector.DetectWinners(ctx, createTestGame(), []*entities.Player{ana})
	require.NoError(t, err)
	assert.Len(t, detection.NewlyDetected, 1)
	notifier.AssertExpectations(t)
}

func TestWinnerDetector_CountFailureAborts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	winnerRepo := new(testhelpers.MockWinnerRepository)
	detector := NewWinnerDetector(winnerRepo, nil)

	winnerRepo.On("CountByGame", ctx, testGameID).Return(0, errors.New("boom"))

	detection, err := detector.DetectWinners(ctx, createTestGame(), nil)
	assert.Error(t, err)
	assert.Nil(t, detection)
}

func TestWinnerDetector_NoPlayers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	winnerRepo := new(testhelpers.MockWinnerRepository)
	detector := NewWinnerDetector(winnerRepo, nil)

	winnerRepo.On("CountByGame", ctx, testGameID).Return(0, nil)

	detection, err := detector.DetectWinners(ctx, createTestGame(), []*entities.Player{})
	require.NoError(t, err)
	assert.NotNil(t, detection.Winners)
	assert.NotNil(t, detection.NewlyDetected)
	assert.Empty(t, detection.Failed)
}
