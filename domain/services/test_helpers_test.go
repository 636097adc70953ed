package services

import (
	"testing"
	"time"

	"bolao/domain/entities"
	"bolao/domain/testhelpers"
)

const (
	testGameID = int64(10)
	testOwner  = "admin@bolao"
)

// TestMocks aggregates all repository mocks for testing
type TestMocks struct {
	GameRepo        *testhelpers.MockGameRepository
	PlayerRepo      *testhelpers.MockPlayerRepository
	CombinationRepo *testhelpers.MockCombinationRepository
	DrawRepo        *testhelpers.MockDrawRepository
	WinnerRepo      *testhelpers.MockWinnerRepository
	EventPublisher  *testhelpers.MockEventPublisher
	Notifier        *testhelpers.MockNotifier
}

// NewTestMocks creates a new set of mocks
func NewTestMocks() *TestMocks {
	return &TestMocks{
		GameRepo:        &testhelpers.MockGameRepository{},
		PlayerRepo:      &testhelpers.MockPlayerRepository{},
		CombinationRepo: &testhelpers.MockCombinationRepository{},
		DrawRepo:        &testhelpers.MockDrawRepository{},
		WinnerRepo:      &testhelpers.MockWinnerRepository{},
		EventPublisher:  &testhelpers.MockEventPublisher{},
		Notifier:        &testhelpers.MockNotifier{},
	}
}

// AssertAllExpectations verifies all mock expectations were met
func (m *TestMocks) AssertAllExpectations(t *testing.T) {
	m.GameRepo.AssertExpectations(t)
	m.PlayerRepo.AssertExpectations(t)
	m.CombinationRepo.AssertExpectations(t)
	m.DrawRepo.AssertExpectations(t)
	m.WinnerRepo.AssertExpectations(t)
	m.EventPublisher.AssertExpectations(t)
	m.Notifier.AssertExpectations(t)
}

// newResultsService wires a results service with a real detector over the mocks
func (m *TestMocks) newResultsService() *resultsService {
	detector := NewWinnerDetector(m.WinnerRepo, m.Notifier)
	return NewResultsService(m.GameRepo, m.PlayerRepo, m.CombinationRepo, m.DrawRepo, m.WinnerRepo, detector, m.EventPublisher).(*resultsService)
}

func createTestGame(opts ...func(*entities.Game)) *entities.Game {
	game := &entities.Game{
		ID:        testGameID,
		Name:      "Bolão da Firma",
		Status:    entities.GameStatusActive,
		OwnerID:   testOwner,
		StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Config: entities.GameConfig{
			NumbersPerSequence:    6,
			RequiredHits:          6,
			MaxNumber:             80,
			SequencePrice:         1000,
			AdminProfitPercentage: 20,
		},
	}
	for _, opt := range opts {
		opt(game)
	}
	return game
}

func withAutoClose(g *entities.Game) {
	g.Config.AutoCloseOnWin = true
}

// createTestPlayer builds a player whose combinations get IDs playerID*100+i
func createTestPlayer(id int64, name string, combinations ...[]int) *entities.Player {
	player := &entities.Player{
		ID:           id,
		GameID:       testGameID,
		Name:         name,
		Combinations: []*entities.Combination{},
	}
	for i, numbers := range combinations {
		player.Combinations = append(player.Combinations, &entities.Combination{
			ID:       id*100 + int64(i),
			GameID:   testGameID,
			PlayerID: id,
			Numbers:  numbers,
		})
	}
	return player
}

func createTestDraw(id int64, day int, numbers ...int) *entities.DailyDraw {
	return &entities.DailyDraw{
		ID:       id,
		GameID:   testGameID,
		DrawDate: time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Numbers:  numbers,
	}
}

// hitsOf maps combination IDs to hits
func hitsOf(players []*entities.Player) map[int64]int {
	hits := make(map[int64]int)
	for _, p := range players {
		for _, c := range p.Combinations {
			hits[c.ID] = c.Hits
		}
	}
	return hits
}
