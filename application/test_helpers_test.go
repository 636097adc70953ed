package application

import (
	"context"
	"testing"

	"bolao/domain/interfaces"
	"bolao/domain/testhelpers"
)

// fakeUnitOfWork hands out testify mocks and counts transaction outcomes
type fakeUnitOfWork struct {
	gameRepo        *testhelpers.MockGameRepository
	playerRepo      *testhelpers.MockPlayerRepository
	combinationRepo *testhelpers.MockCombinationRepository
	drawRepo        *testhelpers.MockDrawRepository
	winnerRepo      *testhelpers.MockWinnerRepository
	eventPublisher  *testhelpers.MockEventPublisher

	begins    int
	commits   int
	rollbacks int
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		gameRepo:        &testhelpers.MockGameRepository{},
		playerRepo:      &testhelpers.MockPlayerRepository{},
		combinationRepo: &testhelpers.MockCombinationRepository{},
		drawRepo:        &testhelpers.MockDrawRepository{},
		winnerRepo:      &testhelpers.MockWinnerRepository{},
		eventPublisher:  &testhelpers.MockEventPublisher{},
	}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error {
	u.begins++
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.commits++
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.rollbacks++
	return nil
}

func (u *fakeUnitOfWork) GameRepository() interfaces.GameRepository { return u.gameRepo }
func (u *fakeUnitOfWork) PlayerRepository() interfaces.PlayerRepository { return u.playerRepo }
func (u *fakeUnitOfWork) CombinationRepository() interfaces.CombinationRepository {
	return u.combinationRepo
}
func (u *fakeUnitOfWork) DrawRepository() interfaces.DrawRepository     { return u.drawRepo }
func (u *fakeUnitOfWork) WinnerRepository() interfaces.WinnerRepository { return u.winnerRepo }
func (u *fakeUnitOfWork) EventBus() interfaces.EventPublisher           { return u.eventPublisher }

func (u *fakeUnitOfWork) assertExpectations(t *testing.T) {
	u.gameRepo.AssertExpectations(t)
	u.playerRepo.AssertExpectations(t)
	u.combinationRepo.AssertExpectations(t)
	u.drawRepo.AssertExpectations(t)
	u.winnerRepo.AssertExpectations(t)
	u.eventPublisher.AssertExpectations(t)
}

// fakeUnitOfWorkFactory always returns the same unit of work
type fakeUnitOfWorkFactory struct {
	uow     *fakeUnitOfWork
	created int
}

func (f *fakeUnitOfWorkFactory) Create() UnitOfWork {
	f.created++
	return f.uow
}
