package application

import (
	"context"

	"bolao/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and publishes queued events
	Commit() error

	// Rollback rolls back the transaction and drops queued events
	Rollback() error

	GameRepository() interfaces.GameRepository
	PlayerRepository() interfaces.PlayerRepository
	CombinationRepository() interfaces.CombinationRepository
	DrawRepository() interfaces.DrawRepository
	WinnerRepository() interfaces.WinnerRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
