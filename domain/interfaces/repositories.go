package interfaces

import (
	"context"
	"time"

	"bolao/domain/entities"
	"bolao/events"
)

// GameRepository defines the interface for game data access
type GameRepository interface {
	// Create persists a new game and sets its ID and CreatedAt
	Create(ctx context.Context, game *entities.Game) error

	// GetByID retrieves a game by its ID, nil if it does not exist
	GetByID(ctx context.Context, id int64) (*entities.Game, error)

	// GetByIDForUpdate retrieves a game and locks its row until the transaction ends
	GetByIDForUpdate(ctx context.Context, id int64) (*entities.Game, error)

	// List returns games ordered by creation, optionally filtered by status
	List(ctx context.Context, status *entities.GameStatus) ([]*entities.Game, error)

	// UpdateStatus persists the game's status and end timestamp
	UpdateStatus(ctx context.Context, game *entities.Game) error

	// Delete removes a game together with everything it owns
	Delete(ctx context.Context, id int64) error
}

// PlayerRepository defines the interface for player data access.
// Players are always returned with their combinations ordered by creation.
type PlayerRepository interface {
	// Create persists a new player. Combinations are not written.
	Create(ctx context.Context, player *entities.Player) error

	// GetByID retrieves a player by its ID
	GetByID(ctx context.Context, id int64) (*entities.Player, error)

	// GetByGame returns all players of a game ordered by creation
	GetByGame(ctx context.Context, gameID int64) ([]*entities.Player, error)

	// UpdateName changes a player's display name
	UpdateName(ctx context.Context, id int64, name string) error
}

// CombinationRepository defines the interface for combination data access
type CombinationRepository interface {
	// Create persists a new combination and assigns its stable ID
	Create(ctx context.Context, combination *entities.Combination) error

	// GetByID retrieves a combination by its ID
	GetByID(ctx context.Context, id int64) (*entities.Combination, error)

	// Delete removes a combination. Returns entities.ErrCombinationHasWinner
	// when a winner record references it.
	Delete(ctx context.Context, id int64) error

	// UpdateHits writes hit counts keyed by combination ID
	UpdateHits(ctx context.Context, hits map[int64]int) error

	// CountByGame returns the number of combinations registered in a game
	CountByGame(ctx context.Context, gameID int64) (int, error)
}

// DrawRepository defines the interface for daily draw data access.
// Draws are append-only.
type DrawRepository interface {
	// Create persists a new draw. Returns entities.ErrDrawAlreadyRecorded
	// when the game already has a draw for that date.
	Create(ctx context.Context, draw *entities.DailyDraw) error

	// GetByGame returns all draws of a game ordered by date
	GetByGame(ctx context.Context, gameID int64) ([]*entities.DailyDraw, error)

	// GetByGameAndDate retrieves the draw recorded for a date, nil if none
	GetByGameAndDate(ctx context.Context, gameID int64, date time.Time) (*entities.DailyDraw, error)
}

// WinnerRepository defines the interface for winner data access
type WinnerRepository interface {
	// Exists reports whether a winner record exists for the key
	Exists(ctx context.Context, key entities.WinnerKey) (bool, error)

	// Create inserts a winner record. It returns false without error when a
	// record for the same key was inserted concurrently. A failed insert does
	// not abort the surrounding transaction.
	Create(ctx context.Context, winner *entities.Winner) (bool, error)

	// CountByGame returns the number of winner records of a game
	CountByGame(ctx context.Context, gameID int64) (int, error)

	// GetByGame returns the winner records of a game ordered by creation
	GetByGame(ctx context.Context, gameID int64) ([]*entities.Winner, error)

	// SetPrizeAmounts stores prize amounts keyed by winner ID
	SetPrizeAmounts(ctx context.Context, amounts map[int64]int64) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher queues events until the owning transaction
// commits. Flush publishes the queue, Discard drops it.
type TransactionalEventPublisher interface {
	EventPublisher
	Flush(ctx context.Context) error
	Discard()
}
