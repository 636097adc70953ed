package repository

import (
	"context"
	"errors"
	"fmt"

	"bolao/database"
	"bolao/domain/entities"

	"github.com/jackc/pgx/v5"
)

const gameColumns = `
	id, name, status, owner_id, numbers_per_sequence, required_hits, max_number,
	sequence_price, admin_profit_percentage, auto_close_on_win, started_at, ended_at, created_at`

// GameRepository implements game data access
type GameRepository struct {
	q Queryable
}

// NewGameRepository creates a new game repository over the pool
func NewGameRepository(db *database.DB) *GameRepository {
	return &GameRepository{q: db.Pool}
}

func newGameRepositoryWithTx(tx Queryable) *GameRepository {
	return &GameRepository{q: tx}
}

// Create persists a new game
func (r *GameRepository) Create(ctx context.Context, game *entities.Game) error {
	query := `
		INSERT INTO games (name, status, owner_id, numbers_per_sequence, required_hits, max_number,
		                   sequence_price, admin_profit_percentage, auto_close_on_win, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		game.Name,
		string(game.Status),
		game.OwnerID,
		game.Config.NumbersPerSequence,
		game.Config.RequiredHits,
		game.Config.MaxNumber,
		game.Config.SequencePrice,
		game.Config.AdminProfitPercentage,
		game.Config.AutoCloseOnWin,
		game.StartedAt,
	).Scan(&game.ID, &game.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// GetByID retrieves a game by its ID
func (r *GameRepository) GetByID(ctx context.Context, id int64) (*entities.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`
	return r.getOne(ctx, query, id)
}

// GetByIDForUpdate retrieves a game and locks its row for the rest of the transaction
func (r *GameRepository) GetByIDForUpdate(ctx context.Context, id int64) (*entities.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, query, id)
}

func (r *GameRepository) getOne(ctx context.Context, query string, id int64) (*entities.Game, error) {
	game, err := scanGame(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	return game, nil
}

// List returns games ordered by creation, optionally filtered by status
func (r *GameRepository) List(ctx context.Context, status *entities.GameStatus) ([]*entities.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE ($1::text IS NULL OR status = $1) ORDER BY created_at DESC, id DESC`

	var filter *string
	if status != nil {
		s := string(*status)
		filter = &s
	}

	rows, err := r.q.Query(ctx, query, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	games := []*entities.Game{}
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}

	return games, nil
}

// UpdateStatus persists the game's status and end timestamp
func (r *GameRepository) UpdateStatus(ctx context.Context, game *entities.Game) error {
	query := `UPDATE games SET status = $2, ended_at = $3 WHERE id = $1`

	tag, err := r.q.Exec(ctx, query, game.ID, string(game.Status), game.EndedAt)
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("game %d not found", game.ID)
	}

	return nil
}

// Delete removes a game; players, combinations, draws and winners cascade
func (r *GameRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM games WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete game %d: %w", id, err)
	}
	return nil
}

func scanGame(row pgx.Row) (*entities.Game, error) {
	var game entities.Game
	var status string

	err := row.Scan(
		&game.ID,
		&game.Name,
		&status,
		&game.OwnerID,
		&game.Config.NumbersPerSequence,
		&game.Config.RequiredHits,
		&game.Config.MaxNumber,
		&game.Config.SequencePrice,
		&game.Config.AdminProfitPercentage,
		&game.Config.AutoCloseOnWin,
		&game.StartedAt,
		&game.EndedAt,
		&game.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	game.Status = entities.GameStatus(status)
	return &game, nil
}
