package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bolao/database"
	"bolao/domain/entities"

	"github.com/jackc/pgx/v5"
)

const drawColumns = `id, game_id, draw_date, numbers, created_at`

// DrawRepository implements daily draw data access
type DrawRepository struct {
	q Queryable
}

// NewDrawRepository creates a new draw repository over the pool
func NewDrawRepository(db *database.DB) *DrawRepository {
	return &DrawRepository{q: db.Pool}
}

func newDrawRepositoryWithTx(tx Queryable) *DrawRepository {
	return &DrawRepository{q: tx}
}

// Create persists a new draw. A second draw for the same game and date is
// rejected without aborting the transaction.
func (r *DrawRepository) Create(ctx context.Context, draw *entities.DailyDraw) error {
	query := `
		INSERT INTO daily_draws (game_id, draw_date, numbers)
		VALUES ($1, $2, $3)
		ON CONFLICT (game_id, draw_date) DO NOTHING
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query, draw.GameID, entities.TruncateToDate(draw.DrawDate), draw.Numbers).
		Scan(&draw.ID, &draw.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.ErrDrawAlreadyRecorded
	}
	if err != nil {
		return fmt.Errorf("failed to create draw: %w", err)
	}

	return nil
}

// GetByGame returns the draws of a game ordered by date
func (r *DrawRepository) GetByGame(ctx context.Context, gameID int64) ([]*entities.DailyDraw, error) {
	query := `
		SELECT ` + drawColumns + `
		FROM daily_draws
		WHERE game_id = $1
		ORDER BY draw_date ASC, id ASC
	`

	rows, err := r.q.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draws for game %d: %w", gameID, err)
	}
	defer rows.Close()

	draws := []*entities.DailyDraw{}
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		draws = append(draws, draw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draws: %w", err)
	}

	return draws, nil
}

// GetByGameAndDate retrieves the draw of a calendar date
func (r *DrawRepository) GetByGameAndDate(ctx context.Context, gameID int64, date time.Time) (*entities.DailyDraw, error) {
	query := `SELECT ` + drawColumns + ` FROM daily_draws WHERE game_id = $1 AND draw_date = $2`

	draw, err := scanDraw(r.q.QueryRow(ctx, query, gameID, entities.TruncateToDate(date)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draw: %w", err)
	}
	return draw, nil
}

func scanDraw(row pgx.Row) (*entities.DailyDraw, error) {
	var draw entities.DailyDraw
	if err := row.Scan(&draw.ID, &draw.GameID, &draw.DrawDate, &draw.Numbers, &draw.CreatedAt); err != nil {
		return nil, err
	}
	draw.DrawDate = entities.TruncateToDate(draw.DrawDate)
	return &draw, nil
}
