package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"bolao/database"
	"bolao/domain/entities"

	"github.com/jackc/pgx/v5"
)

const combinationColumns = `id, game_id, player_id, numbers, hits, created_at`

// CombinationRepository implements combination data access
type CombinationRepository struct {
	q Queryable
}

// NewCombinationRepository creates a new combination repository over the pool
func NewCombinationRepository(db *database.DB) *CombinationRepository {
	return &CombinationRepository{q: db.Pool}
}

func newCombinationRepositoryWithTx(tx Queryable) *CombinationRepository {
	return &CombinationRepository{q: tx}
}

// Create persists a new combination and assigns its ID
func (r *CombinationRepository) Create(ctx context.Context, combination *entities.Combination) error {
	query := `
		INSERT INTO combinations (game_id, player_id, numbers, hits)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		combination.GameID,
		combination.PlayerID,
		combination.Numbers,
		combination.Hits,
	).Scan(&combination.ID, &combination.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create combination: %w", err)
	}

	return nil
}

// GetByID retrieves a combination by its ID
func (r *CombinationRepository) GetByID(ctx context.Context, id int64) (*entities.Combination, error) {
	query := `SELECT ` + combinationColumns + ` FROM combinations WHERE id = $1`

	combination, err := scanCombination(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get combination %d: %w", id, err)
	}
	return combination, nil
}

// Delete removes a combination unless a winner references it. The check
// lives in the statement so a refused delete leaves the transaction usable.
func (r *CombinationRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM combinations c
		WHERE c.id = $1
		  AND NOT EXISTS (SELECT 1 FROM winners w WHERE w.combination_id = c.id)
	`

	tag, err := r.q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete combination %d: %w", id, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM combinations WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check combination %d: %w", id, err)
	}
	if exists {
		return entities.ErrCombinationHasWinner
	}
	return nil
}

// UpdateHits writes hit counts in a single batch. Rows are updated in ID
// order so concurrent writers lock them in the same sequence.
func (r *CombinationRepository) UpdateHits(ctx context.Context, hits map[int64]int) error {
	if len(hits) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(hits))
	for id := range hits {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(`UPDATE combinations SET hits = $2 WHERE id = $1`, id, hits[id])
	}

	results := r.q.SendBatch(ctx, batch)
	for _, id := range ids {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to update hits of combination %d: %w", id, err)
		}
	}

	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close hits batch: %w", err)
	}
	return nil
}

// CountByGame returns the number of combinations in a game
func (r *CombinationRepository) CountByGame(ctx context.Context, gameID int64) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM combinations WHERE game_id = $1`, gameID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count combinations: %w", err)
	}
	return count, nil
}

func scanCombination(row pgx.Row) (*entities.Combination, error) {
	var combination entities.Combination
	err := row.Scan(
		&combination.ID,
		&combination.GameID,
		&combination.PlayerID,
		&combination.Numbers,
		&combination.Hits,
		&combination.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &combination, nil
}
