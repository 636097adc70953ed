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

const winnerColumns = `id, game_id, player_id, combination_id, prize_amount, created_at`

// WinnerRepository implements winner data access
type WinnerRepository struct {
	q Queryable
}

// NewWinnerRepository creates a new winner repository over the pool
func NewWinnerRepository(db *database.DB) *WinnerRepository {
	return &WinnerRepository{q: db.Pool}
}

func newWinnerRepositoryWithTx(tx Queryable) *WinnerRepository {
	return &WinnerRepository{q: tx}
}

// Exists reports whether the (game, player, combination) triple is recorded
func (r *WinnerRepository) Exists(ctx context.Context, key entities.WinnerKey) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM winners
			WHERE game_id = $1 AND player_id = $2 AND combination_id = $3
		)
	`

	var exists bool
	if err := r.q.QueryRow(ctx, query, key.GameID, key.PlayerID, key.CombinationID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check winner: %w", err)
	}
	return exists, nil
}

// Create inserts a winner record inside a savepoint, so a failure of one
// record leaves the caller's transaction usable for the rest.
func (r *WinnerRepository) Create(ctx context.Context, winner *entities.Winner) (bool, error) {
	query := `
		INSERT INTO winners (game_id, player_id, combination_id, prize_amount)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (game_id, player_id, combination_id) DO NOTHING
		RETURNING id, created_at
	`

	sp, err := r.q.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin winner savepoint: %w", err)
	}
	defer sp.Rollback(ctx)

	err = sp.QueryRow(ctx, query,
		winner.GameID,
		winner.PlayerID,
		winner.CombinationID,
		winner.PrizeAmount,
	).Scan(&winner.ID, &winner.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to create winner: %w", err)
	}

	if err := sp.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to release winner savepoint: %w", err)
	}
	return true, nil
}

// CountByGame returns the number of winner records of a game
func (r *WinnerRepository) CountByGame(ctx context.Context, gameID int64) (int, error) {
	var count int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM winners WHERE game_id = $1`, gameID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count winners: %w", err)
	}
	return count, nil
}

// GetByGame returns the winner records of a game in creation order
func (r *WinnerRepository) GetByGame(ctx context.Context, gameID int64) ([]*entities.Winner, error) {
	query := `
		SELECT ` + winnerColumns + `
		FROM winners
		WHERE game_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.q.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get winners for game %d: %w", gameID, err)
	}
	defer rows.Close()

	winners := []*entities.Winner{}
	for rows.Next() {
		var winner entities.Winner
		err := rows.Scan(
			&winner.ID,
			&winner.GameID,
			&winner.PlayerID,
			&winner.CombinationID,
			&winner.PrizeAmount,
			&winner.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan winner: %w", err)
		}
		winners = append(winners, &winner)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate winners: %w", err)
	}

	return winners, nil
}

// SetPrizeAmounts stores prize amounts keyed by winner ID in one batch
func (r *WinnerRepository) SetPrizeAmounts(ctx context.Context, amounts map[int64]int64) error {
	if len(amounts) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(amounts))
	for id := range amounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	batch := &pgx.Batch{}
	for _, id := range ids {
		batch.Queue(`UPDATE winners SET prize_amount = $2 WHERE id = $1`, id, amounts[id])
	}

	results := r.q.SendBatch(ctx, batch)
	defer results.Close()

	for _, id := range ids {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to set prize of winner %d: %w", id, err)
		}
	}

	return nil
}
