package repository

import (
	"context"
	"errors"
	"fmt"

	"bolao/database"
	"bolao/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PlayerRepository implements player data access. Players are loaded
// together with their combinations.
type PlayerRepository struct {
	q Queryable
}

// NewPlayerRepository creates a new player repository over the pool
func NewPlayerRepository(db *database.DB) *PlayerRepository {
	return &PlayerRepository{q: db.Pool}
}

func newPlayerRepositoryWithTx(tx Queryable) *PlayerRepository {
	return &PlayerRepository{q: tx}
}

// Create persists a new player
func (r *PlayerRepository) Create(ctx context.Context, player *entities.Player) error {
	query := `
		INSERT INTO players (game_id, name)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := r.q.QueryRow(ctx, query, player.GameID, player.Name).Scan(&player.ID, &player.CreatedAt); err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// GetByID retrieves a player with its combinations
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (*entities.Player, error) {
	query := `SELECT id, game_id, name, created_at FROM players WHERE id = $1`

	var player entities.Player
	err := r.q.QueryRow(ctx, query, id).Scan(&player.ID, &player.GameID, &player.Name, &player.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}

	combinations, err := r.loadCombinations(ctx, `WHERE player_id = $1`, id)
	if err != nil {
		return nil, err
	}
	player.Combinations = combinations[player.ID]
	if player.Combinations == nil {
		player.Combinations = []*entities.Combination{}
	}

	return &player, nil
}

// GetByGame returns the players of a game ordered by creation
func (r *PlayerRepository) GetByGame(ctx context.Context, gameID int64) ([]*entities.Player, error) {
	query := `
		SELECT id, game_id, name, created_at
		FROM players
		WHERE game_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.q.Query(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get players for game %d: %w", gameID, err)
	}
	defer rows.Close()

	players := []*entities.Player{}
	for rows.Next() {
		var player entities.Player
		if err := rows.Scan(&player.ID, &player.GameID, &player.Name, &player.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, &player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}

	combinations, err := r.loadCombinations(ctx, `WHERE game_id = $1`, gameID)
	if err != nil {
		return nil, err
	}

	for _, player := range players {
		player.Combinations = combinations[player.ID]
		if player.Combinations == nil {
			player.Combinations = []*entities.Combination{}
		}
	}

	return players, nil
}

// UpdateName changes a player's display name
func (r *PlayerRepository) UpdateName(ctx context.Context, id int64, name string) error {
	tag, err := r.q.Exec(ctx, `UPDATE players SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("failed to update player name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("player %d not found", id)
	}
	return nil
}

// loadCombinations groups combinations by player, in creation order
func (r *PlayerRepository) loadCombinations(ctx context.Context, where string, arg int64) (map[int64][]*entities.Combination, error) {
	query := `SELECT ` + combinationColumns + ` FROM combinations ` + where + ` ORDER BY created_at ASC, id ASC`

	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to get combinations: %w", err)
	}
	defer rows.Close()

	byPlayer := make(map[int64][]*entities.Combination)
	for rows.Next() {
		combination, err := scanCombination(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan combination: %w", err)
		}
		byPlayer[combination.PlayerID] = append(byPlayer[combination.PlayerID], combination)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate combinations: %w", err)
	}

	return byPlayer, nil
}
