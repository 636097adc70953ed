package services

import (
	"context"
	"fmt"
	"strings"

	"bolao/domain/entities"
	"bolao/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// playerService manages players and their combinations. Callers refresh
// the game's results after combinations change.
type playerService struct {
	gameRepo        interfaces.GameRepository
	playerRepo      interfaces.PlayerRepository
	combinationRepo interfaces.CombinationRepository
}

// NewPlayerService creates a new player service
func NewPlayerService(
	gameRepo interfaces.GameRepository,
	playerRepo interfaces.PlayerRepository,
	combinationRepo interfaces.CombinationRepository,
) interfaces.PlayerService {
	return &playerService{
		gameRepo:        gameRepo,
		playerRepo:      playerRepo,
		combinationRepo: combinationRepo,
	}
}

// AddPlayer registers a player with its combinations in an active game
func (s *playerService) AddPlayer(ctx context.Context, gameID int64, name string, combinations [][]int) (*entities.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidPlayerName
	}

	game, err := s.activeGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	// Validate everything before writing anything
	seen := make(map[string]bool, len(combinations))
	for i, numbers := range combinations {
		if err := entities.ValidateCombination(numbers, game.Config); err != nil {
			return nil, fmt.Errorf("combination %d: %w", i+1, err)
		}
		key := entities.NumbersKey(numbers)
		if seen[key] {
			return nil, fmt.Errorf("combination %d: %w", i+1, entities.ErrDuplicateCombination)
		}
		seen[key] = true
	}

	player := &entities.Player{
		GameID:       gameID,
		Name:         name,
		Combinations: []*entities.Combination{},
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	for _, numbers := range combinations {
		combination := &entities.Combination{
			GameID:   gameID,
			PlayerID: player.ID,
			Numbers:  entities.NormalizeNumbers(numbers),
		}
		if err := s.combinationRepo.Create(ctx, combination); err != nil {
			return nil, fmt.Errorf("failed to create combination: %w", err)
		}
		player.Combinations = append(player.Combinations, combination)
	}

	log.WithFields(log.Fields{
		"gameID":       gameID,
		"playerID":     player.ID,
		"combinations": len(player.Combinations),
	}).Info("Player added")

	return player, nil
}

// RenamePlayer changes a player's display name
func (s *playerService) RenamePlayer(ctx context.Context, gameID, playerID int64, name string) (*entities.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidPlayerName
	}

	if _, err := s.activeGame(ctx, gameID); err != nil {
		return nil, err
	}

	player, err := s.gamePlayer(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}

	if err := s.playerRepo.UpdateName(ctx, playerID, name); err != nil {
		return nil, fmt.Errorf("failed to rename player: %w", err)
	}
	player.Name = name

	return player, nil
}

// AddCombination adds a combination to an existing player
func (s *playerService) AddCombination(ctx context.Context, gameID, playerID int64, numbers []int) (*entities.Combination, error) {
	game, err := s.activeGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := entities.ValidateCombination(numbers, game.Config); err != nil {
		return nil, err
	}

	player, err := s.gamePlayer(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	if player.HasCombination(numbers) {
		return nil, entities.ErrDuplicateCombination
	}

	combination := &entities.Combination{
		GameID:   gameID,
		PlayerID: playerID,
		Numbers:  entities.NormalizeNumbers(numbers),
	}
	if err := s.combinationRepo.Create(ctx, combination); err != nil {
		return nil, fmt.Errorf("failed to create combination: %w", err)
	}

	log.WithFields(log.Fields{
		"gameID":        gameID,
		"playerID":      playerID,
		"combinationID": combination.ID,
	}).Info("Combination added")

	return combination, nil
}

// RemoveCombination deletes a combination that has not won
func (s *playerService) RemoveCombination(ctx context.Context, gameID, playerID, combinationID int64) error {
	if _, err := s.activeGame(ctx, gameID); err != nil {
		return err
	}

	combination, err := s.combinationRepo.GetByID(ctx, combinationID)
	if err != nil {
		return fmt.Errorf("failed to get combination: %w", err)
	}
	if combination == nil || combination.GameID != gameID || combination.PlayerID != playerID {
		return ErrCombinationNotFound
	}

	if err := s.combinationRepo.Delete(ctx, combinationID); err != nil {
		return fmt.Errorf("failed to delete combination: %w", err)
	}

	log.WithFields(log.Fields{
		"gameID":        gameID,
		"playerID":      playerID,
		"combinationID": combinationID,
	}).Info("Combination removed")

	return nil
}

// ListPlayers returns the players of a game with their combinations
func (s *playerService) ListPlayers(ctx context.Context, gameID int64) ([]*entities.Player, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}

	players, err := s.playerRepo.GetByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}
	return players, nil
}

// activeGame locks the game and checks it still accepts changes
func (s *playerService) activeGame(ctx context.Context, gameID int64) (*entities.Game, error) {
	game, err := s.gameRepo.GetByIDForUpdate(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if !game.IsActive() {
		return nil, entities.ErrGameNotActive
	}
	return game, nil
}

func (s *playerService) gamePlayer(ctx context.Context, gameID, playerID int64) (*entities.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if player == nil || player.GameID != gameID {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}
