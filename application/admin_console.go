package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bolao/application/dto"
	"bolao/domain/entities"
	"bolao/domain/interfaces"
	"bolao/domain/services"
	"bolao/infrastructure/observability"

	log "github.com/sirupsen/logrus"
)

// ErrInvalidDrawDate is returned when a draw date is not YYYY-MM-DD
var ErrInvalidDrawDate = errors.New("invalid draw date")

// AdminConsole runs every administrator use case in its own unit of work.
// Changes to draws or combinations are followed by a results refresh in the
// same transaction.
type AdminConsole struct {
	uowFactory UnitOfWorkFactory
	defaults   entities.GameConfig
}

// NewAdminConsole creates a new admin console. defaults supplies the rules a
// new game leaves unset.
func NewAdminConsole(uowFactory UnitOfWorkFactory, defaults entities.GameConfig) *AdminConsole {
	return &AdminConsole{
		uowFactory: uowFactory,
		defaults:   defaults,
	}
}

// gameServices are the domain services bound to one unit of work
type gameServices struct {
	games   interfaces.GameService
	players interfaces.PlayerService
	draws   interfaces.DrawService
	results interfaces.ResultsService
}

func (c *AdminConsole) servicesFor(uow UnitOfWork) *gameServices {
	detector := services.NewWinnerDetector(uow.WinnerRepository(), newEventNotifier(uow.EventBus()))

	return &gameServices{
		games: services.NewGameService(
			uow.GameRepository(),
			uow.CombinationRepository(),
			uow.WinnerRepository(),
			uow.EventBus(),
			c.defaults,
		),
		players: services.NewPlayerService(
			uow.GameRepository(),
			uow.PlayerRepository(),
			uow.CombinationRepository(),
		),
		draws: services.NewDrawService(
			uow.GameRepository(),
			uow.DrawRepository(),
			uow.EventBus(),
		),
		results: services.NewResultsService(
			uow.GameRepository(),
			uow.PlayerRepository(),
			uow.CombinationRepository(),
			uow.DrawRepository(),
			uow.WinnerRepository(),
			detector,
			uow.EventBus(),
		),
	}
}

// inTransaction runs fn in a unit of work and commits when it succeeds
func (c *AdminConsole) inTransaction(ctx context.Context, fn func(svc *gameServices) error) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			uow.Rollback()
			panic(r)
		}
	}()

	if err := fn(c.servicesFor(uow)); err != nil {
		if rbErr := uow.Rollback(); rbErr != nil {
			log.WithError(rbErr).Error("Failed to rollback transaction")
		}
		return err
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// readOnly runs fn in a unit of work that is always rolled back
func (c *AdminConsole) readOnly(ctx context.Context, fn func(svc *gameServices) error) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return fn(c.servicesFor(uow))
}

// refresh recalculates a game inside the caller's transaction. Winner
// records that failed to persist do not fail the call; they are reported in
// the summary and the successful ones are committed.
func (c *AdminConsole) refresh(ctx context.Context, svc *gameServices, gameID int64) (*interfaces.RefreshResult, *dto.RefreshSummary, error) {
	start := time.Now()
	result, err := svc.results.Refresh(ctx, gameID)
	summary := dto.NewRefreshSummary(result)

	var newWinners, failed int
	if result != nil && result.Detection != nil {
		newWinners = len(result.Detection.NewlyDetected)
		failed = len(result.Detection.Failed)
	}

	switch {
	case err == nil:
		observability.RecordRefresh(observability.ResultSuccess, time.Since(start),
			result.ChangedCombinations, newWinners, failed, result.AutoClosed)
		return result, summary, nil

	case errors.Is(err, services.ErrWinnerPersistence) && summary != nil && result.Detection != nil:
		log.WithFields(log.Fields{
			"gameID":        gameID,
			"newWinners":    newWinners,
			"failedWinners": failed,
		}).WithError(err).Warn("Some winner records could not be persisted")
		observability.RecordRefresh(observability.ResultPartial, time.Since(start),
			result.ChangedCombinations, newWinners, failed, result.AutoClosed)
		return result, summary, nil

	default:
		observability.RecordRefresh(observability.ResultError, time.Since(start), 0, 0, 0, false)
		return nil, nil, err
	}
}

// CreateGame starts a new game
func (c *AdminConsole) CreateGame(ctx context.Context, req dto.CreateGameRequest) (*entities.Game, error) {
	var game *entities.Game
	err := c.inTransaction(ctx, func(svc *gameServices) error {
		var err error
		game, err = svc.games.CreateGame(ctx, req.Name, req.OwnerID, req.GameConfig(c.defaults))
		return err
	})
	return game, err
}

// GetGame returns a game by ID
func (c *AdminConsole) GetGame(ctx context.Context, gameID int64) (*entities.Game, error) {
	var game *entities.Game
	err := c.readOnly(ctx, func(svc *gameServices) error {
		var err error
		game, err = svc.games.GetGame(ctx, gameID)
		return err
	})
	return game, err
}

// ListGames returns games, optionally filtered by status name
func (c *AdminConsole) ListGames(ctx context.Context, status string) ([]*entities.Game, error) {
	var filter *entities.GameStatus
	if status != "" {
		s := entities.GameStatus(status)
		filter = &s
	}

	var games []*entities.Game
	err := c.readOnly(ctx, func(svc *gameServices) error {
		var err error
		games, err = svc.games.ListGames(ctx, filter)
		return err
	})
	return games, err
}

// CloseGame closes a game and assigns prizes
func (c *AdminConsole) CloseGame(ctx context.Context, gameID int64) (*entities.Game, error) {
	var game *entities.Game
	err := c.inTransaction(ctx, func(svc *gameServices) error {
		var err error
		game, err = svc.games.CloseGame(ctx, gameID)
		return err
	})
	return game, err
}

// CancelGame cancels a game without assigning prizes
func (c *AdminConsole) CancelGame(ctx context.Context, gameID int64) (*entities.Game, error) {
	var game *entities.Game
	err := c.inTransaction(ctx, func(svc *gameServices) error {
		var err error
		game, err = svc.games.CancelGame(ctx, gameID)
		return err
	})
	return game, err
}

// DeleteGame removes a game and everything it owns
func (c *AdminConsole) DeleteGame(ctx context.Context, gameID int64) error {
	return c.inTransaction(ctx, func(svc *gameServices) error {
		return svc.games.DeleteGame(ctx, gameID)
	})
}

// AddPlayer registers a player and refreshes the game's results
func (c *AdminConsole) AddPlayer(ctx context.Context, gameID int64, req dto.AddPlayerRequest) (*dto.PlayerChange, error) {
	var change *dto.PlayerChange
	err := c.inTransaction(ctx, func(svc *gameServices) error {
		player, err := svc.players.AddPlayer(ctx, gameID, req.Name, req.Combinations)
		if err != nil {
			return err
		}

		result, summary, err := c.refresh(ctx, svc, gameID)
		if err != nil {
			return err
		}

		if refreshed := findPlayer(result.Players, player.ID); refreshed != nil {
			player = refreshed
		}
		change = &dto.PlayerChange{Player: player, Refresh: summary}
		return nil
	})
	return change, err
}

// RenamePlayer changes a player's display name
func (c *AdminConsole) RenamePlayer(ctx context.Context, gameID, playerID int64, req dto.RenamePlayerRequest) (*entities.Player, error) {
	var player *entities.Player
	err := c.inTransaction(ctx, func(svc *gameServices) error {
		var err error
		player, err = svc.players.RenamePlayer(ctx, gameID, playerID, req.Name)
		return err
	})
	return player, err
}

// AddCombination adds a combination to a player and refreshes the game's results
func (c *AdminConsole) AddCombination(ctx context.Context, gameID, playerID int64, req dto.AddCombinationRequest) (*dto.CombinationChange, error) {
	var change *dto.CombinationChange
	err := c.inTransaction(ctx, func(svc *gameServices) error {
		combination, err := svc.players.AddCombination(ctx, gameID, playerID, req.Numbers)
		if err != nil {
			return err
		}

		result, summary, err := c.refresh(ctx, svc, gameID)
		if err != nil {
			return err
		}

		if player := findPlayer(result.Players, playerID); player != nil {
			if refreshed := player.FindCombination(combination.ID); refreshed != nil {
				combination = refreshed
			}
		}
		change = &dto.CombinationChange{Combination: combination, Refresh: summary}
		return nil
	})
	return change, err
}

// RemoveCombination deletes a combination and refreshes the game's results
func (c *AdminConsole) RemoveCombination(ctx context.Context, gameID, playerID, combinationID int64) (*dto.RefreshSummary, error) {
	var summary *dto.RefreshSummary
	err := c.inTransaction(ctx, func(svc *gameServices) error {
		if err := svc.players.RemoveCombination(ctx, gameID, playerID, combinationID); err != nil {
			return err
		}

		var err error
		_, summary, err = c.refresh(ctx, svc, gameID)
		return err
	})
	return summary, err
}

// ListPlayers returns a game's players with their combinations
func (c *AdminConsole) ListPlayers(ctx context.Context, gameID int64) ([]*entities.Player, error) {
	var players []*entities.Player
	err := c.readOnly(ctx, func(svc *gameServices) error {
		var err error
		players, err = svc.players.ListPlayers(ctx, gameID)
		return err
	})
	return players, err
}

// AddDraw records a daily draw and refreshes the game's results
func (c *AdminConsole) AddDraw(ctx context.Context, gameID int64, req dto.AddDrawRequest) (*dto.DrawChange, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDrawDate, req.Date)
	}

	var change *dto.DrawChange
	err = c.inTransaction(ctx, func(svc *gameServices) error {
		draw, err := svc.draws.AddDraw(ctx, gameID, date, req.Numbers)
		if err != nil {
			return err
		}

		_, summary, err := c.refresh(ctx, svc, gameID)
		if err != nil {
			return err
		}

		change = &dto.DrawChange{Draw: draw, Refresh: summary}
		return nil
	})
	return change, err
}

// ListDraws returns a game's draws ordered by date
func (c *AdminConsole) ListDraws(ctx context.Context, gameID int64) ([]*entities.DailyDraw, error) {
	var draws []*entities.DailyDraw
	err := c.readOnly(ctx, func(svc *gameServices) error {
		var err error
		draws, err = svc.draws.ListDraws(ctx, gameID)
		return err
	})
	return draws, err
}

// Recalculate refreshes a game's results on demand
func (c *AdminConsole) Recalculate(ctx context.Context, gameID int64) (*dto.RefreshSummary, error) {
	var summary *dto.RefreshSummary
	err := c.inTransaction(ctx, func(svc *gameServices) error {
		var err error
		_, summary, err = c.refresh(ctx, svc, gameID)
		return err
	})
	return summary, err
}

// Winners returns a game's winner records
func (c *AdminConsole) Winners(ctx context.Context, gameID int64) ([]*entities.Winner, error) {
	var winners []*entities.Winner
	err := c.readOnly(ctx, func(svc *gameServices) error {
		var err error
		winners, err = svc.results.Winners(ctx, gameID)
		return err
	})
	return winners, err
}

// NearWinners returns combinations one hit short of winning
func (c *AdminConsole) NearWinners(ctx context.Context, gameID int64) ([]*entities.NearWinner, error) {
	var nearWinners []*entities.NearWinner
	err := c.readOnly(ctx, func(svc *gameServices) error {
		var err error
		nearWinners, err = svc.results.NearWinners(ctx, gameID)
		return err
	})
	return nearWinners, err
}

// Ranking returns players ordered by their best combination
func (c *AdminConsole) Ranking(ctx context.Context, gameID int64) ([]*entities.RankingEntry, error) {
	var ranking []*entities.RankingEntry
	err := c.readOnly(ctx, func(svc *gameServices) error {
		var err error
		ranking, err = svc.results.Ranking(ctx, gameID)
		return err
	})
	return ranking, err
}

// Summary returns a game's counts and prize figures
func (c *AdminConsole) Summary(ctx context.Context, gameID int64) (*entities.GameSummary, error) {
	var summary *entities.GameSummary
	err := c.readOnly(ctx, func(svc *gameServices) error {
		var err error
		summary, err = svc.results.Summary(ctx, gameID)
		return err
	})
	return summary, err
}

func findPlayer(players []*entities.Player, id int64) *entities.Player {
	for _, player := range players {
		if player.ID == id {
			return player
		}
	}
	return nil
}
