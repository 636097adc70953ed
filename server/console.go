package server

import (
	"context"

	"bolao/application/dto"
	"bolao/domain/entities"
)

// Console is the set of admin use cases served over HTTP.
// *application.AdminConsole implements it.
type Console interface {
	CreateGame(ctx context.Context, req dto.CreateGameRequest) (*entities.Game, error)
	GetGame(ctx context.Context, gameID int64) (*entities.Game, error)
	ListGames(ctx context.Context, status string) ([]*entities.Game, error)
	CloseGame(ctx context.Context, gameID int64) (*entities.Game, error)
	CancelGame(ctx context.Context, gameID int64) (*entities.Game, error)
	DeleteGame(ctx context.Context, gameID int64) error

	AddPlayer(ctx context.Context, gameID int64, req dto.AddPlayerRequest) (*dto.PlayerChange, error)
	RenamePlayer(ctx context.Context, gameID, playerID int64, req dto.RenamePlayerRequest) (*entities.Player, error)
	AddCombination(ctx context.Context, gameID, playerID int64, req dto.AddCombinationRequest) (*dto.CombinationChange, error)
	RemoveCombination(ctx context.Context, gameID, playerID, combinationID int64) (*dto.RefreshSummary, error)
	ListPlayers(ctx context.Context, gameID int64) ([]*entities.Player, error)

	AddDraw(ctx context.Context, gameID int64, req dto.AddDrawRequest) (*dto.DrawChange, error)
	ListDraws(ctx context.Context, gameID int64) ([]*entities.DailyDraw, error)

	Recalculate(ctx context.Context, gameID int64) (*dto.RefreshSummary, error)
	Winners(ctx context.Context, gameID int64) ([]*entities.Winner, error)
	NearWinners(ctx context.Context, gameID int64) ([]*entities.NearWinner, error)
	Ranking(ctx context.Context, gameID int64) ([]*entities.RankingEntry, error)
	Summary(ctx context.Context, gameID int64) (*entities.GameSummary, error)
}
