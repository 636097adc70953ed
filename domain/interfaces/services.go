package interfaces

import (
	"context"
	"time"

	"bolao/domain/entities"
)

// WinnerNotification names the first winners of a game
type WinnerNotification struct {
	GameID         int64
	GameName       string
	PlayerNames    []string
	WinningNumbers [][]int // Newly recorded winning combinations
	PrizePerWinner int64   // Share each winning player gets if the game closes now, in cents
}

// Notifier surfaces a user-visible announcement when a game gets its first winners
type Notifier interface {
	NotifyWinners(ctx context.Context, notification WinnerNotification) error
}

// WinnerFailure is a winning pair whose record could not be persisted
type WinnerFailure struct {
	Key entities.WinnerKey
	Err error
}

// WinnerDetection is the outcome of a detection pass
type WinnerDetection struct {
	Winners       []*entities.Player // Every qualifying player, previously recorded or not
	NewlyDetected []*entities.Winner // Records created by this pass
	Failed        []WinnerFailure
}

// RefreshResult is the outcome of recalculating a game
type RefreshResult struct {
	Game                *entities.Game
	Players             []*entities.Player
	Detection           *WinnerDetection
	ChangedCombinations int
	AutoClosed          bool
}

// WinnerDetector finds combinations that reached a game's threshold and records them
type WinnerDetector interface {
	DetectWinners(ctx context.Context, game *entities.Game, players []*entities.Player) (*WinnerDetection, error)
}

// ResultsService defines the interface for hit recalculation and result queries
type ResultsService interface {
	// Refresh recalculates every combination's hits from the draw history,
	// writes changed counts back and detects new winners
	Refresh(ctx context.Context, gameID int64) (*RefreshResult, error)

	// Winners returns the persisted winner records of a game
	Winners(ctx context.Context, gameID int64) ([]*entities.Winner, error)

	// NearWinners lists combinations one hit short of the threshold
	NearWinners(ctx context.Context, gameID int64) ([]*entities.NearWinner, error)

	// Ranking orders players by their best combination
	Ranking(ctx context.Context, gameID int64) ([]*entities.RankingEntry, error)

	// Summary reports counts and prize figures of a game
	Summary(ctx context.Context, gameID int64) (*entities.GameSummary, error)
}

// GameService defines the interface for game lifecycle operations
type GameService interface {
	CreateGame(ctx context.Context, name, ownerID string, cfg entities.GameConfig) (*entities.Game, error)
	GetGame(ctx context.Context, id int64) (*entities.Game, error)
	ListGames(ctx context.Context, status *entities.GameStatus) ([]*entities.Game, error)
	CloseGame(ctx context.Context, id int64) (*entities.Game, error)
	CancelGame(ctx context.Context, id int64) (*entities.Game, error)
	DeleteGame(ctx context.Context, id int64) error
}

// PlayerService defines the interface for player and combination management
type PlayerService interface {
	AddPlayer(ctx context.Context, gameID int64, name string, combinations [][]int) (*entities.Player, error)
	RenamePlayer(ctx context.Context, gameID, playerID int64, name string) (*entities.Player, error)
	AddCombination(ctx context.Context, gameID, playerID int64, numbers []int) (*entities.Combination, error)
	RemoveCombination(ctx context.Context, gameID, playerID, combinationID int64) error
	ListPlayers(ctx context.Context, gameID int64) ([]*entities.Player, error)
}

// DrawService defines the interface for recording daily draws
type DrawService interface {
	AddDraw(ctx context.Context, gameID int64, date time.Time, numbers []int) (*entities.DailyDraw, error)
	ListDraws(ctx context.Context, gameID int64) ([]*entities.DailyDraw, error)
}
