package cmd

import (
	"context"
	"fmt"
	"strconv"

	"bolao/application"
	"bolao/config"
	"bolao/database"
	"bolao/infrastructure"

	log "github.com/sirupsen/logrus"
)

// Recalculate refreshes one game's hits and winners from the command line.
// Events are dropped, so no announcement is sent.
func Recalculate(ctx context.Context, rawGameID string) error {
	gameID, err := strconv.ParseInt(rawGameID, 10, 64)
	if err != nil || gameID <= 0 {
		return fmt.Errorf("invalid game ID %q", rawGameID)
	}

	cfg := config.Get()
	if err := cfg.ConfigureLogging(); err != nil {
		return err
	}

	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL(), database.PoolOptions{MaxConns: 2})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	uowFactory := infrastructure.NewUnitOfWorkFactory(db, infrastructure.NewNoopEventPublisher())
	console := application.NewAdminConsole(uowFactory, cfg.GameDefaults())

	summary, err := console.Recalculate(ctx, gameID)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"gameID":              summary.GameID,
		"status":              summary.GameStatus,
		"changedCombinations": summary.ChangedCombinations,
		"winners":             len(summary.Winners),
		"newWinners":          len(summary.NewWinners),
		"failedWinners":       len(summary.FailedWinners),
		"autoClosed":          summary.AutoClosed,
	}).Info("Game recalculated")
	return nil
}
