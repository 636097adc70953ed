package services

import "errors"

var (
	ErrGameNotFound        = errors.New("game not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrCombinationNotFound = errors.New("combination not found")
	ErrInvalidPlayerName   = errors.New("player name is required")
	ErrInvalidGameName     = errors.New("game name is required")
	ErrInvalidGameStatus   = errors.New("unknown game status")

	// ErrWinnerPersistence wraps the per-pair failures of a detection pass
	ErrWinnerPersistence = errors.New("failed to persist winners")
)
