package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bolao/infrastructure/observability"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// Server is the HTTP admin API
type Server struct {
	console Console
	router  *mux.Router
	http    *http.Server
}

// New creates a server listening on addr
func New(addr string, console Console) *Server {
	s := &Server{console: console}
	s.router = s.routes()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(observability.InstrumentHandler)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", observability.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/games", handle(s.handleCreateGame)).Methods(http.MethodPost)
	api.HandleFunc("/games", handle(s.handleListGames)).Methods(http.MethodGet)

	game := api.PathPrefix("/games/{gameID:[0-9]+}").Subrouter()
	game.HandleFunc("", handle(s.handleGetGame)).Methods(http.MethodGet)
	game.HandleFunc("", handle(s.handleDeleteGame)).Methods(http.MethodDelete)
	game.HandleFunc("/close", handle(s.handleCloseGame)).Methods(http.MethodPost)
	game.HandleFunc("/cancel", handle(s.handleCancelGame)).Methods(http.MethodPost)

	game.HandleFunc("/players", handle(s.handleListPlayers)).Methods(http.MethodGet)
	game.HandleFunc("/players", handle(s.handleAddPlayer)).Methods(http.MethodPost)
	game.HandleFunc("/players/{playerID:[0-9]+}", handle(s.handleRenamePlayer)).Methods(http.MethodPatch)
	game.HandleFunc("/players/{playerID:[0-9]+}/combinations", handle(s.handleAddCombination)).Methods(http.MethodPost)
	game.HandleFunc("/players/{playerID:[0-9]+}/combinations/{combinationID:[0-9]+}", handle(s.handleRemoveCombination)).Methods(http.MethodDelete)

	game.HandleFunc("/draws", handle(s.handleListDraws)).Methods(http.MethodGet)
	game.HandleFunc("/draws", handle(s.handleAddDraw)).Methods(http.MethodPost)

	game.HandleFunc("/recalculate", handle(s.handleRecalculate)).Methods(http.MethodPost)
	game.HandleFunc("/winners", handle(s.handleWinners)).Methods(http.MethodGet)
	game.HandleFunc("/near-winners", handle(s.handleNearWinners)).Methods(http.MethodGet)
	game.HandleFunc("/ranking", handle(s.handleRanking)).Methods(http.MethodGet)
	game.HandleFunc("/summary", handle(s.handleSummary)).Methods(http.MethodGet)

	return r
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the server is shut down
func (s *Server) Start() error {
	log.WithField("addr", s.http.Addr).Info("HTTP server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
