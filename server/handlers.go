package server

import (
	"net/http"

	"bolao/application/dto"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts an error-returning handler, mapping the error onto a response
func handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			writeError(w, r, err)
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) error {
	var req dto.CreateGameRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	game, err := s.console.CreateGame(r.Context(), req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, game)
	return nil
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) error {
	games, err := s.console.ListGames(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, games)
	return nil
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	game, err := s.console.GetGame(r.Context(), gameID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, game)
	return nil
}

func (s *Server) handleCloseGame(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	game, err := s.console.CloseGame(r.Context(), gameID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, game)
	return nil
}

func (s *Server) handleCancelGame(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	game, err := s.console.CancelGame(r.Context(), gameID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, game)
	return nil
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	if err := s.console.DeleteGame(r.Context(), gameID); err != nil {
		return err
	}
	writeJSON(w, http.StatusNoContent, nil)
	return nil
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	players, err := s.console.ListPlayers(r.Context(), gameID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, players)
	return nil
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	var req dto.AddPlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	change, err := s.console.AddPlayer(r.Context(), gameID, req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, change)
	return nil
}

func (s *Server) handleRenamePlayer(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	playerID, err := pathID(r, "playerID")
	if err != nil {
		return err
	}
	var req dto.RenamePlayerRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	player, err := s.console.RenamePlayer(r.Context(), gameID, playerID, req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, player)
	return nil
}

func (s *Server) handleAddCombination(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	playerID, err := pathID(r, "playerID")
	if err != nil {
		return err
	}
	var req dto.AddCombinationRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	change, err := s.console.AddCombination(r.Context(), gameID, playerID, req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, change)
	return nil
}

func (s *Server) handleRemoveCombination(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	playerID, err := pathID(r, "playerID")
	if err != nil {
		return err
	}
	combinationID, err := pathID(r, "combinationID")
	if err != nil {
		return err
	}
	summary, err := s.console.RemoveCombination(r.Context(), gameID, playerID, combinationID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, summary)
	return nil
}

func (s *Server) handleListDraws(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	draws, err := s.console.ListDraws(r.Context(), gameID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, draws)
	return nil
}

func (s *Server) handleAddDraw(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	var req dto.AddDrawRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	change, err := s.console.AddDraw(r.Context(), gameID, req)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusCreated, change)
	return nil
}

func (s *Server) handleRecalculate(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	summary, err := s.console.Recalculate(r.Context(), gameID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, summary)
	return nil
}

func (s *Server) handleWinners(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	winners, err := s.console.Winners(r.Context(), gameID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, winners)
	return nil
}

func (s *Server) handleNearWinners(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	near, err := s.console.NearWinners(r.Context(), gameID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, near)
	return nil
}

func (s *Server) handleRanking(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	ranking, err := s.console.Ranking(r.Context(), gameID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, ranking)
	return nil
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) error {
	gameID, err := pathID(r, "gameID")
	if err != nil {
		return err
	}
	summary, err := s.console.Summary(r.Context(), gameID)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, summary)
	return nil
}
