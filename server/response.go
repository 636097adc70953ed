package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"bolao/application"
	"bolao/domain/entities"
	"bolao/domain/services"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var (
	errInvalidID      = errors.New("invalid identifier")
	errBadRequestBody = errors.New("invalid request body")
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Warn("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		}).WithError(err).Error("Request failed")
		writeJSON(w, status, ErrorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, errInvalidID),
		errors.Is(err, errBadRequestBody),
		errors.Is(err, application.ErrInvalidDrawDate),
		errors.Is(err, entities.ErrInvalidCombination),
		errors.Is(err, entities.ErrInvalidDraw),
		errors.Is(err, entities.ErrInvalidGameConfig),
		errors.Is(err, services.ErrInvalidPlayerName),
		errors.Is(err, services.ErrInvalidGameName),
		errors.Is(err, services.ErrInvalidGameStatus):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrGameNotFound),
		errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrCombinationNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrGameNotActive),
		errors.Is(err, entities.ErrInvalidStatusTransition),
		errors.Is(err, entities.ErrDuplicateCombination),
		errors.Is(err, entities.ErrDrawAlreadyRecorded),
		errors.Is(err, entities.ErrCombinationHasWinner):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty request body", errBadRequestBody)
	}
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequestBody, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s %q", errInvalidID, name, raw)
	}
	return id, nil
}
