// Package handlers exposes the game engine over HTTP.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Sherwin-Cui/three-kindoms/internal/engine"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, errorResponse{Error: msg})
}

// writeEngineError maps engine errors to HTTP statuses.
func writeEngineError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, engine.ErrSessionNotFound):
		writeError(w, logger, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrSessionBusy):
		writeError(w, logger, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrGameEnded), errors.Is(err, engine.ErrBadRequest):
		writeError(w, logger, http.StatusBadRequest, err.Error())
	default:
		logger.Error("Request failed", "error", err)
		writeError(w, logger, http.StatusInternalServerError, "internal error")
	}
}

func parseSessionID(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

func requirePost(w http.ResponseWriter, r *http.Request, logger *slog.Logger) bool {
	if r.Method != http.MethodPost {
		writeError(w, logger, http.StatusMethodNotAllowed, "Method not allowed. Only POST is supported.")
		return false
	}
	return true
}
