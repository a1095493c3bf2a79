package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Sherwin-Cui/three-kindoms/internal/engine"
)

// TurnRequest is the body of POST /v1/turn.
type TurnRequest struct {
	SessionID string `json:"session_id"`
	Input     string `json:"input"`
}

// TurnHandler processes narrated turns.
type TurnHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewTurnHandler(e *engine.Engine, logger *slog.Logger) *TurnHandler {
	return &TurnHandler{engine: e, logger: logger}
}

func (h *TurnHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, h.logger) {
		return
	}
	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body. Expected JSON with 'session_id' and 'input'.")
		return
	}
	id, err := parseSessionID(req.SessionID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session_id.")
		return
	}

	result, err := h.engine.ProcessTurn(r.Context(), id, req.Input)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
