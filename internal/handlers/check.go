package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Sherwin-Cui/three-kindoms/internal/engine"
)

// CheckRequest is the body of POST /v1/check.
type CheckRequest struct {
	SessionID string   `json:"session_id"`
	EventID   string   `json:"event_id"`
	Items     []string `json:"items,omitempty"`
}

// CheckHandler resolves pending check events.
type CheckHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewCheckHandler(e *engine.Engine, logger *slog.Logger) *CheckHandler {
	return &CheckHandler{engine: e, logger: logger}
}

func (h *CheckHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, h.logger) {
		return
	}
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}
	id, err := parseSessionID(req.SessionID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session_id.")
		return
	}
	if req.EventID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "event_id is required.")
		return
	}

	outcome, err := h.engine.CompleteCheck(r.Context(), id, req.EventID, req.Items)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, outcome)
}
