package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Sherwin-Cui/three-kindoms/internal/engine"
)

// ChoiceRequest is the body of POST /v1/choice.
type ChoiceRequest struct {
	SessionID string `json:"session_id"`
	EventID   string `json:"event_id"`
	Option    string `json:"option"`
}

// ChoiceHandler resolves choice events.
type ChoiceHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewChoiceHandler(e *engine.Engine, logger *slog.Logger) *ChoiceHandler {
	return &ChoiceHandler{engine: e, logger: logger}
}

func (h *ChoiceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, h.logger) {
		return
	}
	var req ChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}
	id, err := parseSessionID(req.SessionID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session_id.")
		return
	}
	if req.EventID == "" || req.Option == "" {
		writeError(w, h.logger, http.StatusBadRequest, "event_id and option are required.")
		return
	}

	outcome, err := h.engine.ResolveChoice(r.Context(), id, req.EventID, req.Option)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, outcome)
}
