package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Sherwin-Cui/three-kindoms/internal/engine"
)

// ItemUseRequest is the body of POST /v1/items/use.
type ItemUseRequest struct {
	SessionID string `json:"session_id"`
	ItemID    string `json:"item_id"`
	Message   string `json:"message,omitempty"`
}

// ItemHandler uses inventory items mid-dialogue.
type ItemHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewItemHandler(e *engine.Engine, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{engine: e, logger: logger}
}

func (h *ItemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, h.logger) {
		return
	}
	var req ItemUseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body.")
		return
	}
	id, err := parseSessionID(req.SessionID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session_id.")
		return
	}
	if req.ItemID == "" {
		writeError(w, h.logger, http.StatusBadRequest, "item_id is required.")
		return
	}

	result, err := h.engine.UseItem(r.Context(), id, req.ItemID, req.Message)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, result)
}
