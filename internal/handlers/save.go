package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Sherwin-Cui/three-kindoms/internal/engine"
)

// SaveHandler handles save slots.
//
//	POST /v1/saves/{slot}?session_id=...   snapshot into the slot
//	GET  /v1/saves/{slot}?session_id=...   restore from the slot
type SaveHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewSaveHandler(e *engine.Engine, logger *slog.Logger) *SaveHandler {
	return &SaveHandler{engine: e, logger: logger}
}

func (h *SaveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	slot := strings.TrimPrefix(r.URL.Path, "/v1/saves/")
	if slot == "" || strings.Contains(slot, "/") {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid slot name.")
		return
	}
	id, err := parseSessionID(r.URL.Query().Get("session_id"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session_id.")
		return
	}

	switch r.Method {
	case http.MethodPost:
		if err := h.engine.SaveSlot(r.Context(), id, slot); err != nil {
			writeEngineError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, map[string]string{"slot": slot, "status": "saved"})
	case http.MethodGet:
		gs, err := h.engine.LoadSlot(r.Context(), id, slot)
		if err != nil {
			writeEngineError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, gs)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed.")
	}
}
