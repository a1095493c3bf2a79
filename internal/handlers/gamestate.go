package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Sherwin-Cui/three-kindoms/internal/engine"
)

// GameStateHandler creates sessions and serves their state.
//
//	POST /v1/gamestate          create a new playthrough
//	GET  /v1/gamestate/{id}     fetch current state
type GameStateHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewGameStateHandler(e *engine.Engine, logger *slog.Logger) *GameStateHandler {
	return &GameStateHandler{engine: e, logger: logger}
}

func (h *GameStateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		gs, err := h.engine.NewSession(r.Context())
		if err != nil {
			writeEngineError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusCreated, gs)
	case http.MethodGet:
		raw := strings.TrimPrefix(r.URL.Path, "/v1/gamestate/")
		id, err := parseSessionID(raw)
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid session id in path.")
			return
		}
		gs, err := h.engine.GetState(r.Context(), id)
		if err != nil {
			writeEngineError(w, h.logger, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, gs)
	default:
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed.")
	}
}

// ChapterHandler advances a resolved chapter. POST /v1/chapter.
type ChapterHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewChapterHandler(e *engine.Engine, logger *slog.Logger) *ChapterHandler {
	return &ChapterHandler{engine: e, logger: logger}
}

func (h *ChapterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, h.logger) {
		return
	}
	id, err := parseSessionID(r.URL.Query().Get("session_id"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session_id.")
		return
	}
	gs, err := h.engine.AdvanceChapter(r.Context(), id)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, gs)
}

// ResetHandler restarts a session at chapter 1. POST /v1/reset.
type ResetHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewResetHandler(e *engine.Engine, logger *slog.Logger) *ResetHandler {
	return &ResetHandler{engine: e, logger: logger}
}

func (h *ResetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r, h.logger) {
		return
	}
	id, err := parseSessionID(r.URL.Query().Get("session_id"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session_id.")
		return
	}
	gs, err := h.engine.Reset(r.Context(), id)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, gs)
}

// SummaryHandler serves GET /v1/summary?session_id=...
type SummaryHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewSummaryHandler(e *engine.Engine, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{engine: e, logger: logger}
}

func (h *SummaryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}
	id, err := parseSessionID(r.URL.Query().Get("session_id"))
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid session_id.")
		return
	}
	sum, err := h.engine.Summarize(r.Context(), id)
	if err != nil {
		writeEngineError(w, h.logger, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, sum)
}
