package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Sherwin-Cui/three-kindoms/internal/storage"
)

// HealthHandler reports service liveness and storage connectivity.
type HealthHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewHealthHandler(s storage.Storage, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{storage: s, logger: logger}
}

type healthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Only GET is supported.")
		return
	}
	resp := healthResponse{Status: "ok", Storage: "ok"}
	status := http.StatusOK
	if err := h.storage.Ping(r.Context()); err != nil {
		h.logger.Error("Storage health check failed", "error", err)
		resp.Status = "degraded"
		resp.Storage = err.Error()
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, h.logger, status, resp)
}
