package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
)

// DatabaseChecker is the subset of the database handle the health endpoint
// needs.
type DatabaseChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health.
type HealthHandler struct {
	db     DatabaseChecker
	logger zerolog.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db DatabaseChecker, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger.With().Str("handler", "health").Logger(),
	}
}

// HealthResponse is the health endpoint response body.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// ServeHTTP reports liveness plus database reachability.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "healthy",
		Database: "up",
	}
	status := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error().Err(err).Msg("database health check failed")
		resp.Status = "degraded"
		resp.Database = "down"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, resp)
}
