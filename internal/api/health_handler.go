package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/estudai/estudai-api/internal/api/shared"
	"github.com/estudai/estudai-api/internal/generation"
	"github.com/estudai/estudai-api/internal/platform/logger"
)

// HealthHandler serves liveness and AI readiness probes.
type HealthHandler struct {
	db *sql.DB
	ai generation.HealthChecker
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db *sql.DB, ai generation.HealthChecker) *HealthHandler {
	return &HealthHandler{db: db, ai: ai}
}

// Health handles GET /health: the process is up and the database answers.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		shared.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "unhealthy",
			"database": "unreachable",
		})
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthAI handles GET /health/ai: the generation backend answers a probe
// prompt correctly.
func (h *HealthHandler) HealthAI(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := h.ai.CheckHealth(r.Context()); err != nil {
		log.Warn("AI health probe failed", slog.String("error", err.Error()))
		shared.RespondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"ai":     "unreachable",
		})
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"ai":     "ok",
	})
}
