// Package handler provides HTTP handlers for all API endpoints.
// Handlers talk to the in-memory registry directly — no service layer.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/albapepper/screen-nudge/internal/api/respond"
	"github.com/albapepper/screen-nudge/internal/notifications"
	"github.com/albapepper/screen-nudge/internal/users"
)

// TickReporter exposes the engine's most recent pass.
type TickReporter interface {
	LastTick() notifications.TickSummary
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	registry *users.Registry
	engine   TickReporter
	clock    clockwork.Clock
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(registry *users.Registry, engine TickReporter, clock clockwork.Clock, logger *slog.Logger) *Handler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		registry: registry,
		engine:   engine,
		clock:    clock,
		logger:   logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns service name, version and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Screen Nudge API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
		"policies": []string{
			"motivation",
			"screen_time",
			"nudge",
		},
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": h.clock.Now().UTC().Format(timeFormat),
	})
}

// HealthCheckEngine reports registry size and the last evaluation pass.
// @Summary Engine health check
// @Description Returns the number of registered devices and the most recent tick summary.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/engine [get]
func (h *Handler) HealthCheckEngine(w http.ResponseWriter, r *http.Request) {
	last := h.engine.LastTick()
	body := map[string]interface{}{
		"status":    "healthy",
		"users":     h.registry.Len(),
		"timestamp": h.clock.Now().UTC().Format(timeFormat),
	}
	if !last.At.IsZero() {
		body["last_tick"] = last
	}
	respond.WriteJSONObject(w, http.StatusOK, body)
}
