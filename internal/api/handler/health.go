package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const readinessTimeout = 3 * time.Second

// Pinger is a dependency the readiness endpoint can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler serves the root banner and the liveness and readiness endpoints.
type HealthHandler struct {
	deps map[string]Pinger
	log  zerolog.Logger
}

func NewHealthHandler(deps map[string]Pinger, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{deps: deps, log: log}
}

// dependencyStatus carries no error text; failure details only go to the log.
type dependencyStatus struct {
	Status string `json:"status"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// Root answers GET /.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.String(http.StatusOK, "Server is running!")
}

// Liveness handles GET /health and only confirms the process is alive.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /health/ready by pinging every configured dependency.
func (h *HealthHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	deps := make(map[string]dependencyStatus, len(h.deps))
	healthy := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			h.log.Warn().Err(err).Str("dependency", name).Msg("readiness check failed")
			deps[name] = dependencyStatus{Status: "unhealthy"}
			healthy = false
			continue
		}
		deps[name] = dependencyStatus{Status: "ok"}
	}

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	return c.JSON(code, readinessResponse{Status: status, Dependencies: deps})
}
