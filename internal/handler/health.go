package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/go-profile/internal/middleware"
	"github.com/deppfellow/go-profile/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s, nil),
	}
}

type checkFunc func(ctx context.Context) error

// CheckHealth runs the configured dependency checks. It answers 200 when all
// of them pass and 503 otherwise. Redis is reported but never fails the check,
// since profile reads and writes work without it.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]any)
	isHealthy := true
	obs := h.server.Config.Observability

	timeout := 5 * time.Second
	if obs != nil && obs.HealthChecks.Timeout > 0 {
		timeout = obs.HealthChecks.Timeout
	}

	run := func(name string, check checkFunc) bool {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		checkStart := time.Now()
		err := check(ctx)
		elapsed := time.Since(checkStart)

		if err != nil {
			checks[name] = map[string]any{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}
			logger.Error().Err(err).Dur("response_time", elapsed).Msgf("%s health check failed", name)
			h.recordFailure(name, name+"_unhealthy", elapsed, err)
			return false
		}

		checks[name] = map[string]any{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}
		logger.Debug().Dur("response_time", elapsed).Msgf("%s health check passed", name)
		return true
	}

	if obs == nil || obs.HasCheck("database") {
		if !run("database", h.server.DB.Pool.Ping) {
			isHealthy = false
		}
	}

	if h.server.Redis != nil && (obs == nil || obs.HasCheck("redis")) {
		run("redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordFailure("overall", "overall_unhealthy", time.Since(start), nil)
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

// recordFailure sends a HealthCheckError custom event when New Relic is enabled.
func (h *HealthHandler) recordFailure(checkType, errorType string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	event := map[string]any{
		"check_type":       checkType,
		"operation":        "health_check",
		"error_type":       errorType,
		"response_time_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		event["error_message"] = err.Error()
	}
	app.RecordCustomEvent("HealthCheckError", event)
}
