package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/ticketdesk/internal/middleware"
	"github.com/deppfellow/ticketdesk/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler reports whether the service and its dependencies are reachable.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type dependencyCheck struct {
	name string
	ping func(ctx context.Context) error
}

// checks lists the configured dependency pings in a stable order.
func (h *HealthHandler) checks() []dependencyCheck {
	obs := h.server.Config.Observability

	var checks []dependencyCheck
	if h.server.DB != nil && obs.HealthCheckEnabled("database") {
		checks = append(checks, dependencyCheck{"database", h.server.DB.Pool.Ping})
	}
	if h.server.Redis != nil && obs.HealthCheckEnabled("redis") {
		checks = append(checks, dependencyCheck{"redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		}})
	}
	return checks
}

// CheckHealth answers 200 when every enabled check passes and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	results := make(map[string]any)
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      results,
	}

	isHealthy := true
	timeout := h.server.Config.Observability.HealthChecks.Timeout

	for _, check := range h.checks() {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		checkStart := time.Now()
		err := check.ping(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err != nil {
			isHealthy = false
			results[check.name] = map[string]any{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}

			logger.Error().
				Err(err).
				Str("check", check.name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordHealthCheckError(map[string]any{
				"check_type":       check.name,
				"operation":        "health_check",
				"error_type":       check.name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		results[check.name] = map[string]any{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}
		logger.Debug().
			Str("check", check.name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")

		h.recordHealthCheckError(map[string]any{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) recordHealthCheckError(attrs map[string]any) {
	if h.server.LoggerService == nil || h.server.LoggerService.GetApplication() == nil {
		return
	}
	h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
}
