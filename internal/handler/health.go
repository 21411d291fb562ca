package handler

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-registration/internal/middleware"
	"github.com/deppfellow/go-registration/internal/server"
)

// Checker probes one dependency.
type Checker func(ctx context.Context) error

type dependencyCheck struct {
	name     string
	check    Checker
	required bool
}

// HealthHandler serves GET /status. Only required dependencies (the
// database) turn the service unhealthy; Redis only carries welcome e-mails.
type HealthHandler struct {
	Handler
	checks []dependencyCheck
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}

	enabled := s.Config.Observability.HealthChecks.Checks
	if s.DB != nil && slices.Contains(enabled, "database") {
		h.AddCheck("database", s.DB.Ping, true)
	}
	if s.Redis != nil && slices.Contains(enabled, "redis") {
		h.AddCheck("redis", func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}, false)
	}
	return h
}

// AddCheck registers a dependency probe.
func (h *HealthHandler) AddCheck(name string, check Checker, required bool) {
	h.checks = append(h.checks, dependencyCheck{name: name, check: check, required: required})
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	if cfg.Enabled {
		for _, dep := range h.checks {
			ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
			checkStart := time.Now()
			err := dep.check(ctx)
			elapsed := time.Since(checkStart)
			cancel()

			if err == nil {
				checks[dep.name] = map[string]interface{}{
					"status":        "healthy",
					"response_time": elapsed.String(),
				}
				logger.Debug().Str("check", dep.name).Dur("response_time", elapsed).Msg("health check passed")
				continue
			}

			checks[dep.name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}
			if dep.required {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", dep.name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordHealthEvent(map[string]interface{}{
				"check_type":       dep.name,
				"operation":        "health_check",
				"error_type":       dep.name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		h.recordHealthEvent(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) recordHealthEvent(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
