package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/review-api/internal/middleware"
	"github.com/deppfellow/review-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const healthCheckTimeout = 5 * time.Second

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// runCheck probes one dependency and records a HealthCheckError event in
// New Relic when it fails.
func (h *HealthHandler) runCheck(logger zerolog.Logger, name string, ping func(ctx context.Context) error) checkResult {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := ping(ctx)
	elapsed := time.Since(start)

	if err == nil {
		logger.Debug().Str("check", name).Dur("response_time", elapsed).Msg("health check passed")
		return checkResult{Status: "healthy", ResponseTime: elapsed.String()}
	}

	logger.Error().Err(err).Str("check", name).Dur("response_time", elapsed).Msg("health check failed")

	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	return checkResult{Status: "unhealthy", ResponseTime: elapsed.String(), Error: err.Error()}
}

// CheckHealth answers 200 while the database is reachable and 503 once it
// is not. Redis is reported but never fails the check: the rate limiter
// fails open without it.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()
	observability := h.server.Config.Observability

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]checkResult{},
	}

	if observability.HealthCheckEnabled("database") {
		result := checkResult{Status: "unhealthy", ResponseTime: "0s", Error: "database not initialized"}
		if h.server.DB != nil {
			result = h.runCheck(logger, "database", h.server.DB.Pool.Ping)
		}
		response.Checks["database"] = result
		if result.Status != "healthy" {
			response.Status = "unhealthy"
		}
	}

	if observability.HealthCheckEnabled("redis") && h.server.Redis != nil {
		response.Checks["redis"] = h.runCheck(logger, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if response.Status != "healthy" {
		return c.JSON(http.StatusServiceUnavailable, response)
	}
	return c.JSON(http.StatusOK, response)
}
