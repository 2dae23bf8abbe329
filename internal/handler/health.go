package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/booking/internal/middleware"
	"github.com/deppfellow/booking/internal/model"
	"github.com/deppfellow/booking/internal/repository"
	"github.com/deppfellow/booking/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HealthHandler serves the liveness probe (/health) and the dependency
// report (/status).
type HealthHandler struct {
	Handler
	dataset *repository.Mutator
}

func NewHealthHandler(s *server.Server, dataset *repository.Mutator) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		dataset: dataset,
	}
}

// Health answers {"ok": true} while the process is up.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, model.OKResponse{OK: true})
}

type checkResult struct {
	Status       string `json:"status"`
	Backend      string `json:"backend,omitempty"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type statusResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth probes the dataset store and Redis. A failing store makes the
// response 503; Redis only backs notifications unless it is the store, so
// its failure is reported without changing the status code.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	obs := h.server.Config.Observability

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := statusResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}
	healthy := true

	ctx, cancel := context.WithTimeout(c.Request().Context(), obs.HealthChecks.Timeout)
	defer cancel()

	if obs.CheckEnabled("store") {
		result := h.runCheck(ctx, &logger, "store", func(ctx context.Context) error {
			if err := h.dataset.Repository().Ping(ctx); err != nil {
				return err
			}
			_, err := h.dataset.Load(ctx)
			return err
		})
		result.Backend = h.dataset.Repository().Name()
		response.Checks["store"] = result
		if result.Status != "healthy" {
			healthy = false
		}
	}

	if obs.CheckEnabled("redis") && h.server.Redis != nil {
		response.Checks["redis"] = h.runCheck(ctx, &logger, "redis", func(ctx context.Context) error {
			return h.server.Redis.Ping(ctx).Err()
		})
	}

	if !healthy {
		response.Status = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) runCheck(ctx context.Context, logger *zerolog.Logger, name string, check func(context.Context) error) checkResult {
	checkStart := time.Now()
	err := check(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check failed")

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

	return checkResult{Status: "healthy", ResponseTime: elapsed.String()}
}
