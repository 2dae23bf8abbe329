package router

import (
	"github.com/deppfellow/booking/internal/handler"
	"github.com/deppfellow/booking/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes wires the endpoints that are not part of the API:
// probes, metrics and the embedded docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	r.GET("/health", h.Health.Health)
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/metrics", mw.Metrics.Handler())

	r.StaticFS("/static", handler.StaticFS())
	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
