// Package middleware holds the echo middleware shared by every route
// (request ids, request-scoped logging, CORS, recovery, tracing, metrics)
// and the route-specific rate limiter.
package middleware

import (
	"github.com/deppfellow/booking/internal/server"
)

// Middlewares is built once and handed to the router.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	Metrics         *MetricsMiddleware
	RateLimit       *RateLimitMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	nrApp := s.LoggerService.GetApplication()
	metrics := NewMetricsMiddleware()

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		Metrics:         metrics,
		RateLimit:       NewRateLimitMiddleware(s, metrics),
	}
}
