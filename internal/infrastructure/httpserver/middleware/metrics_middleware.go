package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cloudnative-labs/microservices/internal/infrastructure/metrics"
)

// unmatchedRoute labels requests that hit no registered route, keeping label
// cardinality bounded.
const unmatchedRoute = "unmatched"

// MetricsMiddleware records request counters and latency.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new metrics middleware instance
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// CollectHTTPMetrics creates middleware that collects HTTP request metrics.
// Handler errors are rendered first so the recorded status is the one sent.
func (m *MetricsMiddleware) CollectHTTPMetrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.metrics == nil {
				return next(c)
			}
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			duration := time.Since(start).Seconds()
			method := c.Request().Method
			route := c.Path()
			if route == "" || errors.Is(err, echo.ErrNotFound) || errors.Is(err, echo.ErrMethodNotAllowed) {
				route = unmatchedRoute
			}
			status := c.Response().Status
			code := strconv.Itoa(status)

			m.metrics.RequestsTotal.WithLabelValues(method, route, code).Inc()
			m.metrics.RequestDuration.WithLabelValues(method, route, code).Observe(duration)
			if status >= 400 {
				m.metrics.ErrorsTotal.WithLabelValues(method, route, code).Inc()
			}
			return nil
		}
	}
}
