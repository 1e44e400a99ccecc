package middleware

import (
	"github.com/sirupsen/logrus"

	"github.com/cloudnative-labs/microservices/internal/core/ports"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/metrics"
)

// 429 messages for the global and strict limiters.
const (
	MsgTooManyRequests = "too many requests from this IP, please try again later"
	MsgTooManyAttempts = "too many attempts, please try again later"
)

// MiddlewareCollection holds all middleware instances
type MiddlewareCollection struct {
	Logging *LoggingMiddleware
	Metrics *MetricsMiddleware
	// RateLimit and StrictRateLimit are nil when no Redis-backed limiter is configured.
	RateLimit       *RateLimitMiddleware
	StrictRateLimit *RateLimitMiddleware
}

// NewMiddlewareCollection creates a new collection of all middleware
func NewMiddlewareCollection(
	globalLimiter ports.RateLimiter,
	strictLimiter ports.RateLimiter,
	m *metrics.Metrics,
	logger *logrus.Logger,
) *MiddlewareCollection {
	mc := &MiddlewareCollection{
		Logging: NewLoggingMiddleware(logger),
		Metrics: NewMetricsMiddleware(m),
	}
	if globalLimiter != nil {
		mc.RateLimit = NewRateLimitMiddleware(globalLimiter, MsgTooManyRequests, logger)
	}
	if strictLimiter != nil {
		mc.StrictRateLimit = NewRateLimitMiddleware(strictLimiter, MsgTooManyAttempts, logger)
	}
	return mc
}
