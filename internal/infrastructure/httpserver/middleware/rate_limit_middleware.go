package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/cloudnative-labs/microservices/internal/core/ports"
)

const (
	HeaderRateLimitLimit     = "RateLimit-Limit"
	HeaderRateLimitRemaining = "RateLimit-Remaining"
	HeaderRateLimitReset     = "RateLimit-Reset"
)

// RateLimitMiddleware applies a shared fixed-window limiter keyed by client IP.
type RateLimitMiddleware struct {
	rateLimiter ports.RateLimiter
	message     string
	logger      *logrus.Logger
	now         func() time.Time
}

func NewRateLimitMiddleware(rateLimiter ports.RateLimiter, message string, logger *logrus.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{rateLimiter: rateLimiter, message: message, logger: logger, now: time.Now}
}

func (r *RateLimitMiddleware) Handler() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			allowed, remaining, limit, reset, rlErr := r.rateLimiter.Allow(c.Request().Context(), ip)
			if rlErr != nil {
				if r.logger != nil {
					r.logger.WithError(rlErr).WithField("ip", ip).Warn("rate limiter error; allowing request (fail-open)")
				}
				return next(c)
			}

			resetIn := int(reset.Sub(r.now()).Round(time.Second) / time.Second)
			if resetIn < 0 {
				resetIn = 0
			}
			h := c.Response().Header()
			h.Set(HeaderRateLimitLimit, strconv.Itoa(limit))
			h.Set(HeaderRateLimitRemaining, strconv.Itoa(remaining))
			h.Set(HeaderRateLimitReset, strconv.Itoa(resetIn))

			if !allowed {
				if r.logger != nil {
					r.logger.WithFields(logrus.Fields{"ip": ip, "path": c.Request().URL.Path}).Warn("rate limit exceeded")
				}
				return echo.NewHTTPError(http.StatusTooManyRequests, r.message)
			}
			return next(c)
		}
	}
}

// MemoryRateLimit builds a per-process token-bucket limiter from echo's memory
// store. maxRequests tokens refill evenly over window. It serves deployments
// without Redis; counters are not shared between instances.
func MemoryRateLimit(maxRequests int, window time.Duration, message string) echo.MiddlewareFunc {
	if maxRequests <= 0 {
		maxRequests = 100
	}
	if window <= 0 {
		window = time.Minute
	}
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(maxRequests) / window.Seconds()),
		Burst:     maxRequests,
		ExpiresIn: window,
	})
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			c.Response().Header().Set(HeaderRateLimitLimit, strconv.Itoa(maxRequests))
			c.Response().Header().Set(HeaderRateLimitRemaining, "0")
			return echo.NewHTTPError(http.StatusTooManyRequests, message)
		},
	})
}
