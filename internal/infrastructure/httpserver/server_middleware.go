package httpserver

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	customMiddleware "github.com/cloudnative-labs/microservices/internal/infrastructure/httpserver/middleware"
)

const (
	hstsMaxAge = 31536000
	corsMaxAge = 86400
	csp        = "default-src 'self'; style-src 'self' 'unsafe-inline'"
)

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	s.echo.Use(s.middleware.Logging.RequestLogging())
	s.echo.Use(s.middleware.Metrics.CollectHTTPMetrics())

	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            hstsMaxAge,
		HSTSPreloadEnabled:    true,
		ContentSecurityPolicy: csp,
	}))
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowMethods:     s.config.AllowedMethods,
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}))
	bodyLimit := s.config.BodyLimit
	if bodyLimit == "" {
		bodyLimit = "10M"
	}
	s.echo.Use(middleware.BodyLimit(bodyLimit))

	if limiter := s.globalRateLimit(); limiter != nil {
		s.echo.Use(limiter)
	}
}

// globalRateLimit prefers the shared limiter and falls back to a per-process one.
func (s *Server) globalRateLimit() echo.MiddlewareFunc {
	if s.middleware.RateLimit != nil {
		return s.middleware.RateLimit.Handler()
	}
	if !s.config.RateLimit.Enabled {
		return nil
	}
	return customMiddleware.MemoryRateLimit(s.config.RateLimit.MaxRequests, s.config.RateLimit.Window,
		customMiddleware.MsgTooManyRequests)
}

// strictRateLimit guards sensitive write routes.
func (s *Server) strictRateLimit() []echo.MiddlewareFunc {
	if s.middleware.StrictRateLimit != nil {
		return []echo.MiddlewareFunc{s.middleware.StrictRateLimit.Handler()}
	}
	if !s.config.RateLimit.Enabled {
		return nil
	}
	return []echo.MiddlewareFunc{customMiddleware.MemoryRateLimit(s.config.RateLimit.StrictMax, s.config.RateLimit.StrictWindow,
		customMiddleware.MsgTooManyAttempts)}
}
