package httpserver

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/cloudnative-labs/microservices/internal/core/ports"
	customMiddleware "github.com/cloudnative-labs/microservices/internal/infrastructure/httpserver/middleware"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/metrics"
)

const apiVersion = "1.0.0"

type ServerConfig struct {
	Service        string
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	InstanceID     string
	Environment    string
	AllowedOrigins []string
	AllowedMethods []string
	BodyLimit      string
	RateLimit      RateLimitSettings
}

// RateLimitSettings size the in-memory limiters used when no shared limiter
// is supplied in ServerDeps.
type RateLimitSettings struct {
	Enabled      bool
	MaxRequests  int
	Window       time.Duration
	StrictMax    int
	StrictWindow time.Duration
}

// ServerDeps wires the services one process exposes. A nil UserService or
// ProductService leaves the matching routes unregistered.
type ServerDeps struct {
	UserService       ports.UserService
	ProductService    ports.ProductService
	RateLimiter       ports.RateLimiter
	StrictRateLimiter ports.RateLimiter
	HealthCheckers    []ports.HealthChecker
	Metrics           *metrics.Metrics
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	hostname       string
	userService    ports.UserService
	productService ports.ProductService
	metrics        *metrics.Metrics
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	hostname, _ := os.Hostname()

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		hostname:       hostname,
		userService:    deps.UserService,
		productService: deps.ProductService,
		metrics:        deps.Metrics,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.RateLimiter,
			deps.StrictRateLimiter,
			deps.Metrics,
			logger,
		),
	}

	e.Validator = NewValidator()
	e.HTTPErrorHandler = server.httpErrorHandler

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
