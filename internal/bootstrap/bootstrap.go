// Package bootstrap holds the process wiring shared by the service binaries.
package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cloudnative-labs/microservices/configs"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/db"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/httpserver"
	"github.com/cloudnative-labs/microservices/internal/infrastructure/metrics"
)

const (
	reportInterval  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

// NewLogger builds the process logger: JSON unless LOG_FORMAT=text.
func NewLogger(cfg configs.LogConfig, service, instance string) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
		logger.WithField("level", cfg.Level).Warn("unknown log level, using info")
	} else {
		logger.SetLevel(level)
	}
	logger.AddHook(&staticFieldsHook{fields: logrus.Fields{"service": service, "instance": instance}})
	return logger
}

// staticFieldsHook stamps every entry with the service identity.
type staticFieldsHook struct {
	fields logrus.Fields
}

func (h *staticFieldsHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *staticFieldsHook) Fire(e *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := e.Data[k]; !ok {
			e.Data[k] = v
		}
	}
	return nil
}

// OpenDatabase connects the pool and applies pending migrations.
func OpenDatabase(cfg *configs.DatabaseConfig, logger *logrus.Logger) (*db.Database, error) {
	database, err := db.NewDatabaseWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{"host": cfg.Host, "db": cfg.DBName}).Info("connected to database")

	if err := database.Migrate(cfg.MigrationsPath); err != nil {
		_ = database.Close()
		return nil, err
	}
	logger.WithField("path", cfg.MigrationsPath).Info("migrations applied")
	return database, nil
}

// ServerConfig maps loaded configuration onto the HTTP server settings.
func ServerConfig(cfg *configs.Config) *httpserver.ServerConfig {
	return &httpserver.ServerConfig{
		Service:        cfg.Service,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		InstanceID:     cfg.Server.InstanceID,
		Environment:    cfg.Server.Environment,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: cfg.Server.AllowedMethods,
		BodyLimit:      cfg.Server.BodyLimit,
		RateLimit: httpserver.RateLimitSettings{
			Enabled:      cfg.RateLimit.Enabled,
			MaxRequests:  cfg.RateLimit.MaxRequests,
			Window:       cfg.RateLimit.Window,
			StrictMax:    cfg.RateLimit.StrictMax,
			StrictWindow: cfg.RateLimit.StrictWindow,
		},
	}
}

// PoolReporter returns a periodic task that publishes pool usage and then runs extra.
func PoolReporter(database *db.Database, m *metrics.Metrics, extra func(ctx context.Context)) func(ctx context.Context) {
	return func(ctx context.Context) {
		m.DBConnections.Set(float64(database.OpenConnections()))
		if extra != nil {
			extra(ctx)
		}
	}
}

// Run starts the server and the background reporter, then blocks until SIGINT
// or SIGTERM and shuts both down.
func Run(server *httpserver.Server, logger *logrus.Logger, report func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if report != nil {
		go metrics.RunEvery(ctx, reportInterval, report)
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.WithField("signal", sig.String()).Info("shutting down server")
	case err := <-errCh:
		logger.WithError(err).Error("server failed")
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
		return
	}
	logger.Info("server exited")
}
