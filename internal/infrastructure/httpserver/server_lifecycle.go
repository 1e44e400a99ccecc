package httpserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)

	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	fields := logrus.Fields{"service": s.config.Service, "instance": s.config.InstanceID, "addr": addr}
	if s.config.TLSCertFile != "" && s.config.TLSKeyFile != "" {
		s.logger.WithFields(fields).Info("starting HTTPS server")
		return s.echo.StartTLS(addr, s.config.TLSCertFile, s.config.TLSKeyFile)
	}
	s.logger.WithFields(fields).Info("starting HTTP server")
	if !s.isDevelopment() {
		s.logger.Warn("running in HTTP mode - TLS certificates not configured")
	}
	return s.echo.StartServer(server)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) isDevelopment() bool {
	return s.config.Environment == "development"
}
