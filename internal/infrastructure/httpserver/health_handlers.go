package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (s *Server) serviceInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "API " + s.config.Service + " - cloud-native microservice",
		"version":   apiVersion,
		"instance":  s.config.InstanceID,
		"hostname":  s.hostname,
		"endpoints": s.endpoints(),
	})
}

// Health check handler
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)
	overall := "healthy"
	for _, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		if err := hc.Check(ctx); err != nil {
			deps[hc.Name()] = "unhealthy"
			overall = "unhealthy"
			if s.logger != nil {
				s.logger.WithError(err).WithField("dependency", hc.Name()).Warn("health check failed")
			}
		} else {
			deps[hc.Name()] = "healthy"
		}
	}
	health := map[string]interface{}{
		"status":       overall,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"version":      apiVersion,
		"service":      s.config.Service,
		"instance":     s.config.InstanceID,
		"hostname":     s.hostname,
		"dependencies": deps,
	}
	code := http.StatusOK
	if overall != "healthy" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, health)
}
