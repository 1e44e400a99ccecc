package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// metricsEndpoint serves this process's registry.
func (s *Server) metricsEndpoint(c echo.Context) error {
	if s.metrics == nil {
		return echo.NewHTTPError(http.StatusNotFound, "metrics disabled")
	}
	s.metrics.Handler().ServeHTTP(c.Response(), c.Request())
	return nil
}
