package middleware

import (
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// suspiciousPatterns are substrings that commonly appear in path traversal,
// script injection and SQL injection probes.
var suspiciousPatterns = []string{"..", "<script>", "SELECT"}

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// IsSuspiciousURL reports whether the request URI, raw or percent-decoded,
// looks like a probe.
func IsSuspiciousURL(uri string) bool {
	candidates := []string{uri}
	if decoded, err := url.QueryUnescape(uri); err == nil && decoded != uri {
		candidates = append(candidates, decoded)
	}
	for _, c := range candidates {
		for _, p := range suspiciousPatterns {
			if strings.Contains(c, p) {
				return true
			}
		}
	}
	return false
}

func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.logger == nil {
				return next(c)
			}
			req := c.Request()
			fields := logrus.Fields{
				"method":     req.Method,
				"path":       req.URL.Path,
				"ip":         c.RealIP(),
				"user_agent": req.UserAgent(),
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			}
			if IsSuspiciousURL(req.RequestURI) {
				m.logger.WithFields(fields).WithField("uri", req.RequestURI).Warn("suspicious request detected")
			}

			start := time.Now()
			err := next(c)
			fields["latency_ms"] = time.Since(start).Milliseconds()
			fields["status"] = c.Response().Status
			m.logger.WithFields(fields).Info("request handled")
			return err
		}
	}
}
