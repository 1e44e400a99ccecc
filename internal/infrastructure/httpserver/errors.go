package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/cloudnative-labs/microservices/internal/core/apperrors"
)

const genericServerError = "internal server error"

var statusByKind = map[apperrors.Kind]int{
	apperrors.KindValidation: http.StatusBadRequest,
	apperrors.KindConflict:   http.StatusConflict,
	apperrors.KindNotFound:   http.StatusNotFound,
	apperrors.KindDependency: http.StatusInternalServerError,
}

type errorResponse struct {
	Success bool                   `json:"success"`
	Error   string                 `json:"error"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

// httpErrorHandler renders every error in the {success:false, error} envelope.
// Dependency failures are logged with their cause and hidden behind a generic message.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := errorResponse{Error: genericServerError}

	var httpErr *echo.HTTPError
	var appErr *apperrors.Error
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		body.Error = httpMessage(httpErr)
		if errors.Is(err, echo.ErrNotFound) {
			body.Error = "route not found"
		}
	case errors.As(err, &appErr):
		code = statusByKind[appErr.Kind]
		if code == 0 {
			code = http.StatusInternalServerError
		}
		if appErr.Kind != apperrors.KindDependency {
			body.Error = appErr.Message
			body.Errors = appErr.Details
		}
	}

	if code >= http.StatusInternalServerError && s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"method": c.Request().Method,
			"path":   c.Request().URL.Path,
			"status": code,
		}).WithError(err).Error("request failed")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil && s.logger != nil {
		s.logger.WithError(err).Error("failed to write error response")
	}
}

func httpMessage(he *echo.HTTPError) string {
	if msg, ok := he.Message.(string); ok {
		return msg
	}
	return http.StatusText(he.Code)
}
