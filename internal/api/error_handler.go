package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farmlink/auth-service/internal/core/domain"
)

// messageResponse is the canonical error envelope for all API errors.
type messageResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to the HTTP contract: validation failures are
//     400, every service-level failure is 500 carrying the service's error
//     text (duplicate email and unknown role included).
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, messageResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors carry their own text. Invalid credentials stay a
	// single indistinguishable message regardless of which check failed.
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusInternalServerError, domain.ErrEmailTaken.Error()
	case errors.Is(err, domain.ErrUnknownRole):
		return http.StatusInternalServerError, domain.ErrUnknownRole.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusInternalServerError, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrServiceUnavailable):
		// Wrapped cause stays server-side.
		return http.StatusInternalServerError, domain.ErrServiceUnavailable.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
