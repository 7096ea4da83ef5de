package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/logica-uic/contest-backend/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "invalid role"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrInvalidCode):
		return http.StatusUnauthorized, "invalid one-time code"
	case errors.Is(err, domain.ErrCodeExpired):
		return http.StatusUnauthorized, "one-time code expired, request a new one"
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "account not found"
	case errors.Is(err, domain.ErrAccountExists):
		return http.StatusConflict, "account already exists"
	case errors.Is(err, domain.ErrNoResetInProgress):
		return http.StatusConflict, "no password reset in progress"
	case errors.Is(err, domain.ErrPartialReset):
		return http.StatusConflict, "password reset conflicted, request a new code"
	case errors.Is(err, domain.ErrNotificationFailed):
		return http.StatusBadGateway, "could not deliver one-time code"
	case errors.Is(err, domain.ErrProblemNotFound):
		return http.StatusNotFound, "problem not found"
	case errors.Is(err, domain.ErrProblemExists):
		return http.StatusConflict, "problem already exists"
	case errors.Is(err, domain.ErrContestNotFound):
		return http.StatusNotFound, "contest not found"
	case errors.Is(err, domain.ErrContestExists):
		return http.StatusConflict, "contest already exists"
	case errors.Is(err, domain.ErrInvalidWindow):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
