package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/api/httperr"
	"github.com/taskify/taskify-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Passes through coded httperr errors untouched.
//   - Maps known domain errors to their status and stable code.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<CODE>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, msg := resolveError(err, log, c)
		_ = c.JSON(status, errorResponse{Error: msg, Code: code})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	var coded *httperr.Error
	if errors.As(err, &coded) {
		return coded.Status, coded.Code, coded.Message
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := ""
		if he.Code == http.StatusBadRequest {
			code = httperr.CodeValidation
		}
		return he.Code, code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic status + code.
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, httperr.CodeValidation, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, httperr.CodeInvalidCredentials, "invalid credentials"
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, httperr.CodeTokenExpired, "token expired"
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, httperr.CodeTokenInvalid, "invalid token"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, httperr.CodeUserNotFound, "user not found"
	case errors.Is(err, domain.ErrTodoNotFound):
		return http.StatusNotFound, httperr.CodeTodoNotFound, "todo not found"
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, httperr.CodeEmailExists, "email already registered"
	case errors.Is(err, domain.ErrResetTokenInvalid):
		return http.StatusBadRequest, httperr.CodeResetTokenInvalid, "invalid or expired token"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, httperr.CodeInternal, "internal server error"
}
