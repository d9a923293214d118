package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskify/taskify-api/internal/api/httperr"
	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// Context keys set by Auth on successful resolution.
const (
	CtxUser   = "user"
	CtxUserID = "user_id"
	CtxToken  = "token"
)

// Auth verifies the bearer token on each request and resolves it to a user.
//
// The request walks a short state machine: no/malformed header → 401
// AUTH_REQUIRED; expired token → 401 TOKEN_EXPIRED; bad signature or claims
// → 401 TOKEN_INVALID; verified but user since deleted → 401 USER_NOT_FOUND;
// otherwise the identity is attached to the context and the chain continues.
// A store failure is logged and surfaces as a plain 500 — never the raw
// driver error, and never the token itself.
func Auth(tokens ports.TokenVerifier, users ports.UserRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return httperr.New(http.StatusUnauthorized, httperr.CodeAuthRequired, "authentication required")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return httperr.New(http.StatusUnauthorized, httperr.CodeAuthRequired, "authentication required")
			}
			raw := parts[1]

			userID, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return httperr.New(http.StatusUnauthorized, httperr.CodeTokenExpired, "token expired")
				}
				return httperr.New(http.StatusUnauthorized, httperr.CodeTokenInvalid, "invalid token")
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Token outlived the account.
					return httperr.New(http.StatusUnauthorized, httperr.CodeUserNotFound, "user not found")
				}
				log.Error().Err(err).
					Str("method", c.Request().Method).
					Str("path", c.Path()).
					Msg("auth middleware: user lookup failed")
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}

			c.Set(CtxUser, user)
			c.Set(CtxUserID, user.ID)
			c.Set(CtxToken, raw)

			return next(c)
		}
	}
}
