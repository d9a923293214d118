package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/httperr"
	"github.com/taskify/taskify-api/internal/core/domain"
)

// RequireAuth passes only requests that carry a resolved identity. It layers
// on Auth: a request that skipped or failed the auth middleware has no user
// in context and is rejected here.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if identity(c) == nil {
			return httperr.New(http.StatusUnauthorized, httperr.CodeAuthRequired, "authentication required")
		}
		return next(c)
	}
}

// RequireAdmin passes only resolved identities with the admin flag. No
// identity is a 401 (log in first); a non-admin identity is a 403 (request
// elevated access) — the distinction matters to clients.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := identity(c)
		if user == nil {
			return httperr.New(http.StatusUnauthorized, httperr.CodeAuthRequired, "authentication required")
		}
		if !user.IsAdmin {
			return httperr.New(http.StatusForbidden, httperr.CodeAdminRequired, "admin access required")
		}
		return next(c)
	}
}

func identity(c echo.Context) *domain.User {
	user, _ := c.Get(CtxUser).(*domain.User)
	return user
}
