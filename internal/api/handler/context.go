package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/httperr"
	"github.com/taskify/taskify-api/internal/api/middleware"
	"github.com/taskify/taskify-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call. Presence of the user proves the
// middleware ran; handlers behind the auth group can rely on it.
func ctxIdentity(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil || user.ID == "" {
		return nil, httperr.New(http.StatusUnauthorized, httperr.CodeAuthRequired, "missing authentication claims")
	}
	return user, nil
}
