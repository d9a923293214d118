package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/core/ports"
)

// AdminHandler serves the admin-only surface. Routes using it must sit behind
// both Auth and RequireAdmin.
type AdminHandler struct {
	users ports.UserRepository
}

func NewAdminHandler(users ports.UserRepository) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers returns every registered user. Password hashes and reset tokens
// never serialize (json:"-" on the domain type).
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
