package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/httperr"
	"github.com/taskify/taskify-api/internal/api/metrics"
	"github.com/taskify/taskify-api/internal/core/ports"
)

type TodoHandler struct {
	todoService ports.TodoService
}

func NewTodoHandler(todoService ports.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

type createTodoRequest struct {
	Text string `json:"todo" validate:"required"`
}

// updateTodoRequest uses pointers so an omitted field means "leave as is".
type updateTodoRequest struct {
	Text *string `json:"todo"`
	Done *bool   `json:"is_done"`
}

// List returns the caller's todos, oldest first.
//
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Todo
// @Router       /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	todos, err := h.todoService.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todos)
}

// Create adds a todo for the caller.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTodoRequest  true  "Todo text"
// @Success      201   {object}  domain.Todo
// @Failure      400   {object}  map[string]string
// @Router       /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return httperr.New(http.StatusBadRequest, httperr.CodeValidation, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return httperr.New(http.StatusBadRequest, httperr.CodeValidation, err.Error())
	}

	todo, err := h.todoService.Create(c.Request().Context(), user.ID, req.Text)
	if err != nil {
		return err
	}

	metrics.TodosCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, todo)
}

// Update patches a todo's text and/or done state.
//
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Todo ID"
// @Param        body  body      updateTodoRequest  true  "Fields to update"
// @Success      200   {object}  domain.Todo
// @Failure      404   {object}  map[string]string
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return httperr.New(http.StatusBadRequest, httperr.CodeValidation, "invalid payload")
	}

	todo, err := h.todoService.Update(c.Request().Context(), user.ID, c.Param("id"), req.Text, req.Done)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todo)
}

// Delete removes a todo.
//
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Todo ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	user, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.todoService.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "todo deleted"})
}
