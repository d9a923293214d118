package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/taskify/taskify-api/internal/api/httperr"
	"github.com/taskify/taskify-api/internal/api/middleware"
	"github.com/taskify/taskify-api/internal/core/domain"
)

type stubTodoService struct {
	listFn   func(ctx context.Context, userID string) ([]domain.Todo, error)
	createFn func(ctx context.Context, userID, text string) (*domain.Todo, error)
	updateFn func(ctx context.Context, userID, todoID string, text *string, done *bool) (*domain.Todo, error)
	deleteFn func(ctx context.Context, userID, todoID string) error
}

func (s *stubTodoService) List(ctx context.Context, userID string) ([]domain.Todo, error) {
	return s.listFn(ctx, userID)
}

func (s *stubTodoService) Create(ctx context.Context, userID, text string) (*domain.Todo, error) {
	return s.createFn(ctx, userID, text)
}

func (s *stubTodoService) Update(ctx context.Context, userID, todoID string, text *string, done *bool) (*domain.Todo, error) {
	return s.updateFn(ctx, userID, todoID, text, done)
}

func (s *stubTodoService) Delete(ctx context.Context, userID, todoID string) error {
	return s.deleteFn(ctx, userID, todoID)
}

func newTodoTestContext(t *testing.T, method, path, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.CtxUser, user)
		c.Set(middleware.CtxUserID, user.ID)
	}
	return c, rec
}

func TestTodoHandler_List(t *testing.T) {
	stub := &stubTodoService{
		listFn: func(ctx context.Context, userID string) ([]domain.Todo, error) {
			if userID != "user_1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			return []domain.Todo{{ID: "todo_1", UserID: userID, Text: "buy milk"}}, nil
		},
	}
	h := NewTodoHandler(stub)

	c, rec := newTodoTestContext(t, http.MethodGet, "/todos", "", &domain.User{ID: "user_1"})
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var todos []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &todos); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(todos) != 1 || todos[0]["todo"] != "buy milk" {
		t.Fatalf("unexpected payload: %+v", todos)
	}
}

func TestTodoHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubTodoService{
		listFn: func(ctx context.Context, userID string) ([]domain.Todo, error) {
			return []domain.Todo{}, nil
		},
	}
	h := NewTodoHandler(stub)

	c, rec := newTodoTestContext(t, http.MethodGet, "/todos", "", &domain.User{ID: "user_1"})
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestTodoHandler_List_NoIdentity(t *testing.T) {
	h := NewTodoHandler(&stubTodoService{})

	c, _ := newTodoTestContext(t, http.MethodGet, "/todos", "", nil)
	expectHTTPErr(t, h.List(c), http.StatusUnauthorized, httperr.CodeAuthRequired)
}

func TestTodoHandler_Create(t *testing.T) {
	stub := &stubTodoService{
		createFn: func(ctx context.Context, userID, text string) (*domain.Todo, error) {
			return &domain.Todo{ID: "todo_1", UserID: userID, Text: text}, nil
		},
	}
	h := NewTodoHandler(stub)

	c, rec := newTodoTestContext(t, http.MethodPost, "/todos", `{"todo":"buy milk"}`, &domain.User{ID: "user_1"})
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestTodoHandler_Create_MissingText(t *testing.T) {
	stub := &stubTodoService{
		createFn: func(ctx context.Context, userID, text string) (*domain.Todo, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewTodoHandler(stub)

	c, _ := newTodoTestContext(t, http.MethodPost, "/todos", `{}`, &domain.User{ID: "user_1"})
	expectHTTPErr(t, h.Create(c), http.StatusBadRequest, httperr.CodeValidation)
}

func TestTodoHandler_Update(t *testing.T) {
	stub := &stubTodoService{
		updateFn: func(ctx context.Context, userID, todoID string, text *string, done *bool) (*domain.Todo, error) {
			if todoID != "todo_1" {
				t.Fatalf("unexpected todo id: %s", todoID)
			}
			if text != nil {
				t.Fatalf("text should be nil when omitted")
			}
			if done == nil || !*done {
				t.Fatalf("expected done=true")
			}
			return &domain.Todo{ID: todoID, UserID: userID, Text: "buy milk", Done: true}, nil
		},
	}
	h := NewTodoHandler(stub)

	c, rec := newTodoTestContext(t, http.MethodPut, "/todos/todo_1", `{"is_done":true}`, &domain.User{ID: "user_1"})
	c.SetParamNames("id")
	c.SetParamValues("todo_1")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTodoHandler_Update_NotFound(t *testing.T) {
	stub := &stubTodoService{
		updateFn: func(ctx context.Context, userID, todoID string, text *string, done *bool) (*domain.Todo, error) {
			return nil, domain.ErrTodoNotFound
		},
	}
	h := NewTodoHandler(stub)

	c, _ := newTodoTestContext(t, http.MethodPut, "/todos/missing", `{"is_done":true}`, &domain.User{ID: "user_1"})
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Update(c); err != domain.ErrTodoNotFound {
		t.Fatalf("expected ErrTodoNotFound passthrough, got %v", err)
	}
}

func TestTodoHandler_Delete(t *testing.T) {
	deleted := false
	stub := &stubTodoService{
		deleteFn: func(ctx context.Context, userID, todoID string) error {
			deleted = true
			return nil
		},
	}
	h := NewTodoHandler(stub)

	c, rec := newTodoTestContext(t, http.MethodDelete, "/todos/todo_1", "", &domain.User{ID: "user_1"})
	c.SetParamNames("id")
	c.SetParamValues("todo_1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !deleted || rec.Code != http.StatusOK {
		t.Fatalf("expected delete + 200, deleted=%v code=%d", deleted, rec.Code)
	}
}
