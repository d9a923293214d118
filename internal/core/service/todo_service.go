package service

import (
	"context"
	"strings"
	"time"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

// TodoService implements per-user todo CRUD on top of a TodoRepository.
type TodoService struct {
	todos ports.TodoRepository
}

func NewTodoService(todos ports.TodoRepository) *TodoService {
	return &TodoService{todos: todos}
}

func (s *TodoService) List(ctx context.Context, userID string) ([]domain.Todo, error) {
	return s.todos.FindByOwner(ctx, userID)
}

func (s *TodoService) Create(ctx context.Context, userID, text string) (*domain.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrValidation
	}

	now := time.Now().UTC()
	todo := &domain.Todo{
		UserID:    userID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return s.todos.Insert(ctx, todo)
}

// Update patches text and/or done state. Nil pointers leave the field as is.
// A todo owned by someone else resolves to domain.ErrTodoNotFound.
func (s *TodoService) Update(ctx context.Context, userID, todoID string, text *string, done *bool) (*domain.Todo, error) {
	current, err := s.todos.FindByID(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if text != nil {
		trimmed := strings.TrimSpace(*text)
		if trimmed == "" {
			return nil, domain.ErrValidation
		}
		current.Text = trimmed
	}
	if done != nil {
		current.Done = *done
	}
	current.UpdatedAt = time.Now().UTC()

	return s.todos.Update(ctx, userID, current)
}

func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	return s.todos.Delete(ctx, userID, todoID)
}
