package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

type TodoService interface {
	List(ctx context.Context, userID string) ([]domain.Todo, error)
	Create(ctx context.Context, userID, text string) (*domain.Todo, error)
	Update(ctx context.Context, userID, todoID string, text *string, done *bool) (*domain.Todo, error)
	Delete(ctx context.Context, userID, todoID string) error
}
