package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// TodoRepository defines the interface for todo persistence. All lookups and
// mutations are scoped to the owning user.
type TodoRepository interface {
	Insert(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	FindByOwner(ctx context.Context, userID string) ([]domain.Todo, error)
	FindByID(ctx context.Context, userID, todoID string) (*domain.Todo, error)
	Update(ctx context.Context, userID string, todo *domain.Todo) (*domain.Todo, error)
	Delete(ctx context.Context, userID, todoID string) error
}
