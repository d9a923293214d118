package ports

import (
	"context"
	"time"

	"github.com/taskify/taskify-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)

	// SetResetToken stores a reset token and its expiry on the user record.
	SetResetToken(ctx context.Context, userID, token string, expires time.Time) error

	// ConsumeResetToken atomically matches a live reset token, writes the new
	// password hash, and clears both reset fields in a single document
	// update. Returns domain.ErrResetTokenInvalid when no record matches.
	ConsumeResetToken(ctx context.Context, token, newPasswordHash string, now time.Time) (*domain.User, error)
}
