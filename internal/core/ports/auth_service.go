package ports

import (
	"context"

	"github.com/taskify/taskify-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) (string, *domain.User, error)
}
