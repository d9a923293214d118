package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskify/taskify-api/internal/core/domain"
	"github.com/taskify/taskify-api/internal/core/ports"
)

const (
	resetTokenBytes      = 32 // 256 bits of entropy, hex-encoded
	defaultResetTokenTTL = time.Hour
	minPasswordLength    = 6
)

// AuthService implements registration, login and the password-reset lifecycle.
type AuthService struct {
	users    ports.UserRepository
	tokens   *TokenIssuer
	resetTTL time.Duration
}

func NewAuthService(users ports.UserRepository, tokens *TokenIssuer, resetTTL time.Duration) *AuthService {
	if resetTTL <= 0 {
		resetTTL = defaultResetTokenTTL
	}
	return &AuthService{users: users, tokens: tokens, resetTTL: resetTTL}
}

// Register creates a user and returns a freshly issued session token. A
// duplicate email surfaces as domain.ErrEmailExists; concurrent registrations
// with the same email are closed by the store's unique index, not by the
// lookup here.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || name == "" || len(password) < minPasswordLength {
		return "", nil, domain.ErrValidation
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, created, nil
}

// Login verifies credentials and issues a session token. An unknown email and
// a wrong password are deliberately indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !CheckPassword(password, user.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// ForgotPassword stamps a single-use reset token on the user record. The
// token itself is delivered out-of-band; it is never returned over this API.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return domain.ErrValidation
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expires := time.Now().UTC().Add(s.resetTTL)
	return s.users.SetResetToken(ctx, user.ID, token, expires)
}

// ResetPassword consumes a reset token: the password-hash write and the
// clearing of both reset fields happen in one atomic store update, so a
// token cannot be replayed even if the response is lost. On success the user
// is handed a new session token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) (string, *domain.User, error) {
	if token == "" || len(newPassword) < minPasswordLength {
		return "", nil, domain.ErrValidation
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.ConsumeResetToken(ctx, token, hash, time.Now().UTC())
	if err != nil {
		return "", nil, err
	}

	session, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return session, user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func newResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
