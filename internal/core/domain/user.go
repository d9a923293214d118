package domain

import (
	"errors"
	"time"
)

var ErrEmailExists = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("invalid token")
var ErrResetTokenInvalid = errors.New("invalid or expired reset token")
var ErrValidation = errors.New("invalid input")

// User models an account holder. PasswordHash and the reset-token pair are
// server-side only and never serialized to clients.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	ResetToken   string    `json:"-"`
	ResetExpires time.Time `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasResetToken reports whether the user carries a reset token still live at
// the given instant. Expiry is strict: a token at exactly its deadline is
// already dead.
func (u *User) HasResetToken(now time.Time) bool {
	return u.ResetToken != "" && now.Before(u.ResetExpires)
}
