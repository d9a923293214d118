package domain

import (
	"errors"
	"time"
)

var ErrTodoNotFound = errors.New("todo not found")

// Todo is a single task owned by one user. Ownership is enforced at the
// repository level: every query is scoped by UserID, so a todo belonging to
// another user is indistinguishable from one that does not exist.
type Todo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"todo"`
	Done      bool      `json:"is_done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
