// Package httperr defines the coded HTTP errors the API returns. Every
// client-facing failure carries a stable machine-readable code alongside the
// human-readable message, so clients branch on Code and display Message.
package httperr

// Stable error codes. These are API contract; renaming one is a breaking change.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAuthRequired       = "AUTH_REQUIRED"
	CodeTokenExpired       = "TOKEN_EXPIRED"
	CodeTokenInvalid       = "TOKEN_INVALID"
	CodeAdminRequired      = "ADMIN_REQUIRED"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeTodoNotFound       = "TODO_NOT_FOUND"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodeResetTokenInvalid  = "RESET_TOKEN_INVALID"
	CodeRateLimited        = "RATE_LIMITED"
	CodeInternal           = "INTERNAL_ERROR"
)

// Error is an HTTP error with a status, a stable code, and a message.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New builds a coded HTTP error.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}
