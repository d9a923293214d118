package ports

// TokenVerifier resolves a bearer token string to the subject user ID.
// Implementations return domain.ErrTokenExpired or domain.ErrTokenInvalid.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}
