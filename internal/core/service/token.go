package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taskify/taskify-api/internal/core/domain"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// TokenIssuer mints and verifies HS256 session tokens. Tokens are stateless:
// validity is purely a function of the signature and the exp claim, so the
// only server-side revocation lever is rotating the secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a session token for the given user ID with issued-at and
// expiry claims.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(t.ttl).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(t.secret)
}

// Verify parses and validates a session token, returning the subject user ID.
// An expired token yields domain.ErrTokenExpired; any other failure (bad
// signature, wrong algorithm, malformed claims) yields domain.ErrTokenInvalid.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !tok.Valid {
		return "", domain.ErrTokenInvalid
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", domain.ErrTokenInvalid
	}
	return userID, nil
}
