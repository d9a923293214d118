package service

import "golang.org/x/crypto/bcrypt"

// bcryptCost is fixed; raising it invalidates nothing (old hashes keep their
// embedded cost) but new hashes get more expensive.
const bcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt. The salt is generated
// per call and embedded in the returned hash string. An error here means the
// system entropy source failed and is not recoverable.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
// A mismatch is a false return, never an error.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
