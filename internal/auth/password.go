// Package auth implements the credential hashing and session token mechanics:
// one-way password hashes, and signed time-bounded JWTs delivered as
// HTTP-only cookies.
package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a one-way bcrypt hash of the plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
