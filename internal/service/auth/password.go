// Package auth provides password hashing and JWT issuance for the API.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a password does not match its
// stored hash. Callers must not reveal whether the email or the password
// was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// MinPasswordLength is enforced at registration time.
const MinPasswordLength = 8

// PasswordVerifier hashes and verifies user passwords with bcrypt.
type PasswordVerifier struct {
	cost int
}

// NewPasswordVerifier creates a PasswordVerifier with the default bcrypt
// cost.
func NewPasswordVerifier() *PasswordVerifier {
	return &PasswordVerifier{cost: bcrypt.DefaultCost}
}

// Hash returns the bcrypt hash of the given password.
func (v *PasswordVerifier) Hash(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Compare checks a password against its stored hash, returning
// ErrInvalidCredentials on mismatch.
func (v *PasswordVerifier) Compare(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to compare password: %w", err)
	}
	return nil
}
