package domain

import (
	"errors"
	"net/mail"
	"time"
)

// Common validation errors for User
var (
	ErrEmptyUserName     = errors.New("user name cannot be empty")
	ErrInvalidUserEmail  = errors.New("user email is invalid")
	ErrEmptyUserPassword = errors.New("user password hash cannot be empty")
)

// User represents an account that owns studies. Passwords are stored only
// as bcrypt hashes.
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"nome"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"data_cadastro"`
}

// NewUser creates a new User with the given name, email and password hash.
// Returns an error if validation fails.
func NewUser(name, email, hashedPassword string) (*User, error) {
	user := &User{
		Name:           name,
		Email:          email,
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Name == "" {
		return ErrEmptyUserName
	}

	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidUserEmail
	}

	if u.HashedPassword == "" {
		return ErrEmptyUserPassword
	}

	return nil
}
