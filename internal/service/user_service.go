package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/estudai/estudai-api/internal/domain"
	"github.com/estudai/estudai-api/internal/service/auth"
	"github.com/estudai/estudai-api/internal/store"
)

// PasswordHasher hashes and verifies passwords.
// *auth.PasswordVerifier is the production implementation.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hashedPassword, password string) error
}

// TokenGenerator issues bearer tokens for authenticated users.
// *auth.JWTService is the production implementation.
type TokenGenerator interface {
	GenerateToken(userID int64) (string, error)
}

// UserService handles registration and login.
type UserService struct {
	users  store.UserStore
	hasher PasswordHasher
	tokens TokenGenerator
	logger *slog.Logger
}

// NewUserService creates a UserService with the given collaborators.
// If logger is nil, a default logger will be used.
func NewUserService(users store.UserStore, hasher PasswordHasher, tokens TokenGenerator, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// Register creates a new account and returns it with a fresh token.
// Returns store.ErrEmailExists if the email is already taken.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user, err := domain.NewUser(name, email, hash)
	if err != nil {
		return nil, "", err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user registered", slog.Int64("user_id", user.ID))
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// An unknown email and a wrong password both yield ErrInvalidCredentials
// so the response never reveals which one was wrong.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in", slog.Int64("user_id", user.ID))
	return user, token, nil
}
