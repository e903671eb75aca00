package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/estudai/estudai-api/internal/domain"
	"github.com/estudai/estudai-api/internal/service/auth"
	"github.com/estudai/estudai-api/internal/store"
)

func newTestUserService() (*UserService, *mockUserStore, *mockHasher, *mockTokens) {
	users := new(mockUserStore)
	hasher := new(mockHasher)
	tokens := new(mockTokens)
	return NewUserService(users, hasher, tokens, nil), users, hasher, tokens
}

func TestRegisterHappyPath(t *testing.T) {
	svc, users, hasher, tokens := newTestUserService()
	ctx := context.Background()

	hasher.On("Hash", "senha-segura").Return("$2a$hash", nil)
	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 3
		}).Return(nil)
	tokens.On("GenerateToken", int64(3)).Return("token-abc", nil)

	user, token, err := svc.Register(ctx, "Ana", "ana@example.com", "senha-segura")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "$2a$hash", user.HashedPassword)
	assert.Equal(t, "token-abc", token)
}

func TestRegisterPropagatesEmailConflict(t *testing.T) {
	svc, users, hasher, tokens := newTestUserService()
	ctx := context.Background()

	hasher.On("Hash", mock.Anything).Return("$2a$hash", nil)
	users.On("Create", ctx, mock.Anything).Return(store.ErrEmailExists)

	_, _, err := svc.Register(ctx, "Ana", "ana@example.com", "senha-segura")
	assert.ErrorIs(t, err, store.ErrEmailExists)
	tokens.AssertNotCalled(t, "GenerateToken", mock.Anything)
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	svc, users, hasher, _ := newTestUserService()

	hasher.On("Hash", mock.Anything).Return("$2a$hash", nil)

	_, _, err := svc.Register(context.Background(), "Ana", "sem-arroba", "senha-segura")
	assert.ErrorIs(t, err, domain.ErrInvalidUserEmail)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoginHappyPath(t *testing.T) {
	svc, users, hasher, tokens := newTestUserService()
	ctx := context.Background()

	stored := &domain.User{ID: 3, Name: "Ana", Email: "ana@example.com", HashedPassword: "$2a$hash"}
	users.On("GetByEmail", ctx, "ana@example.com").Return(stored, nil)
	hasher.On("Compare", "$2a$hash", "senha-segura").Return(nil)
	tokens.On("GenerateToken", int64(3)).Return("token-abc", nil)

	user, token, err := svc.Login(ctx, "ana@example.com", "senha-segura")
	require.NoError(t, err)
	assert.Equal(t, stored, user)
	assert.Equal(t, "token-abc", token)
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	svc, users, hasher, _ := newTestUserService()
	ctx := context.Background()

	users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, store.ErrUserNotFound)

	_, _, unknownErr := svc.Login(ctx, "ghost@example.com", "qualquer")

	stored := &domain.User{ID: 3, Email: "ana@example.com", HashedPassword: "$2a$hash"}
	users.On("GetByEmail", ctx, "ana@example.com").Return(stored, nil)
	hasher.On("Compare", "$2a$hash", "errada").Return(auth.ErrInvalidCredentials)

	_, _, wrongErr := svc.Login(ctx, "ana@example.com", "errada")

	assert.ErrorIs(t, unknownErr, auth.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, auth.ErrInvalidCredentials)
}
