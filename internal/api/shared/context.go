package shared

import (
	"context"
	"errors"
)

type contextKey string

// UserIDContextKey is where the auth middleware stores the authenticated
// user's ID.
const UserIDContextKey contextKey = "userID"

// ErrNoUserID indicates the request context carries no authenticated user.
var ErrNoUserID = errors.New("no user ID in context")

// WithUserID returns a context carrying the authenticated user's ID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// GetUserID extracts the authenticated user's ID from the context.
func GetUserID(ctx context.Context) (int64, error) {
	userID, ok := ctx.Value(UserIDContextKey).(int64)
	if !ok || userID <= 0 {
		return 0, ErrNoUserID
	}
	return userID, nil
}
