// Package middleware provides the HTTP middleware stack: bearer-token
// authentication and per-request logging.
package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/estudai/estudai-api/internal/api/shared"
)

// TokenValidator verifies a bearer token and returns the user it
// identifies. *auth.JWTService is the production implementation.
type TokenValidator interface {
	ValidateToken(token string) (int64, error)
}

// Auth returns middleware that requires a valid bearer token and stores
// the authenticated user ID in the request context.
func Auth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				shared.RespondWithError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			token, found := strings.CutPrefix(header, "Bearer ")
			if !found || token == "" {
				shared.RespondWithError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			userID, err := validator.ValidateToken(token)
			if err != nil {
				slog.Debug("token validation failed", slog.String("error", err.Error()))
				shared.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(shared.WithUserID(r.Context(), userID)))
		})
	}
}
