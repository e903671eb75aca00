package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/estudai/estudai-api/internal/api/shared"
	"github.com/estudai/estudai-api/internal/domain"
	"github.com/estudai/estudai-api/internal/platform/logger"
)

// UserAuthenticator is the slice of the user service the auth handler
// needs.
type UserAuthenticator interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
}

// AuthHandler serves registration and login.
type AuthHandler struct {
	users    UserAuthenticator
	validate *validator.Validate
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users UserAuthenticator) *AuthHandler {
	return &AuthHandler{
		users:    users,
		validate: validator.New(),
	}
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"nome"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"senha"    validate:"required,min=8"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// AuthResponse is the success body of both auth endpoints.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"usuario"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, "Dados de cadastro inválidos")
		return
	}

	user, token, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		log.Warn("registration failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, http.StatusCreated, AuthResponse{Token: token, User: user})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, "Credenciais inválidas")
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Info("login failed", slog.String("error", err.Error()))
		shared.RespondWithError(w, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, AuthResponse{Token: token, User: user})
}
