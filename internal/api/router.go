package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/estudai/estudai-api/internal/api/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Auth    *AuthHandler
	Studies *StudyHandler
	Health  *HealthHandler
	Tokens  middleware.TokenValidator
	Logger  *slog.Logger
}

// NewRouter assembles the HTTP routing tree. Auth endpoints and health
// probes are public; everything under /api/estudos requires a valid
// bearer token.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", deps.Health.Health)
	r.Get("/health/ai", deps.Health.HealthAI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)
		})

		r.Route("/estudos", func(r chi.Router) {
			r.Use(middleware.Auth(deps.Tokens))
			r.Post("/", deps.Studies.Create)
			r.Get("/", deps.Studies.List)
			r.Get("/{id}", deps.Studies.Get)
			r.Post("/{id}/corrigir", deps.Studies.Grade)
		})
	})

	return r
}
