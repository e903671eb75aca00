// Package api implements the HTTP surface: handlers, routing and the
// mapping from domain and service errors to status codes.
package api

import (
	"errors"
	"net/http"

	"github.com/estudai/estudai-api/internal/domain"
	"github.com/estudai/estudai-api/internal/queue"
	"github.com/estudai/estudai-api/internal/service"
	"github.com/estudai/estudai-api/internal/service/auth"
	"github.com/estudai/estudai-api/internal/store"
)

// MapErrorToStatusCode translates service and store errors into HTTP
// status codes. Unknown errors map to 500.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrStudyNotOwned):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrStudyNotReady):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnsupportedFile),
		errors.Is(err, service.ErrNoAnswers):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, queue.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a message safe to expose for the given
// error. Internal details never leak; clients get a generic message for
// anything unexpected.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrStudyNotFound):
		return "Estudo não encontrado"
	case errors.Is(err, store.ErrUserNotFound):
		return "Usuário não encontrado"
	case errors.Is(err, store.ErrNotFound):
		return "Recurso não encontrado"
	case errors.Is(err, store.ErrEmailExists):
		return "Email já cadastrado"
	case errors.Is(err, service.ErrStudyNotOwned):
		return "Acesso negado"
	case errors.Is(err, domain.ErrStudyNotReady):
		return "Estudo ainda não está pronto"
	case errors.Is(err, service.ErrUnsupportedFile):
		return "Tipo de arquivo não suportado. Envie PDF, DOCX ou TXT"
	case errors.Is(err, service.ErrNoAnswers):
		return "Nenhuma resposta enviada"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Email ou senha inválidos"
	case errors.Is(err, queue.ErrUnavailable):
		return "Serviço de processamento indisponível. Tente novamente mais tarde"
	default:
		return "Erro interno do servidor"
	}
}
