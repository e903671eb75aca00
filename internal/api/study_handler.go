package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/estudai/estudai-api/internal/api/shared"
	"github.com/estudai/estudai-api/internal/domain"
	"github.com/estudai/estudai-api/internal/platform/logger"
	"github.com/estudai/estudai-api/internal/service"
)

// maxUploadBytes bounds the in-memory document upload.
const maxUploadBytes = 16 << 20

// StudyManager is the slice of the study service the handler needs.
// *service.StudyService is the production implementation.
type StudyManager interface {
	CreateStudyAndEnqueue(ctx context.Context, userID int64, title, filename string, data []byte) (*domain.Study, error)
	ListStudies(ctx context.Context, userID int64) ([]*domain.Study, error)
	GetStudyForUser(ctx context.Context, userID, studyID int64) (*domain.Study, []*domain.Question, error)
	Grade(ctx context.Context, userID, studyID int64, answers map[int64]string) (service.GradeResult, error)
}

// StudyHandler serves the study lifecycle endpoints.
type StudyHandler struct {
	studies StudyManager
}

// NewStudyHandler creates a StudyHandler.
func NewStudyHandler(studies StudyManager) *StudyHandler {
	return &StudyHandler{studies: studies}
}

// StudyView is the list/detail representation of a study.
type StudyView struct {
	ID        int64              `json:"id"`
	Title     string             `json:"titulo"`
	Summary   string             `json:"resumo"`
	Status    domain.StudyStatus `json:"status"`
	CreatedAt string             `json:"data_criacao"`
}

// QuestionView is the detail representation of a quiz question. The
// correct answer stays server-side; only the user's own result is shown.
type QuestionView struct {
	ID         int64    `json:"id"`
	Prompt     string   `json:"pergunta"`
	Options    []string `json:"opcoes"`
	UserAnswer *string  `json:"resposta_usuario,omitempty"`
	Correct    *bool    `json:"correta,omitempty"`
}

// StudyDetailResponse is the body of GET /api/estudos/{id}.
type StudyDetailResponse struct {
	StudyView
	Questions []QuestionView `json:"questoes"`
}

// GradeRequest is the body of POST /api/estudos/{id}/corrigir.
type GradeRequest struct {
	Answers map[int64]string `json:"respostas"`
}

func toStudyView(study *domain.Study) StudyView {
	return StudyView{
		ID:        study.ID,
		Title:     study.Title,
		Summary:   study.Summary,
		Status:    study.Status,
		CreatedAt: study.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Create handles POST /api/estudos: a multipart upload with a documento
// file and an optional nome_estudo field. Responds 202 because processing
// continues asynchronously.
func (h *StudyHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	userID, err := shared.GetUserID(r.Context())
	if err != nil {
		shared.RespondWithError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, "Upload inválido")
		return
	}

	file, header, err := r.FormFile("documento")
	if err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, "Documento é obrigatório")
		return
	}
	defer file.Close()

	// The title is optional; the file name stands in when absent.
	title := r.FormValue("nome_estudo")
	if title == "" {
		title = header.Filename
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, "Falha ao ler o arquivo")
		return
	}
	if len(data) > maxUploadBytes {
		shared.RespondWithError(w, http.StatusRequestEntityTooLarge, "Arquivo muito grande")
		return
	}

	study, err := h.studies.CreateStudyAndEnqueue(r.Context(), userID, title, header.Filename, data)
	if err != nil {
		log.Warn("study creation failed",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		shared.RespondWithError(w, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, http.StatusAccepted, toStudyView(study))
}

// List handles GET /api/estudos.
func (h *StudyHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.GetUserID(r.Context())
	if err != nil {
		shared.RespondWithError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	studies, err := h.studies.ListStudies(r.Context(), userID)
	if err != nil {
		shared.RespondWithError(w, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	views := make([]StudyView, 0, len(studies))
	for _, study := range studies {
		views = append(views, toStudyView(study))
	}
	shared.RespondWithJSON(w, http.StatusOK, views)
}

// Get handles GET /api/estudos/{id}. A study still processing (or failed)
// answers 409 with its current status so the dashboard can poll.
func (h *StudyHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.GetUserID(r.Context())
	if err != nil {
		shared.RespondWithError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	studyID, err := parseStudyID(r)
	if err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, "ID de estudo inválido")
		return
	}

	study, questions, err := h.studies.GetStudyForUser(r.Context(), userID, studyID)
	if err != nil {
		if errors.Is(err, domain.ErrStudyNotReady) {
			shared.RespondWithJSON(w, http.StatusConflict, map[string]string{
				"error":  GetSafeErrorMessage(err),
				"status": string(study.Status),
			})
			return
		}
		shared.RespondWithError(w, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, QuestionView{
			ID:         q.ID,
			Prompt:     q.Prompt,
			Options:    q.Options,
			UserAnswer: q.UserAnswer,
			Correct:    q.Correct,
		})
	}

	shared.RespondWithJSON(w, http.StatusOK, StudyDetailResponse{
		StudyView: toStudyView(study),
		Questions: views,
	})
}

// Grade handles POST /api/estudos/{id}/corrigir.
func (h *StudyHandler) Grade(w http.ResponseWriter, r *http.Request) {
	userID, err := shared.GetUserID(r.Context())
	if err != nil {
		shared.RespondWithError(w, http.StatusUnauthorized, "Não autenticado")
		return
	}

	studyID, err := parseStudyID(r)
	if err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, "ID de estudo inválido")
		return
	}

	var req GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.RespondWithError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	result, err := h.studies.Grade(r.Context(), userID, studyID, req.Answers)
	if err != nil {
		shared.RespondWithError(w, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	shared.RespondWithJSON(w, http.StatusOK, result)
}

// parseStudyID reads the {id} route parameter.
func parseStudyID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid study id")
	}
	return id, nil
}
