package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/estudai/estudai-api/internal/document"
	"github.com/estudai/estudai-api/internal/domain"
	"github.com/estudai/estudai-api/internal/queue"
	"github.com/estudai/estudai-api/internal/storage"
	"github.com/estudai/estudai-api/internal/store"
)

// TaskPublisher enqueues processing tasks.
// *queue.Producer is the production implementation.
type TaskPublisher interface {
	Publish(ctx context.Context, task queue.Task) error
}

// GradeResult reports the outcome of grading a quiz submission.
type GradeResult struct {
	Correct int `json:"acertos"`
	Total   int `json:"total"`
}

// StudyService handles the study lifecycle: upload with task enqueue,
// retrieval with ownership checks and quiz grading.
type StudyService struct {
	studies   store.StudyStore
	questions store.QuestionStore
	files     storage.Storage
	publisher TaskPublisher
	logger    *slog.Logger
}

// NewStudyService creates a StudyService with the given collaborators.
// If logger is nil, a default logger will be used.
func NewStudyService(
	studies store.StudyStore,
	questions store.QuestionStore,
	files storage.Storage,
	publisher TaskPublisher,
	logger *slog.Logger,
) *StudyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyService{
		studies:   studies,
		questions: questions,
		files:     files,
		publisher: publisher,
		logger:    logger.With(slog.String("component", "study_service")),
	}
}

// CreateStudyAndEnqueue stores the uploaded document, creates the study in
// the processing state and publishes exactly one processing task. When the
// broker is unavailable the study row and the stored file are removed
// again, so a study only exists if its task was accepted by the queue.
func (s *StudyService) CreateStudyAndEnqueue(ctx context.Context, userID int64, title, filename string, data []byte) (*domain.Study, error) {
	if !document.AllowedFile(filename) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(filename))
	}

	// Random key, original extension. The extension drives format
	// dispatch in the worker.
	fileKey := uuid.NewString() + strings.ToLower(filepath.Ext(filename))

	if _, err := s.files.Save(ctx, fileKey, data); err != nil {
		return nil, fmt.Errorf("failed to store uploaded file: %w", err)
	}

	study, err := domain.NewStudy(userID, title, fileKey)
	if err != nil {
		s.discardFile(ctx, fileKey)
		return nil, err
	}

	if err := s.studies.Create(ctx, study); err != nil {
		s.discardFile(ctx, fileKey)
		return nil, fmt.Errorf("failed to create study: %w", err)
	}

	task := queue.Task{EstudoID: study.ID, Filename: fileKey, UserID: userID}
	if err := s.publisher.Publish(ctx, task); err != nil {
		s.compensate(ctx, study.ID, fileKey)
		return nil, fmt.Errorf("failed to enqueue processing task: %w", err)
	}

	s.logger.Info("study created",
		slog.Int64("estudo_id", study.ID),
		slog.Int64("user_id", userID))
	return study, nil
}

// compensate undoes a study creation whose task could not be enqueued.
// Both removals are attempted even if one fails; leftovers are logged for
// manual cleanup.
func (s *StudyService) compensate(ctx context.Context, studyID int64, fileKey string) {
	s.logger.Warn("rolling back study after enqueue failure",
		slog.Int64("estudo_id", studyID))

	if err := s.studies.Delete(ctx, studyID); err != nil && !errors.Is(err, store.ErrStudyNotFound) {
		s.logger.Error("compensation failed to delete study row",
			slog.Int64("estudo_id", studyID),
			slog.String("error", err.Error()))
	}
	s.discardFile(ctx, fileKey)
}

// discardFile best-effort removes a stored file.
func (s *StudyService) discardFile(ctx context.Context, fileKey string) {
	if err := s.files.Delete(ctx, fileKey); err != nil {
		s.logger.Error("failed to delete stored file",
			slog.String("file_key", fileKey),
			slog.String("error", err.Error()))
	}
}

// ListStudies returns all studies owned by the user, newest first.
func (s *StudyService) ListStudies(ctx context.Context, userID int64) ([]*domain.Study, error) {
	return s.studies.ListByUser(ctx, userID)
}

// GetStudyForUser returns a study and its questions after checking
// ownership. A study that has not reached the ready state is returned
// together with domain.ErrStudyNotReady and no questions, so callers can
// surface its current status.
func (s *StudyService) GetStudyForUser(ctx context.Context, userID, studyID int64) (*domain.Study, []*domain.Question, error) {
	study, err := s.loadOwned(ctx, userID, studyID)
	if err != nil {
		return nil, nil, err
	}

	if !study.IsReady() {
		return study, nil, domain.ErrStudyNotReady
	}

	questions, err := s.questions.ListByStudy(ctx, studyID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load questions: %w", err)
	}

	return study, questions, nil
}

// Grade applies a batch of submitted answers to a ready study's quiz.
// Answers are keyed by question ID; questions absent from the submission
// keep their previous answer, listed ones are overwritten. Returns the
// correct count over the full quiz.
func (s *StudyService) Grade(ctx context.Context, userID, studyID int64, answers map[int64]string) (GradeResult, error) {
	if len(answers) == 0 {
		return GradeResult{}, ErrNoAnswers
	}

	study, err := s.loadOwned(ctx, userID, studyID)
	if err != nil {
		return GradeResult{}, err
	}
	if !study.IsReady() {
		return GradeResult{}, domain.ErrStudyNotReady
	}

	questions, err := s.questions.ListByStudy(ctx, studyID)
	if err != nil {
		return GradeResult{}, fmt.Errorf("failed to load questions: %w", err)
	}

	var graded []*domain.Question
	for _, q := range questions {
		if submitted, ok := answers[q.ID]; ok {
			q.Answer(submitted)
			graded = append(graded, q)
		}
	}
	if len(graded) == 0 {
		return GradeResult{}, ErrNoAnswers
	}

	if err := s.questions.SaveAnswers(ctx, graded); err != nil {
		return GradeResult{}, fmt.Errorf("failed to save answers: %w", err)
	}

	return GradeResult{
		Correct: domain.CorrectCount(questions),
		Total:   len(questions),
	}, nil
}

// loadOwned fetches a study and verifies the caller owns it.
func (s *StudyService) loadOwned(ctx context.Context, userID, studyID int64) (*domain.Study, error) {
	study, err := s.studies.GetByID(ctx, studyID)
	if err != nil {
		return nil, err
	}
	if study.UserID != userID {
		return nil, ErrStudyNotOwned
	}
	return study, nil
}
