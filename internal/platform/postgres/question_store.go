package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/estudai/estudai-api/internal/domain"
	"github.com/estudai/estudai-api/internal/platform/logger"
	"github.com/estudai/estudai-api/internal/store"
)

// QuestionStore implements the store.QuestionStore interface using a
// PostgreSQL database as the storage backend. The options list is stored
// as a JSONB array.
type QuestionStore struct {
	db     *sql.DB // nil when the store is bound to a transaction
	q      store.DBTX
	logger *slog.Logger
}

// NewQuestionStore creates a new PostgreSQL implementation of the
// QuestionStore interface. If logger is nil, a default logger will be used.
func NewQuestionStore(db *sql.DB, logger *slog.Logger) *QuestionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &QuestionStore{
		db:     db,
		q:      db,
		logger: logger.With(slog.String("component", "question_store")),
	}
}

// Ensure QuestionStore implements store.QuestionStore interface
var _ store.QuestionStore = (*QuestionStore)(nil)

// WithTx implements store.QuestionStore.WithTx
func (s *QuestionStore) WithTx(tx *sql.Tx) store.QuestionStore {
	return &QuestionStore{
		db:     nil,
		q:      tx,
		logger: s.logger,
	}
}

// ListByStudy implements store.QuestionStore.ListByStudy
func (s *QuestionStore) ListByStudy(ctx context.Context, studyID int64) ([]*domain.Question, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, estudo_id, pergunta, opcoes, resposta_correta, resposta_usuario, correta
		FROM questoes
		WHERE estudo_id = $1
		ORDER BY id
	`

	rows, err := s.q.QueryContext(ctx, query, studyID)
	if err != nil {
		log.Error("failed to query questions by study",
			slog.String("error", err.Error()),
			slog.Int64("study_id", studyID))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var questions []*domain.Question
	for rows.Next() {
		var question domain.Question
		var rawOptions []byte
		var userAnswer sql.NullString
		var correct sql.NullBool

		err := rows.Scan(
			&question.ID,
			&question.StudyID,
			&question.Prompt,
			&rawOptions,
			&question.CorrectAnswer,
			&userAnswer,
			&correct,
		)
		if err != nil {
			log.Error("failed to scan question row",
				slog.String("error", err.Error()))
			return nil, err
		}

		if err := json.Unmarshal(rawOptions, &question.Options); err != nil {
			log.Error("failed to decode question options",
				slog.String("error", err.Error()),
				slog.Int64("question_id", question.ID))
			return nil, fmt.Errorf("failed to decode question options: %w", err)
		}

		if userAnswer.Valid {
			answer := userAnswer.String
			question.UserAnswer = &answer
		}
		if correct.Valid {
			flag := correct.Bool
			question.Correct = &flag
		}

		questions = append(questions, &question)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if questions == nil {
		questions = []*domain.Question{}
	}

	return questions, nil
}

// SaveAnswers implements store.QuestionStore.SaveAnswers
// All per-question writes commit in a single transaction so a retried
// grading request never observes a half-applied result set.
func (s *QuestionStore) SaveAnswers(ctx context.Context, questions []*domain.Question) error {
	if s.db == nil {
		return s.saveAnswersIn(ctx, s.q, questions)
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.saveAnswersIn(ctx, tx, questions)
	})
}

// saveAnswersIn performs the SaveAnswers writes on the given queryable.
func (s *QuestionStore) saveAnswersIn(ctx context.Context, q store.DBTX, questions []*domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE questoes
		SET resposta_usuario = $1, correta = $2
		WHERE id = $3
	`

	for _, question := range questions {
		result, err := q.ExecContext(ctx, query, question.UserAnswer, question.Correct, question.ID)
		if err != nil {
			log.Error("failed to save question answer",
				slog.String("error", err.Error()),
				slog.Int64("question_id", question.ID))
			return err
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rowsAffected == 0 {
			return store.ErrQuestionNotFound
		}
	}

	log.Info("question answers saved", slog.Int("count", len(questions)))
	return nil
}

// encodeOptions serializes an options list for the JSONB column.
func encodeOptions(options []string) ([]byte, error) {
	data, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode question options: %w", err)
	}
	return data, nil
}
