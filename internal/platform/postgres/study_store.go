package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/estudai/estudai-api/internal/domain"
	"github.com/estudai/estudai-api/internal/platform/logger"
	"github.com/estudai/estudai-api/internal/store"
)

// StudyStore implements the store.StudyStore interface using a PostgreSQL
// database as the storage backend.
type StudyStore struct {
	db     *sql.DB // nil when the store is bound to a transaction
	q      store.DBTX
	logger *slog.Logger
}

// NewStudyStore creates a new PostgreSQL implementation of the StudyStore
// interface. It accepts an initialized database connection managed by the
// caller. If logger is nil, a default logger will be used.
func NewStudyStore(db *sql.DB, logger *slog.Logger) *StudyStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &StudyStore{
		db:     db,
		q:      db,
		logger: logger.With(slog.String("component", "study_store")),
	}
}

// Ensure StudyStore implements store.StudyStore interface
var _ store.StudyStore = (*StudyStore)(nil)

// WithTx implements store.StudyStore.WithTx
func (s *StudyStore) WithTx(tx *sql.Tx) store.StudyStore {
	return &StudyStore{
		db:     nil,
		q:      tx,
		logger: s.logger,
	}
}

// Create implements store.StudyStore.Create
// It saves a new study to the database, handling domain validation.
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *StudyStore) Create(ctx context.Context, study *domain.Study) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := study.Validate(); err != nil {
		log.Warn("study validation failed during create",
			slog.String("error", err.Error()),
			slog.Int64("user_id", study.UserID))
		return err
	}

	query := `
		INSERT INTO estudos (usuario_id, titulo, resumo, status, caminho_arquivo, diagnostico, data_criacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := s.q.QueryRowContext(
		ctx,
		query,
		study.UserID,
		study.Title,
		study.Summary,
		study.Status,
		study.FileKey,
		study.Diagnostic,
		study.CreatedAt,
	).Scan(&study.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during study creation",
				slog.String("error", err.Error()),
				slog.Int64("user_id", study.UserID))
			return fmt.Errorf("%w: user with ID %d not found",
				store.ErrInvalidEntity, study.UserID)
		}

		log.Error("failed to create study",
			slog.String("error", err.Error()),
			slog.Int64("user_id", study.UserID))
		return err
	}

	log.Info("study created successfully",
		slog.Int64("study_id", study.ID),
		slog.Int64("user_id", study.UserID),
		slog.String("status", string(study.Status)))
	return nil
}

// GetByID implements store.StudyStore.GetByID
// Returns store.ErrStudyNotFound if the study does not exist.
func (s *StudyStore) GetByID(ctx context.Context, id int64) (*domain.Study, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, usuario_id, titulo, resumo, status, caminho_arquivo, diagnostico, data_criacao
		FROM estudos
		WHERE id = $1
	`

	var study domain.Study
	var status string

	err := s.q.QueryRowContext(ctx, query, id).Scan(
		&study.ID,
		&study.UserID,
		&study.Title,
		&study.Summary,
		&status,
		&study.FileKey,
		&study.Diagnostic,
		&study.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("study not found", slog.Int64("study_id", id))
			return nil, store.ErrStudyNotFound
		}
		log.Error("failed to get study by ID",
			slog.String("error", err.Error()),
			slog.Int64("study_id", id))
		return nil, err
	}

	study.Status = domain.StudyStatus(status)
	return &study, nil
}

// ListByUser implements store.StudyStore.ListByUser
func (s *StudyStore) ListByUser(ctx context.Context, userID int64) ([]*domain.Study, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, usuario_id, titulo, resumo, status, caminho_arquivo, diagnostico, data_criacao
		FROM estudos
		WHERE usuario_id = $1
		ORDER BY data_criacao DESC
	`

	rows, err := s.q.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query studies by user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var studies []*domain.Study
	for rows.Next() {
		var study domain.Study
		var status string

		err := rows.Scan(
			&study.ID,
			&study.UserID,
			&study.Title,
			&study.Summary,
			&status,
			&study.FileKey,
			&study.Diagnostic,
			&study.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan study row",
				slog.String("error", err.Error()))
			return nil, err
		}

		study.Status = domain.StudyStatus(status)
		studies = append(studies, &study)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	if studies == nil {
		studies = []*domain.Study{}
	}

	return studies, nil
}

// Delete implements store.StudyStore.Delete
// Question rows cascade via the schema's ON DELETE CASCADE.
func (s *StudyStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.q.ExecContext(ctx, `DELETE FROM estudos WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete study",
			slog.String("error", err.Error()),
			slog.Int64("study_id", id))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("study_id", id))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("study not found for delete", slog.Int64("study_id", id))
		return store.ErrStudyNotFound
	}

	log.Info("study deleted", slog.Int64("study_id", id))
	return nil
}

// Complete implements store.StudyStore.Complete
// The summary, status flip and question batch are committed atomically so a
// reader never observes a pronto study without its questions.
func (s *StudyStore) Complete(ctx context.Context, id int64, summary string, questions []*domain.Question) error {
	if s.db == nil {
		return s.completeIn(ctx, s.q, id, summary, questions)
	}

	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.completeIn(ctx, tx, id, summary, questions)
	})
}

// completeIn performs the Complete writes on the given queryable.
func (s *StudyStore) completeIn(ctx context.Context, q store.DBTX, id int64, summary string, questions []*domain.Question) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	study, err := s.getForUpdate(ctx, q, id)
	if err != nil {
		return err
	}

	if err := study.MarkReady(summary); err != nil {
		log.Warn("invalid study transition on complete",
			slog.String("error", err.Error()),
			slog.Int64("study_id", id),
			slog.String("status", string(study.Status)))
		return err
	}

	updateQuery := `
		UPDATE estudos
		SET resumo = $1, status = $2, diagnostico = ''
		WHERE id = $3
	`
	if _, err := q.ExecContext(ctx, updateQuery, study.Summary, study.Status, id); err != nil {
		log.Error("failed to store study results",
			slog.String("error", err.Error()),
			slog.Int64("study_id", id))
		return err
	}

	insertQuery := `
		INSERT INTO questoes (estudo_id, pergunta, opcoes, resposta_correta)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	for _, question := range questions {
		question.StudyID = id
		if err := question.Validate(); err != nil {
			log.Warn("question validation failed during complete",
				slog.String("error", err.Error()),
				slog.Int64("study_id", id))
			return err
		}

		opts, err := encodeOptions(question.Options)
		if err != nil {
			return err
		}

		err = q.QueryRowContext(
			ctx,
			insertQuery,
			question.StudyID,
			question.Prompt,
			opts,
			question.CorrectAnswer,
		).Scan(&question.ID)
		if err != nil {
			log.Error("failed to insert question",
				slog.String("error", err.Error()),
				slog.Int64("study_id", id))
			return err
		}
	}

	log.Info("study completed",
		slog.Int64("study_id", id),
		slog.Int("questions", len(questions)))
	return nil
}

// Fail implements store.StudyStore.Fail
func (s *StudyStore) Fail(ctx context.Context, id int64, diagnostic string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	study, err := s.getForUpdate(ctx, s.q, id)
	if err != nil {
		return err
	}

	if err := study.MarkFailed(diagnostic); err != nil {
		log.Warn("invalid study transition on fail",
			slog.String("error", err.Error()),
			slog.Int64("study_id", id),
			slog.String("status", string(study.Status)))
		return err
	}

	query := `
		UPDATE estudos
		SET status = $1, diagnostico = $2
		WHERE id = $3
	`
	if _, err := s.q.ExecContext(ctx, query, study.Status, study.Diagnostic, id); err != nil {
		log.Error("failed to mark study as failed",
			slog.String("error", err.Error()),
			slog.Int64("study_id", id))
		return err
	}

	log.Info("study marked as failed",
		slog.Int64("study_id", id),
		slog.String("diagnostic", diagnostic))
	return nil
}

// getForUpdate fetches the study through the given queryable so transition
// checks run against the current row inside the caller's transaction.
func (s *StudyStore) getForUpdate(ctx context.Context, q store.DBTX, id int64) (*domain.Study, error) {
	query := `
		SELECT id, usuario_id, titulo, resumo, status, caminho_arquivo, diagnostico, data_criacao
		FROM estudos
		WHERE id = $1
	`

	var study domain.Study
	var status string

	err := q.QueryRowContext(ctx, query, id).Scan(
		&study.ID,
		&study.UserID,
		&study.Title,
		&study.Summary,
		&status,
		&study.FileKey,
		&study.Diagnostic,
		&study.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrStudyNotFound
		}
		return nil, err
	}

	study.Status = domain.StudyStatus(status)
	return &study, nil
}
