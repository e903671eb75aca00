package store

import (
	"context"
	"database/sql"

	"github.com/estudai/estudai-api/internal/domain"
)

// StudyStore defines the interface for study data persistence.
type StudyStore interface {
	// Create saves a new study to the store.
	// It handles domain validation internally.
	Create(ctx context.Context, study *domain.Study) error

	// GetByID retrieves a study by its unique ID.
	// Returns ErrStudyNotFound if the study does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Study, error)

	// ListByUser retrieves all studies owned by the given user, newest
	// first. Returns an empty slice if the user has none.
	ListByUser(ctx context.Context, userID int64) ([]*domain.Study, error)

	// Delete removes a study. Question rows cascade with it.
	// Returns ErrStudyNotFound if the study does not exist.
	// Used by the producer-failure compensation path.
	Delete(ctx context.Context, id int64) error

	// Complete atomically records the worker's results: it stores the
	// summary, flips the status to pronto and inserts the generated
	// question batch in a single transaction.
	Complete(ctx context.Context, id int64, summary string, questions []*domain.Question) error

	// Fail flips the status to falha and records the diagnostic message.
	// Returns ErrStudyNotFound if the study does not exist.
	Fail(ctx context.Context, id int64, diagnostic string) error

	// WithTx returns a new StudyStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) StudyStore
}
