package store

import (
	"context"
	"database/sql"

	"github.com/estudai/estudai-api/internal/domain"
)

// QuestionStore defines the interface for question data persistence.
type QuestionStore interface {
	// ListByStudy retrieves all questions of a study in insertion order.
	// Returns an empty slice if the study has none.
	ListByStudy(ctx context.Context, studyID int64) ([]*domain.Question, error)

	// SaveAnswers persists the user answer and correctness flag of each
	// given question in a single transaction. Unlisted questions are left
	// untouched; listed ones are overwritten (last write wins).
	SaveAnswers(ctx context.Context, questions []*domain.Question) error

	// WithTx returns a new QuestionStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) QuestionStore
}
