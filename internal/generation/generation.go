// Package generation defines the interface to the AI content generators
// used by the processing pipeline. Implementations live under
// internal/platform and talk to concrete model providers.
package generation

import (
	"context"

	"github.com/estudai/estudai-api/internal/domain"
)

// Generator produces study content from extracted document text.
// Implementations must be safe for concurrent use.
type Generator interface {
	// Summarize produces a didactic summary of the given text segment.
	Summarize(ctx context.Context, text string) (string, error)

	// GenerateQuiz produces the fixed-shape quiz for the given text
	// segment. Returned questions carry prompt, options and correct
	// answer only; persistence assigns IDs.
	GenerateQuiz(ctx context.Context, text string) ([]domain.Question, error)
}

// HealthChecker reports whether the generation backend is reachable and
// responding. Used by the readiness endpoint.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}
