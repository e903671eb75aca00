package deepseek

import (
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/estudai/estudai-api/internal/generation"
)

// publicFailureMsg is the only text about provider failures that may
// reach API responses.
const publicFailureMsg = "o serviço de IA está indisponível no momento"

// APIError describes a failed provider call. PublicMsg is safe to show to
// end users; Detail and StatusCode are for logs only.
type APIError struct {
	PublicMsg  string
	Detail     string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("deepseek api error (status %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("deepseek api error: %s", e.Detail)
}

func (e *APIError) Unwrap() error { return generation.ErrServiceFailure }

// wrapAPIError converts a client error into an APIError, preserving the
// provider status code when one is available.
func wrapAPIError(err error) *APIError {
	apiErr := &APIError{
		PublicMsg: publicFailureMsg,
		Detail:    err.Error(),
	}

	var respErr *openai.APIError
	if errors.As(err, &respErr) {
		apiErr.StatusCode = respErr.HTTPStatusCode
	}
	return apiErr
}
