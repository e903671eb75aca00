package generation

import "errors"

var (
	// ErrServiceFailure indicates the model provider could not be reached
	// or returned a non-success response.
	ErrServiceFailure = errors.New("generation service failure")

	// ErrSchemaValidation indicates the model responded but the payload
	// does not satisfy the required content shape.
	ErrSchemaValidation = errors.New("generated content failed schema validation")

	// ErrEmptyInput indicates there was no text to generate from.
	ErrEmptyInput = errors.New("no text to generate from")

	// ErrInvalidConfig indicates the generator was constructed with
	// invalid configuration.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
