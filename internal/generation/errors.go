package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrUnknownDeckType is returned when a prompt is requested for a deck type
	// that has no template. Validated requests never trigger it.
	ErrUnknownDeckType = errors.New("unknown deck type")

	// ErrEmptyCompletion is returned when the provider answers without any text content
	ErrEmptyCompletion = errors.New("completion contained no text content")

	// ErrProviderError is returned for network, auth, quota or other provider-side failures
	ErrProviderError = errors.New("completion provider error")

	// ErrTransientFailure marks provider errors worth retrying, such as
	// timeouts, 429 and 5xx responses. It always accompanies ErrProviderError.
	ErrTransientFailure = errors.New("transient completion failure")

	// ErrMalformedJSON is returned when the completion does not contain parseable JSON
	ErrMalformedJSON = errors.New("failed to parse completion as JSON")

	// ErrSchemaViolation is returned when the JSON does not match the flashcard array shape
	ErrSchemaViolation = errors.New("invalid flashcard data structure")

	// ErrInvalidConfig is returned when a completer is constructed with invalid settings
	ErrInvalidConfig = errors.New("invalid completer configuration")
)
