package service

import (
	"errors"
	"fmt"
	"time"
)

// Service sentinel errors. The API layer maps each one to a status code and
// a user-facing message with errors.Is.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer should map this to HTTP 403 Forbidden.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrDeckNotFound indicates that the deck does not exist.
	ErrDeckNotFound = errors.New("deck not found")

	// ErrRateLimited indicates the user has used up their generations for the
	// current window. The returned error is a *RateLimitError.
	ErrRateLimited = errors.New("generation rate limit exceeded")

	// ErrGenerationFailed indicates the completion provider failed.
	ErrGenerationFailed = errors.New("failed to generate flashcards")

	// ErrParseFailed indicates the completion could not be parsed into flashcards.
	ErrParseFailed = errors.New("failed to parse completion")

	// ErrEmptyGeneration indicates the completion parsed to zero flashcards.
	ErrEmptyGeneration = errors.New("no flashcards were generated")
)

// RateLimitError reports the limit that was hit. It matches ErrRateLimited.
type RateLimitError struct {
	Max    int
	Window time.Duration
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%v: %d decks per %s", ErrRateLimited, e.Max, e.Window)
}

// Is reports whether target is ErrRateLimited.
func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// DeckServiceError wraps unexpected errors from the deck service with context.
type DeckServiceError struct {
	// Operation is the operation that failed (e.g., "generate", "delete_deck")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for DeckServiceError.
func (e *DeckServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deck service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("deck service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DeckServiceError) Unwrap() error {
	return e.Err
}

// NewDeckServiceError creates a new DeckServiceError.
// Service sentinels pass through unwrapped so callers can match them directly.
func NewDeckServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	for _, sentinel := range []error{
		ErrDeckNotFound,
		ErrNotOwned,
		ErrRateLimited,
		ErrGenerationFailed,
		ErrParseFailed,
		ErrEmptyGeneration,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	return &DeckServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
