package generation

import "context"

// Completion is one text response from a hosted language model.
type Completion struct {
	// Content is the text of the first choice returned by the provider.
	Content string

	// Model identifies the model that produced Content.
	Model string
}

// Completer sends a single prompt to a hosted language model.
// This interface is the boundary between the application core and the
// external providers; adapters live under internal/platform.
//
// Implementations make a single attempt; wrap one with WithRetry to retry
// transient failures. They return an error wrapping ErrEmptyCompletion when the
// provider returns no text, and one wrapping ErrProviderError for transport,
// authentication or quota failures. Failures worth retrying also wrap
// ErrTransientFailure.
type Completer interface {
	Complete(ctx context.Context, prompt string) (*Completion, error)
}
