package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/lingodeck/internal/generation"
)

// DefaultCompletionJSON is a well-formed two-card completion the parser accepts.
const DefaultCompletionJSON = `[
  {"front": "hola", "back": "hello", "explanation": "informal greeting", "example": "¡Hola, Ana!"},
  {"front": "gracias", "back": "thank you", "explanation": "", "example": null}
]`

// DefaultModel is the model name reported by completions from MockCompleter.
const DefaultModel = "mock-model"

// MockCompleter implements generation.Completer for testing
type MockCompleter struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, prompt string) (*generation.Completion, error)

	// Default response values
	Content string
	Model   string
	Err     error

	// Call tracking for verification
	CompleteCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Complete was called
		Count int

		// Prompts contains all prompts passed to Complete calls
		Prompts []string
	}
}

var _ generation.Completer = (*MockCompleter)(nil)

// Complete implements the generation.Completer interface
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (*generation.Completion, error) {
	m.CompleteCalls.mu.Lock()
	m.CompleteCalls.Count++
	m.CompleteCalls.Prompts = append(m.CompleteCalls.Prompts, prompt)
	m.CompleteCalls.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, prompt)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	model := m.Model
	if model == "" {
		model = DefaultModel
	}
	return &generation.Completion{Content: m.Content, Model: model}, nil
}

// CallCount returns how many times Complete was called.
func (m *MockCompleter) CallCount() int {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	return m.CompleteCalls.Count
}

// LastPrompt returns the prompt of the most recent call, or "" if there was none.
func (m *MockCompleter) LastPrompt() string {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	if len(m.CompleteCalls.Prompts) == 0 {
		return ""
	}
	return m.CompleteCalls.Prompts[len(m.CompleteCalls.Prompts)-1]
}

// NewMockCompleterWithContent creates a MockCompleter that returns content.
func NewMockCompleterWithContent(content string) *MockCompleter {
	return &MockCompleter{Content: content}
}

// NewMockCompleterWithDefaultCards creates a MockCompleter returning DefaultCompletionJSON.
func NewMockCompleterWithDefaultCards() *MockCompleter {
	return &MockCompleter{Content: DefaultCompletionJSON}
}

// NewMockCompleterWithError creates a MockCompleter that returns the specified error
func NewMockCompleterWithError(err error) *MockCompleter {
	return &MockCompleter{Err: err}
}

// Reset resets the call tracking state
func (m *MockCompleter) Reset() {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()

	m.CompleteCalls.Count = 0
	m.CompleteCalls.Prompts = nil
}
