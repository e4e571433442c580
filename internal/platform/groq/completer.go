package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/lingodeck/internal/config"
	"github.com/phrazzld/lingodeck/internal/generation"
	"github.com/phrazzld/lingodeck/internal/platform/logger"
	"github.com/phrazzld/lingodeck/internal/redact"
)

// maxErrorBody bounds how much of a failed response is kept for logging.
const maxErrorBody = 2048

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Completer implements generation.Completer against Groq's
// OpenAI-compatible chat completions endpoint.
type Completer struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
	logger     *slog.Logger
}

// Ensure Completer implements generation.Completer
var _ generation.Completer = (*Completer)(nil)

// NewCompleter creates a Groq-backed completer from the LLM configuration.
// If httpClient is nil, a client with the configured request timeout is used.
func NewCompleter(cfg config.LLMConfig, httpClient *http.Client, log *slog.Logger) (*Completer, error) {
	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("%w: groq API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	baseURL := cfg.GroqBaseURL
	if baseURL == "" {
		baseURL = config.DefaultGroqBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second}
	}
	if log == nil {
		log = slog.Default()
	}

	return &Completer{
		httpClient: httpClient,
		endpoint:   strings.TrimRight(baseURL, "/") + "/chat/completions",
		apiKey:     cfg.GroqAPIKey,
		model:      cfg.ModelName,
		logger:     log.With(slog.String("component", "groq_completer")),
	}, nil
}

// Complete implements generation.Completer.
func (c *Completer) Complete(ctx context.Context, prompt string) (*generation.Completion, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", generation.ErrProviderError, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", generation.ErrProviderError, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("groq request failed",
			slog.String("error", redact.Error(err)),
			slog.Duration("elapsed", time.Since(start)))
		if errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %v", generation.ErrProviderError, err)
		}
		return nil, fmt.Errorf("%w: %w: %v", generation.ErrProviderError, generation.ErrTransientFailure, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Debug("failed to close response body", slog.String("error", closeErr.Error()))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(log, resp)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", generation.ErrProviderError, err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil ||
		strings.TrimSpace(*parsed.Choices[0].Message.Content) == "" {
		log.Warn("groq returned no text content", slog.Int("choices", len(parsed.Choices)))
		return nil, generation.ErrEmptyCompletion
	}

	content := *parsed.Choices[0].Message.Content
	log.Info("groq completion received",
		slog.String("model", c.model),
		slog.Int("content_length", len(content)),
		slog.Duration("elapsed", time.Since(start)))

	return &generation.Completion{Content: content, Model: c.model}, nil
}

// statusError converts a non-2xx response into a provider error. Rate
// limiting and server errors are marked transient.
func (c *Completer) statusError(log *slog.Logger, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	message := http.StatusText(resp.StatusCode)
	var parsed apiError
	if json.Unmarshal(raw, &parsed) == nil && parsed.Error.Message != "" {
		message = parsed.Error.Message
	}

	log.Error("groq returned error status",
		slog.Int("status", resp.StatusCode),
		slog.String("message", redact.String(message)))

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return fmt.Errorf("%w: %w: status %d: %s",
			generation.ErrProviderError, generation.ErrTransientFailure, resp.StatusCode, message)
	}
	return fmt.Errorf("%w: status %d: %s", generation.ErrProviderError, resp.StatusCode, message)
}
