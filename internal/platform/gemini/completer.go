package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/lingodeck/internal/config"
	"github.com/phrazzld/lingodeck/internal/generation"
	"github.com/phrazzld/lingodeck/internal/platform/logger"
	"google.golang.org/genai"
)

// contentGenerator is the part of the genai Models service the completer uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Completer implements generation.Completer using Google's Gemini API.
type Completer struct {
	models  contentGenerator
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

// Ensure Completer implements generation.Completer
var _ generation.Completer = (*Completer)(nil)

// NewCompleter creates a Gemini-backed completer from the LLM configuration.
func NewCompleter(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newCompleter(client.Models, logger, cfg)
}

func newCompleter(models contentGenerator, log *slog.Logger, cfg config.LLMConfig) (*Completer, error) {
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Completer{
		models:  models,
		model:   cfg.ModelName,
		timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		logger:  log.With(slog.String("component", "gemini_completer")),
	}, nil
}

// Complete implements generation.Completer.
func (c *Completer) Complete(ctx context.Context, prompt string) (*generation.Completion, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
	})
	if err != nil {
		log.Error("gemini request failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		// Errors surfaced by the client are network, quota or server failures.
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, fmt.Errorf("%w: %v", generation.ErrProviderError, err)
		}
		return nil, fmt.Errorf("%w: %w: %v", generation.ErrProviderError, generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("%w: no candidates in response", generation.ErrEmptyCompletion)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		log.Warn("gemini response blocked by safety filters")
		return nil, fmt.Errorf("%w: content blocked by safety filters", generation.ErrProviderError)
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return nil, generation.ErrEmptyCompletion
	}

	log.Info("gemini completion received",
		slog.String("model", c.model),
		slog.String("model_version", resp.ModelVersion),
		slog.Int("content_length", text.Len()),
		slog.Duration("elapsed", time.Since(start)))

	return &generation.Completion{Content: text.String(), Model: c.model}, nil
}
