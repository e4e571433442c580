package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingodeck/internal/domain"
	"github.com/phrazzld/lingodeck/internal/generation"
	"github.com/phrazzld/lingodeck/internal/platform/logger"
	"github.com/phrazzld/lingodeck/internal/redact"
	"github.com/phrazzld/lingodeck/internal/store"
)

// maxLoggedCompletion bounds how much of an unparseable completion is logged.
const maxLoggedCompletion = 500

// RateLimit is the per-user generation ceiling over a sliding window.
type RateLimit struct {
	Max    int
	Window time.Duration
}

// DeckService provides deck generation and deck management operations.
type DeckService interface {
	// Generate builds a prompt from req, asks the completer for flashcards,
	// parses them and stores them as a new deck owned by userID.
	Generate(ctx context.Context, userID uuid.UUID, req domain.GenerationRequest) (*domain.Deck, error)

	// ListDecks returns the user's decks, newest first, with card totals.
	ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.DeckSummary, error)

	// GetDeck returns a deck with its ordered cards if userID owns it.
	GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error)

	// DeleteDeck removes a deck and its cards if userID owns it.
	DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error
}

type deckServiceImpl struct {
	deckRepo  DeckRepository
	userStore store.UserStore
	completer generation.Completer
	limit     RateLimit
	logger    *slog.Logger
	timeFunc  func() time.Time
}

// NewDeckService creates a new DeckService.
// It returns an error if any of the required dependencies are nil or the
// rate limit is not positive.
func NewDeckService(
	deckRepo DeckRepository,
	userStore store.UserStore,
	completer generation.Completer,
	limit RateLimit,
	logger *slog.Logger,
) (DeckService, error) {
	switch {
	case deckRepo == nil:
		return nil, &DeckServiceError{Operation: "create_service", Message: "deckRepo cannot be nil"}
	case userStore == nil:
		return nil, &DeckServiceError{Operation: "create_service", Message: "userStore cannot be nil"}
	case completer == nil:
		return nil, &DeckServiceError{Operation: "create_service", Message: "completer cannot be nil"}
	case limit.Max <= 0 || limit.Window <= 0:
		return nil, &DeckServiceError{Operation: "create_service", Message: "rate limit must be positive"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &deckServiceImpl{
		deckRepo:  deckRepo,
		userStore: userStore,
		completer: completer,
		limit:     limit,
		logger:    logger.With(slog.String("component", "deck_service")),
		timeFunc:  time.Now,
	}, nil
}

// Generate implements DeckService.Generate
func (s *deckServiceImpl) Generate(
	ctx context.Context,
	userID uuid.UUID,
	req domain.GenerationRequest,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(slog.String("user_id", userID.String()))

	req = req.Normalized()
	if err := req.Validate(); err != nil {
		log.Debug("generation request rejected", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.checkRateLimit(ctx, s.deckRepo, userID); err != nil {
		if errors.Is(err, ErrRateLimited) {
			log.Info("generation rate limit reached")
		}
		return nil, err
	}

	prompt, err := generation.BuildPrompt(req)
	if err != nil {
		log.Error("failed to build prompt", slog.String("error", err.Error()))
		return nil, NewDeckServiceError("generate", "failed to build prompt", err)
	}

	start := s.timeFunc()
	completion, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		log.Error("flashcard generation failed",
			slog.String("error", redact.Error(err)),
			slog.String("deck_type", string(req.DeckType)))
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	log.Info("completion received",
		slog.String("model", completion.Model),
		slog.Duration("elapsed", s.timeFunc().Sub(start)))

	drafts, err := generation.ParseFlashcards(completion.Content)
	if err != nil {
		log.Error("failed to parse completion",
			slog.String("error", err.Error()),
			slog.String("completion_head", truncate(completion.Content, maxLoggedCompletion)))
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	if len(drafts) == 0 {
		log.Warn("completion contained no flashcards")
		return nil, ErrEmptyGeneration
	}

	contents := make([]domain.CardContent, len(drafts))
	for i, d := range drafts {
		contents[i] = d.Content()
	}

	deck, err := domain.NewDeck(userID, req, prompt, completion.Model, contents, s.timeFunc())
	if err != nil {
		log.Error("failed to build deck", slog.String("error", err.Error()))
		return nil, NewDeckServiceError("generate", "failed to build deck", err)
	}

	err = store.RunInTransaction(ctx, s.deckRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		// The row lock serializes concurrent generations for one user, so the
		// recount below sees every deck committed before this one.
		if err := s.userStore.WithTx(tx).LockForUpdate(ctx, userID); err != nil {
			return NewDeckServiceError("generate", "failed to lock user", err)
		}

		txRepo := s.deckRepo.WithTx(tx)
		if err := s.checkRateLimit(ctx, txRepo, userID); err != nil {
			return err
		}

		if err := txRepo.CreateWithCards(ctx, deck); err != nil {
			return NewDeckServiceError("generate", "failed to save deck", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRateLimited) {
			log.Info("generation rate limit reached while saving", slog.String("deck_id", deck.ID.String()))
		} else {
			log.Error("failed to persist deck",
				slog.String("error", err.Error()),
				slog.String("deck_id", deck.ID.String()))
		}
		return nil, err
	}

	log.Info("deck generated",
		slog.String("deck_id", deck.ID.String()),
		slog.String("deck_type", string(deck.DeckType)),
		slog.Int("card_count", deck.CardCount))

	return deck, nil
}

// checkRateLimit returns a *RateLimitError when the user already created
// limit.Max decks within the window ending now.
func (s *deckServiceImpl) checkRateLimit(ctx context.Context, repo DeckRepository, userID uuid.UUID) error {
	since := s.timeFunc().Add(-s.limit.Window)

	count, err := repo.CountCreatedSince(ctx, userID, since)
	if err != nil {
		return NewDeckServiceError("generate", "failed to check rate limit", err)
	}
	if count >= s.limit.Max {
		return &RateLimitError{Max: s.limit.Max, Window: s.limit.Window}
	}
	return nil
}

// ListDecks implements DeckService.ListDecks
func (s *deckServiceImpl) ListDecks(ctx context.Context, userID uuid.UUID) ([]*domain.DeckSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	decks, err := s.deckRepo.ListByUser(ctx, userID)
	if err != nil {
		log.Error("failed to list decks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, NewDeckServiceError("list_decks", "failed to list decks", err)
	}

	return decks, nil
}

// GetDeck implements DeckService.GetDeck
func (s *deckServiceImpl) GetDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.Deck, error) {
	deck, err := s.getOwnedDeck(ctx, s.deckRepo, "get_deck", userID, deckID)
	if err != nil {
		return nil, err
	}
	return deck, nil
}

// DeleteDeck implements DeckService.DeleteDeck
// Ownership check and delete run in one transaction so a concurrent delete
// surfaces as not found rather than an error.
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, userID, deckID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.deckRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.deckRepo.WithTx(tx)

		if _, err := s.getOwnedDeck(ctx, txRepo, "delete_deck", userID, deckID); err != nil {
			return err
		}

		if err := txRepo.Delete(ctx, deckID); err != nil {
			if errors.Is(err, store.ErrDeckNotFound) {
				return ErrDeckNotFound
			}
			return NewDeckServiceError("delete_deck", "failed to delete deck", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("deck deleted",
		slog.String("deck_id", deckID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

func (s *deckServiceImpl) getOwnedDeck(
	ctx context.Context,
	repo DeckRepository,
	operation string,
	userID, deckID uuid.UUID,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := repo.GetByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			log.Debug("deck not found", slog.String("deck_id", deckID.String()))
			return nil, ErrDeckNotFound
		}
		log.Error("failed to retrieve deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deckID.String()))
		return nil, NewDeckServiceError(operation, "failed to retrieve deck", err)
	}

	if deck.UserID != userID {
		log.Warn("deck access denied",
			slog.String("deck_id", deckID.String()),
			slog.String("user_id", userID.String()))
		return nil, ErrNotOwned
	}

	return deck, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
