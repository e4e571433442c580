package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingodeck/internal/domain"
	"github.com/phrazzld/lingodeck/internal/platform/logger"
	"github.com/phrazzld/lingodeck/internal/store"
)

const deckColumns = `
	d.id, d.user_id, d.name, d.source_language, d.target_language, d.deck_type,
	d.proficiency_level, d.formality_level, d.topic_context, d.card_count,
	d.prompt_used, d.model_used, d.created_at, d.updated_at`

// PostgresDeckStore implements the store.DeckStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDeckStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDeckStore creates a new PostgreSQL implementation of the DeckStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDeckStore(db store.DBTX, logger *slog.Logger) *PostgresDeckStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDeckStore{
		db:     db,
		logger: logger.With(slog.String("component", "deck_store")),
	}
}

// Ensure PostgresDeckStore implements store.DeckStore interface
var _ store.DeckStore = (*PostgresDeckStore)(nil)

// WithTx implements store.DeckStore.WithTx
func (s *PostgresDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return &PostgresDeckStore{
		db:     tx,
		logger: s.logger,
	}
}

// CountCreatedSince implements store.DeckStore.CountCreatedSince
func (s *PostgresDeckStore) CountCreatedSince(
	ctx context.Context,
	userID uuid.UUID,
	since time.Time,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*)
		FROM decks
		WHERE user_id = $1 AND created_at >= $2
	`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, since.UTC()).Scan(&count); err != nil {
		log.Error("failed to count recent decks",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, store.NewStoreError("deck", "count", "failed to count decks", MapError(err))
	}

	return count, nil
}

// CreateWithCards implements store.DeckStore.CreateWithCards
// The deck row is inserted first, then each card through one prepared statement.
func (s *PostgresDeckStore) CreateWithCards(ctx context.Context, deck *domain.Deck) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(deck.Cards) == 0 {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrDeckNoCards)
	}
	for _, card := range deck.Cards {
		if err := card.Validate(); err != nil {
			log.Warn("card validation failed during deck create",
				slog.String("error", err.Error()),
				slog.String("deck_id", deck.ID.String()),
				slog.Int("order_index", card.OrderIndex))
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	deckQuery := `
		INSERT INTO decks (
			id, user_id, name, source_language, target_language, deck_type,
			proficiency_level, formality_level, topic_context, card_count,
			prompt_used, model_used, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(ctx, deckQuery,
		deck.ID,
		deck.UserID,
		deck.Name,
		deck.SourceLanguage,
		deck.TargetLanguage,
		deck.DeckType,
		deck.Proficiency,
		deck.Formality,
		nullString(deck.TopicContext),
		deck.CardCount,
		deck.PromptUsed,
		deck.ModelUsed,
		deck.CreatedAt,
		deck.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()),
			slog.String("user_id", deck.UserID.String()))
		return MapError(err)
	}

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO cards (id, deck_id, front, back, explanation, example, order_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		log.Error("failed to prepare card insert", slog.String("error", err.Error()))
		return MapError(err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			log.Error("failed to close statement", slog.String("error", closeErr.Error()))
		}
	}()

	for _, card := range deck.Cards {
		_, err := stmt.ExecContext(ctx,
			card.ID,
			deck.ID,
			card.Front,
			card.Back,
			nullString(card.Explanation),
			nullString(card.Example),
			card.OrderIndex,
			card.CreatedAt,
		)
		if err != nil {
			log.Error("failed to insert card",
				slog.String("error", err.Error()),
				slog.String("deck_id", deck.ID.String()),
				slog.Int("order_index", card.OrderIndex))
			return MapError(err)
		}
	}

	log.Info("deck created successfully",
		slog.String("deck_id", deck.ID.String()),
		slog.String("user_id", deck.UserID.String()),
		slog.Int("card_count", len(deck.Cards)))
	return nil
}

// GetByID implements store.DeckStore.GetByID
func (s *PostgresDeckStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + deckColumns + ` FROM decks d WHERE d.id = $1`

	deck, err := scanDeck(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("deck not found", slog.String("deck_id", id.String()))
			return nil, store.ErrDeckNotFound
		}
		log.Error("failed to get deck by ID",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, MapError(err)
	}

	cards, err := s.getCards(ctx, id)
	if err != nil {
		log.Error("failed to load deck cards",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return nil, err
	}
	deck.Cards = cards

	return deck, nil
}

func (s *PostgresDeckStore) getCards(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, deck_id, front, back, explanation, example, order_index, created_at
		FROM cards
		WHERE deck_id = $1
		ORDER BY order_index ASC
	`

	rows, err := s.db.QueryContext(ctx, query, deckID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	cards := []*domain.Card{}
	for rows.Next() {
		var card domain.Card
		var explanation, example sql.NullString
		if err := rows.Scan(
			&card.ID,
			&card.DeckID,
			&card.Front,
			&card.Back,
			&explanation,
			&example,
			&card.OrderIndex,
			&card.CreatedAt,
		); err != nil {
			return nil, err
		}
		card.Explanation = stringPtr(explanation)
		card.Example = stringPtr(example)
		cards = append(cards, &card)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// ListByUser implements store.DeckStore.ListByUser
func (s *PostgresDeckStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DeckSummary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + deckColumns + `, COUNT(c.id)
		FROM decks d
		LEFT JOIN cards c ON c.deck_id = d.id
		WHERE d.user_id = $1
		GROUP BY d.id
		ORDER BY d.created_at DESC, d.id
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query decks by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	summaries := []*domain.DeckSummary{}
	for rows.Next() {
		var summary domain.DeckSummary
		var topic sql.NullString
		if err := rows.Scan(append(deckScanDest(&summary.Deck, &topic), &summary.CardTotal)...); err != nil {
			log.Error("failed to scan deck row", slog.String("error", err.Error()))
			return nil, err
		}
		summary.TopicContext = stringPtr(topic)
		summaries = append(summaries, &summary)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed decks",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(summaries)))
	return summaries, nil
}

// Delete implements store.DeckStore.Delete
func (s *PostgresDeckStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM decks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete deck",
			slog.String("error", err.Error()),
			slog.String("deck_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "deck"); err != nil {
		if store.IsNotFoundError(err) {
			return store.ErrDeckNotFound
		}
		return err
	}

	log.Info("deck deleted", slog.String("deck_id", id.String()))
	return nil
}

func scanDeck(row *sql.Row) (*domain.Deck, error) {
	var deck domain.Deck
	var topic sql.NullString
	if err := row.Scan(deckScanDest(&deck, &topic)...); err != nil {
		return nil, err
	}
	deck.TopicContext = stringPtr(topic)
	return &deck, nil
}

// deckScanDest returns scan targets matching deckColumns.
func deckScanDest(deck *domain.Deck, topic *sql.NullString) []any {
	return []any{
		&deck.ID,
		&deck.UserID,
		&deck.Name,
		&deck.SourceLanguage,
		&deck.TargetLanguage,
		&deck.DeckType,
		&deck.Proficiency,
		&deck.Formality,
		topic,
		&deck.CardCount,
		&deck.PromptUsed,
		&deck.ModelUsed,
		&deck.CreatedAt,
		&deck.UpdatedAt,
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
