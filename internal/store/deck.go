package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingodeck/internal/domain"
)

// DeckStore defines the interface for deck and card persistence.
type DeckStore interface {
	// CountCreatedSince returns how many decks the user created at or after since.
	CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)

	// CreateWithCards saves a deck and all of its cards.
	// IMPORTANT: This method MUST be run within a transaction so the deck and its
	// cards are written all-or-nothing. Use WithTx with store.RunInTransaction.
	//
	// Usage example:
	//   err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
	//       return deckStore.WithTx(tx).CreateWithCards(ctx, deck)
	//   })
	CreateWithCards(ctx context.Context, deck *domain.Deck) error

	// GetByID retrieves a deck with its cards ordered by order_index.
	// Returns ErrDeckNotFound if the deck does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)

	// ListByUser returns the user's decks, newest first, each with its card total.
	// Cards are not loaded.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DeckSummary, error)

	// Delete removes a deck by its ID.
	// Cards are removed by the ON DELETE CASCADE foreign key.
	// Returns ErrDeckNotFound if the deck does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new DeckStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) DeckStore
}
