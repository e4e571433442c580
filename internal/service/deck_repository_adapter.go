package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingodeck/internal/domain"
	"github.com/phrazzld/lingodeck/internal/store"
)

// DeckRepository is the persistence surface the deck service needs.
// It mirrors store.DeckStore and adds access to the database handle used to
// open transactions.
type DeckRepository interface {
	CountCreatedSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
	CreateWithCards(ctx context.Context, deck *domain.Deck) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Deck, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.DeckSummary, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a repository bound to the given transaction.
	WithTx(tx *sql.Tx) DeckRepository

	// DB returns the underlying database connection.
	DB() *sql.DB
}

// NewDeckRepositoryAdapter allows a store.DeckStore to be used where a
// DeckRepository is expected.
func NewDeckRepositoryAdapter(deckStore store.DeckStore, db *sql.DB) DeckRepository {
	return &deckRepositoryAdapter{
		DeckStore: deckStore,
		db:        db,
	}
}

type deckRepositoryAdapter struct {
	store.DeckStore
	db *sql.DB
}

// WithTx implements DeckRepository.WithTx
func (a *deckRepositoryAdapter) WithTx(tx *sql.Tx) DeckRepository {
	return &deckRepositoryAdapter{
		DeckStore: a.DeckStore.WithTx(tx),
		db:        a.db,
	}
}

// DB implements DeckRepository.DB
func (a *deckRepositoryAdapter) DB() *sql.DB {
	return a.db
}
