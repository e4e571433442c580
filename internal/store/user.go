package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/lingodeck/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// GetOrCreateByExternalID returns the user linked to the identity-provider
	// subject, creating the record on first sight. Safe under concurrent calls
	// for the same subject.
	GetOrCreateByExternalID(ctx context.Context, externalID string) (*domain.User, error)

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// LockForUpdate takes a row lock on the user until the surrounding
	// transaction ends, serializing per-user writes such as deck creation.
	// It must be called on a store returned by WithTx.
	// Returns ErrUserNotFound if the user does not exist.
	LockForUpdate(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new UserStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) UserStore
}
