package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/lingodeck/internal/domain"
	"github.com/phrazzld/lingodeck/internal/platform/logger"
	"github.com/phrazzld/lingodeck/internal/store"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		// ALLOW-PANIC: constructor misuse
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetOrCreateByExternalID implements store.UserStore.GetOrCreateByExternalID
// The no-op update on conflict makes RETURNING yield the existing row, so two
// first requests for one subject both see the same user.
func (s *PostgresUserStore) GetOrCreateByExternalID(
	ctx context.Context,
	externalID string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, domain.ErrEmptyExternalID)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO users (id, external_id, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (external_id) DO UPDATE SET external_id = EXCLUDED.external_id
		RETURNING id, external_id, created_at, updated_at
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, uuid.New(), externalID, now).Scan(
		&user.ID,
		&user.ExternalID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to upsert user", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	log.Debug("resolved user", slog.String("user_id", user.ID.String()))
	return &user, nil
}

// GetByID implements store.UserStore.GetByID
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, external_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.ExternalID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	return &user, nil
}

// LockForUpdate implements store.UserStore.LockForUpdate
func (s *PostgresUserStore) LockForUpdate(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var locked uuid.UUID
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.ErrUserNotFound
		}
		log.Error("failed to lock user row",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return MapError(err)
	}

	return nil
}
