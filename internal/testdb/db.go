package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/lingodeck/internal/platform/postgres"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

var migrateOnce sync.Once

// GetTestDatabaseURL returns DATABASE_URL, falling back to LINGODECK_TEST_DB_URL.
func GetTestDatabaseURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}
	return os.Getenv("LINGODECK_TEST_DB_URL")
}

// GetTestDBWithT opens a connection to the test database, applies the
// migrations once per test binary, and closes the connection on cleanup.
// The test is skipped when no database is configured.
func GetTestDBWithT(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("DATABASE_URL or LINGODECK_TEST_DB_URL not set - skipping integration test")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "Failed to open database connection")

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Database ping failed")

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	var migrateErr error
	migrateOnce.Do(func() {
		migrateErr = ApplyMigrations(db)
	})
	require.NoError(t, migrateErr, "Failed to run migrations")

	return db
}

// ApplyMigrations brings the schema up to date from the embedded migrations.
func ApplyMigrations(db *sql.DB) error {
	goose.SetBaseFS(postgres.MigrationsFS)
	goose.SetTableName("schema_migrations")
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, postgres.MigrationsDir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction that is always rolled back afterwards.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if the test committed or rolled back itself
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// MustInsertUser creates a user row for the given external subject and
// returns its ID. A random suffix keeps subjects unique across parallel tests.
func MustInsertUser(ctx context.Context, t *testing.T, db DBTX, subject string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	externalID := strings.TrimSpace(subject) + "_" + id.String()[:8]
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, external_id, created_at, updated_at) VALUES ($1, $2, NOW(), NOW())`,
		id, externalID)
	require.NoError(t, err, "Failed to insert test user")

	return id
}

// DBTX is the subset of *sql.DB and *sql.Tx the helpers need.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
