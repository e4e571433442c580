package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/phrazzld/lingodeck/internal/platform/postgres"
	"github.com/pressly/goose/v3"
)

const (
	// migrationsTable is the goose version table.
	migrationsTable = "schema_migrations"

	// defaultMigrationsSourceDir is where `migrate create` writes new files,
	// relative to the repository root. They are embedded at build time.
	defaultMigrationsSourceDir = "internal/platform/postgres/migrations"
)

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger by forwarding messages at INFO level.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf implements goose.Logger by forwarding messages at ERROR level.
// It does not exit; goose also returns the error to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

var supportedMigrationCommands = map[string]bool{
	"up":      true,
	"down":    true,
	"status":  true,
	"version": true,
	"reset":   true,
}

// configureGoose points goose at the embedded migrations.
func configureGoose(log *slog.Logger) error {
	goose.SetBaseFS(postgres.MigrationsFS)
	goose.SetTableName(migrationsTable)
	goose.SetLogger(&slogGooseLogger{logger: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// runMigrations executes a goose command against the embedded migrations.
func runMigrations(ctx context.Context, db *sql.DB, command string, log *slog.Logger) error {
	if !supportedMigrationCommands[command] {
		return fmt.Errorf("unsupported migration command %q", command)
	}

	log = log.With(slog.String("component", "migrations"), slog.String("command", command))
	if err := configureGoose(log); err != nil {
		return err
	}

	start := time.Now()
	log.Info("starting migration operation")

	if err := goose.RunContext(ctx, command, db, postgres.MigrationsDir); err != nil {
		log.Error("migration operation failed",
			slog.String("error", err.Error()),
			slog.Duration("elapsed", time.Since(start)))
		return fmt.Errorf("migration %s failed: %w", command, err)
	}

	log.Info("migration operation completed", slog.Duration("elapsed", time.Since(start)))
	return nil
}

// createMigration writes a new timestamped SQL migration into dir.
func createMigration(dir, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("migration name cannot be empty")
	}

	// Create writes to disk, so the embedded FS must not be used here.
	goose.SetBaseFS(nil)
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration %q: %w", name, err)
	}
	return nil
}

// maskDatabaseURL masks the password in a database URL for safe logging.
func maskDatabaseURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); hasPassword {
			parsedURL.User = url.UserPassword(parsedURL.User.Username(), "xxxxx")
		}
	}

	return parsedURL.String()
}
