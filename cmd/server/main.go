// Package main implements the lingodeck command: the HTTP API server that
// generates language-learning flashcard decks with hosted language models,
// plus migration and development-token subcommands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/lingodeck/internal/config"
	"github.com/phrazzld/lingodeck/internal/platform/logger"
	"github.com/phrazzld/lingodeck/internal/service/auth"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the root command serves the API.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lingodeck",
		Short:         "AI flashcard deck generation service for language learners",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newMigrateCmd(), newTokenCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:       "migrate [up|down|status|version|reset|create NAME]",
		Short:     "Run database migrations",
		ValidArgs: []string{"up", "down", "status", "version", "reset", "create"},
		Args:      cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := args[0]

			if command == "create" {
				if len(args) != 2 {
					return fmt.Errorf("migrate create requires a migration name")
				}
				return createMigration(dir, args[1])
			}
			if len(args) != 1 {
				return fmt.Errorf("migrate %s takes no extra arguments", command)
			}

			cfg, log, err := loadConfigAndLogger()
			if err != nil {
				return err
			}

			db, err := setupAppDatabase(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := db.Close(); err != nil {
					log.Error("error closing database connection", slog.String("error", err.Error()))
				}
			}()

			return runMigrations(cmd.Context(), db, command, log)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", defaultMigrationsSourceDir, "directory new migrations are written to")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development bearer token for a subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfigAndLogger()
			if err != nil {
				return err
			}

			tokens, err := auth.NewTokenService(cfg.Auth)
			if err != nil {
				return fmt.Errorf("failed to initialize token service: %w", err)
			}

			token, err := tokens.GenerateToken(cmd.Context(), subject)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "identity-provider subject to embed in the token")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}

// loadConfigAndLogger loads configuration and installs the configured logger
// as the process default.
func loadConfigAndLogger() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("llm_model", cfg.LLM.ModelName))

	return cfg, log, nil
}

// runServe wires the application and serves HTTP until ctx is cancelled.
func runServe(ctx context.Context) error {
	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, db, "up", log); err != nil {
			_ = db.Close()
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	app, err := newApplication(ctx, cfg, log, db)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
