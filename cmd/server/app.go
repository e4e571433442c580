package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lingodeck/internal/config"
	"github.com/phrazzld/lingodeck/internal/generation"
	"github.com/phrazzld/lingodeck/internal/platform/gemini"
	"github.com/phrazzld/lingodeck/internal/platform/groq"
	"github.com/phrazzld/lingodeck/internal/platform/postgres"
	"github.com/phrazzld/lingodeck/internal/service"
	"github.com/phrazzld/lingodeck/internal/service/auth"
	"github.com/phrazzld/lingodeck/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	deckStore store.DeckStore

	tokenService auth.TokenService
	completer    generation.Completer
	userService  service.UserService
	deckService  service.DeckService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("token validation initialized",
		slog.Bool("issuer_check", cfg.Auth.Issuer != ""))

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.deckStore = postgres.NewPostgresDeckStore(db, logger)

	app.completer, err = newCompleter(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize completer: %w", err)
	}
	logger.Info("completer initialized",
		slog.String("provider", cfg.LLM.Provider),
		slog.String("model", cfg.LLM.ModelName),
		slog.Int("max_retries", cfg.LLM.MaxRetries))

	app.userService = service.NewUserService(app.userStore, logger)

	app.deckService, err = service.NewDeckService(
		service.NewDeckRepositoryAdapter(app.deckStore, db),
		app.userStore,
		app.completer,
		service.RateLimit{
			Max:    cfg.Generation.RateLimitMax,
			Window: time.Duration(cfg.Generation.RateLimitWindowMinutes) * time.Minute,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create deck service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// newCompleter selects the provider adapter. Transient failures are retried
// only when llm.max_retries is set; by default a generation makes one call.
func newCompleter(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Completer, error) {
	var (
		base generation.Completer
		err  error
	)

	switch cfg.Provider {
	case "groq":
		base, err = groq.NewCompleter(cfg, nil, logger)
	case "gemini":
		base, err = gemini.NewCompleter(ctx, logger, cfg)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	if cfg.MaxRetries <= 0 {
		return base, nil
	}

	return generation.WithRetry(base, generation.RetryPolicy{
		MaxRetries: cfg.MaxRetries,
		BaseDelay:  time.Duration(cfg.RetryDelaySeconds) * time.Second,
	}, logger), nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns when ctx is cancelled and the server has shut down.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
