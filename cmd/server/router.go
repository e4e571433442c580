package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/lingodeck/internal/api"
	apiMiddleware "github.com/phrazzld/lingodeck/internal/api/middleware"
	"github.com/phrazzld/lingodeck/internal/api/shared"
	"github.com/rs/cors"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", shared.TraceIDHeader},
		ExposedHeaders:   []string{shared.TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	deckHandler := api.NewDeckHandler(app.deckService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService, app.userService)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Get("/options", api.GetOptions)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/decks", deckHandler.GenerateDeck)
			r.Get("/decks", deckHandler.ListDecks)
			r.Get("/decks/{id}", deckHandler.GetDeck)
			r.Delete("/decks/{id}", deckHandler.DeleteDeck)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
