package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/lingodeck/internal/api/shared"
	"github.com/phrazzld/lingodeck/internal/domain"
	"github.com/phrazzld/lingodeck/internal/platform/logger"
	"github.com/phrazzld/lingodeck/internal/redact"
	"github.com/phrazzld/lingodeck/internal/service"
)

// DeleteDeckResponse acknowledges a deleted deck.
type DeleteDeckResponse struct {
	Success bool `json:"success"`
}

// DeckHandler handles deck-related HTTP requests
type DeckHandler struct {
	deckService service.DeckService
	logger      *slog.Logger
}

// NewDeckHandler creates a new DeckHandler
func NewDeckHandler(deckService service.DeckService, logger *slog.Logger) *DeckHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for DeckHandler")
	}

	return &DeckHandler{
		deckService: deckService,
		logger:      logger.With(slog.String("component", "deck_handler")),
	}
}

// GenerateDeck handles POST /api/decks requests.
// It generates a deck from the request body and returns it with its cards.
func (h *DeckHandler) GenerateDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	var req domain.GenerationRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		HandleAPIError(w, r, err, "")
		return
	}

	deck, err := h.deckService.Generate(r.Context(), userID, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate deck")
		return
	}

	log.Debug("deck generated",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("card_count", deck.CardCount))
	shared.RespondWithJSON(w, r, http.StatusCreated, deck)
}

// ListDecks handles GET /api/decks requests.
// It returns the caller's decks, newest first, without their cards.
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	decks, err := h.deckService.ListDecks(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list decks")
		return
	}
	if decks == nil {
		decks = []*domain.DeckSummary{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, decks)
}

// GetDeck handles GET /api/decks/{id} requests.
func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	deck, err := h.deckService.GetDeck(r.Context(), userID, deckID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, deck)
}

// DeleteDeck handles DELETE /api/decks/{id} requests.
func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, deckID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), userID, deckID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete deck")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DeleteDeckResponse{Success: true})
}
