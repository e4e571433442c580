package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	// ErrDeckUserIDEmpty is returned when a deck has no owner.
	ErrDeckUserIDEmpty = errors.New("deck user ID cannot be empty")

	// ErrDeckNoCards is returned when a deck would be created without cards.
	ErrDeckNoCards = errors.New("deck must contain at least one card")

	// ErrCardFrontEmpty is returned when a card has no prompt side.
	ErrCardFrontEmpty = errors.New("card front cannot be empty")

	// ErrCardBackEmpty is returned when a card has no answer side.
	ErrCardBackEmpty = errors.New("card back cannot be empty")
)

// Deck is a persisted, named collection of generated flashcards together with
// the settings and prompt that produced it.
type Deck struct {
	ID             uuid.UUID        `json:"id"`
	UserID         uuid.UUID        `json:"user_id"`
	Name           string           `json:"name"`
	SourceLanguage Language         `json:"source_language"`
	TargetLanguage Language         `json:"target_language"`
	DeckType       DeckType         `json:"deck_type"`
	Proficiency    ProficiencyLevel `json:"proficiency_level"`
	Formality      FormalityLevel   `json:"formality_level"`
	TopicContext   *string          `json:"topic_context"`
	CardCount      int              `json:"card_count"`
	PromptUsed     string           `json:"prompt_used"`
	ModelUsed      string           `json:"model_used"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	Cards          []*Card          `json:"cards,omitempty"`
}

// Card is a single flashcard in a deck. OrderIndex is its 0-based position,
// which preserves the order the cards were generated in.
type Card struct {
	ID          uuid.UUID `json:"id"`
	DeckID      uuid.UUID `json:"deck_id"`
	Front       string    `json:"front"`
	Back        string    `json:"back"`
	Explanation *string   `json:"explanation"`
	Example     *string   `json:"example"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

// DeckSummary is deck metadata plus the number of cards stored for it,
// used when listing decks without loading their cards.
type DeckSummary struct {
	Deck
	CardTotal int `json:"card_total"`
}

// CardContent is the validated content of a card before it belongs to a deck.
type CardContent struct {
	Front       string
	Back        string
	Explanation *string
	Example     *string
}

// DeckName derives the display name of a deck,
// e.g. "English → Spanish (sentence fragments)".
func DeckName(source, target Language, deckType DeckType) string {
	return fmt.Sprintf("%s → %s (%s)", source, target, deckType.HumanName())
}

// NewDeck builds a deck for the given owner from a normalized request and the
// generated card contents. Cards keep the order of contents.
func NewDeck(
	userID uuid.UUID,
	req GenerationRequest,
	prompt, model string,
	contents []CardContent,
	now time.Time,
) (*Deck, error) {
	if userID == uuid.Nil {
		return nil, ErrDeckUserIDEmpty
	}
	if len(contents) == 0 {
		return nil, ErrDeckNoCards
	}

	deck := &Deck{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           DeckName(req.SourceLanguage, req.TargetLanguage, req.DeckType),
		SourceLanguage: req.SourceLanguage,
		TargetLanguage: req.TargetLanguage,
		DeckType:       req.DeckType,
		Proficiency:    req.Proficiency,
		Formality:      req.Formality,
		TopicContext:   req.TopicContext,
		CardCount:      len(contents),
		PromptUsed:     prompt,
		ModelUsed:      model,
		CreatedAt:      now.UTC(),
		UpdatedAt:      now.UTC(),
		Cards:          make([]*Card, 0, len(contents)),
	}

	for i, c := range contents {
		card, err := NewCard(deck.ID, i, c, now)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		deck.Cards = append(deck.Cards, card)
	}

	return deck, nil
}

// NewCard creates a card at position orderIndex of the given deck.
func NewCard(deckID uuid.UUID, orderIndex int, content CardContent, now time.Time) (*Card, error) {
	card := &Card{
		ID:          uuid.New(),
		DeckID:      deckID,
		Front:       content.Front,
		Back:        content.Back,
		Explanation: content.Explanation,
		Example:     content.Example,
		OrderIndex:  orderIndex,
		CreatedAt:   now.UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}
	return card, nil
}

// Validate checks that the card has both sides.
func (c *Card) Validate() error {
	if c.Front == "" {
		return ErrCardFrontEmpty
	}
	if c.Back == "" {
		return ErrCardBackEmpty
	}
	return nil
}
