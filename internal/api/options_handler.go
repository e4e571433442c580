package api

import (
	"net/http"

	"github.com/phrazzld/lingodeck/internal/api/shared"
	"github.com/phrazzld/lingodeck/internal/domain"
)

// DeckTypeOption describes a deck type for the generate form.
type DeckTypeOption struct {
	Value       domain.DeckType `json:"value"`
	Label       string          `json:"label"`
	Description string          `json:"description"`
}

// OptionDefaults holds the values applied when a request omits a setting.
type OptionDefaults struct {
	Proficiency domain.ProficiencyLevel `json:"proficiency_level"`
	Formality   domain.FormalityLevel   `json:"formality_level"`
	CardCount   int                     `json:"card_count"`
}

// OptionsResponse lists every choice the generate form offers.
type OptionsResponse struct {
	Languages             []domain.Language         `json:"languages"`
	DeckTypes             []DeckTypeOption          `json:"deck_types"`
	ProficiencyLevels     []domain.ProficiencyLevel `json:"proficiency_levels"`
	FormalityLevels       []domain.FormalityLevel   `json:"formality_levels"`
	CardCounts            []int                     `json:"card_counts"`
	MaxTopicContextLength int                       `json:"max_topic_context_length"`
	Defaults              OptionDefaults            `json:"defaults"`
}

// NewOptionsResponse builds the options payload from the domain enumerations.
func NewOptionsResponse() OptionsResponse {
	deckTypes := make([]DeckTypeOption, 0, len(domain.DeckTypes))
	for _, t := range domain.DeckTypes {
		deckTypes = append(deckTypes, DeckTypeOption{
			Value:       t,
			Label:       t.Label(),
			Description: t.Description(),
		})
	}

	return OptionsResponse{
		Languages:             domain.Languages,
		DeckTypes:             deckTypes,
		ProficiencyLevels:     domain.ProficiencyLevels,
		FormalityLevels:       domain.FormalityLevels,
		CardCounts:            domain.CardCounts,
		MaxTopicContextLength: domain.MaxTopicContextLength,
		Defaults: OptionDefaults{
			Proficiency: domain.DefaultProficiency,
			Formality:   domain.DefaultFormality,
			CardCount:   domain.DefaultCardCount,
		},
	}
}

// GetOptions handles GET /api/options requests. It needs no authentication.
func GetOptions(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, NewOptionsResponse())
}
