package domain

import (
	"slices"
	"strings"
)

// Language is a language a deck can be generated from or into.
type Language string

// Supported languages.
const (
	LanguageEnglish    Language = "English"
	LanguageSpanish    Language = "Spanish"
	LanguageFrench     Language = "French"
	LanguageGerman     Language = "German"
	LanguageItalian    Language = "Italian"
	LanguagePortuguese Language = "Portuguese"
	LanguageChinese    Language = "Chinese"
	LanguageJapanese   Language = "Japanese"
	LanguageKorean     Language = "Korean"
)

// Languages lists every supported language in display order.
var Languages = []Language{
	LanguageEnglish,
	LanguageSpanish,
	LanguageFrench,
	LanguageGerman,
	LanguageItalian,
	LanguagePortuguese,
	LanguageChinese,
	LanguageJapanese,
	LanguageKorean,
}

// IsValid reports whether l is a supported language.
func (l Language) IsValid() bool {
	return slices.Contains(Languages, l)
}

// DeckType selects which kind of card content gets generated.
type DeckType string

// Supported deck types.
const (
	DeckTypeWords             DeckType = "WORDS"
	DeckTypePhrases           DeckType = "PHRASES"
	DeckTypeSentenceFragments DeckType = "SENTENCE_FRAGMENTS"
)

// DeckTypes lists every deck type in display order.
var DeckTypes = []DeckType{DeckTypeWords, DeckTypePhrases, DeckTypeSentenceFragments}

var deckTypeLabels = map[DeckType]struct{ label, description string }{
	DeckTypeWords:             {"Individual Words", "High-frequency vocabulary with translations"},
	DeckTypePhrases:           {"Phrases", "Common multi-word expressions (2-6 words)"},
	DeckTypeSentenceFragments: {"Sentence Fragments", "Reusable sentence building blocks (3-8 words)"},
}

// IsValid reports whether t is a known deck type.
func (t DeckType) IsValid() bool {
	_, ok := deckTypeLabels[t]
	return ok
}

// Label returns the short human-readable name shown in pickers.
func (t DeckType) Label() string {
	return deckTypeLabels[t].label
}

// Description returns the one-line explanation shown next to the label.
func (t DeckType) Description() string {
	return deckTypeLabels[t].description
}

// HumanName returns the deck type lowercased with underscores replaced by spaces,
// e.g. "sentence fragments". It is the form used in deck names.
func (t DeckType) HumanName() string {
	return strings.ToLower(strings.ReplaceAll(string(t), "_", " "))
}

// ProficiencyLevel is the learner's level, which steers vocabulary difficulty.
type ProficiencyLevel string

// Supported proficiency levels.
const (
	ProficiencyBeginner     ProficiencyLevel = "Beginner"
	ProficiencyIntermediate ProficiencyLevel = "Intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "Advanced"
)

// ProficiencyLevels lists every proficiency level in display order.
var ProficiencyLevels = []ProficiencyLevel{ProficiencyBeginner, ProficiencyIntermediate, ProficiencyAdvanced}

// IsValid reports whether p is a known proficiency level.
func (p ProficiencyLevel) IsValid() bool {
	return slices.Contains(ProficiencyLevels, p)
}

// FormalityLevel is the register the generated phrases should use.
type FormalityLevel string

// Supported formality levels.
const (
	FormalityCasual  FormalityLevel = "Casual"
	FormalityNeutral FormalityLevel = "Neutral"
	FormalityFormal  FormalityLevel = "Formal"
)

// FormalityLevels lists every formality level in display order.
var FormalityLevels = []FormalityLevel{FormalityCasual, FormalityNeutral, FormalityFormal}

// IsValid reports whether f is a known formality level.
func (f FormalityLevel) IsValid() bool {
	return slices.Contains(FormalityLevels, f)
}

// CardCounts lists the deck sizes a user may request.
var CardCounts = []int{10, 25, 50}

// IsValidCardCount reports whether n is an allowed deck size.
func IsValidCardCount(n int) bool {
	return slices.Contains(CardCounts, n)
}

// Defaults applied when a request omits the optional settings.
const (
	DefaultProficiency = ProficiencyIntermediate
	DefaultFormality   = FormalityNeutral
	DefaultCardCount   = 25

	// MaxTopicContextLength is the maximum length of the optional topic hint, in characters.
	MaxTopicContextLength = 200
)
