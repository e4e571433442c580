package generation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/phrazzld/lingodeck/internal/domain"
)

var (
	// fencedBlockRegex matches the first markdown code fence, optionally tagged json.
	fencedBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

	// arraySpanRegex spans from the first '[' to the last ']'.
	arraySpanRegex = regexp.MustCompile(`(?s)\[.*\]`)

	htmlEscaper = strings.NewReplacer(
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)
)

// Draft is a parsed, validated and sanitized flashcard that has not been
// stored yet. Explanation and Example are nil when the model gave no value.
type Draft struct {
	Front       string  `json:"front"`
	Back        string  `json:"back"`
	Explanation *string `json:"explanation"`
	Example     *string `json:"example"`
}

// Content converts the draft into card content for a new deck.
func (d Draft) Content() domain.CardContent {
	return domain.CardContent{
		Front:       d.Front,
		Back:        d.Back,
		Explanation: d.Explanation,
		Example:     d.Example,
	}
}

// ParseFlashcards extracts the flashcard array from a model completion.
//
// The completion may wrap the array in a markdown code fence or surround it
// with prose. An empty array parses successfully into zero drafts.
// It returns an error wrapping ErrMalformedJSON when no JSON can be decoded,
// and one wrapping ErrSchemaViolation when any element lacks a non-blank
// front or back, or carries a non-string field.
func ParseFlashcards(raw string) ([]Draft, error) {
	candidate := extractCandidate(raw)

	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}

	if issues := flashcardSchema.validateArray(parsed); len(issues) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrSchemaViolation, joinIssues(issues))
	}

	items := parsed.([]any)
	drafts := make([]Draft, 0, len(items))
	for _, item := range items {
		obj := item.(map[string]any)
		drafts = append(drafts, Draft{
			Front:       sanitizeText(obj["front"].(string)),
			Back:        sanitizeText(obj["back"].(string)),
			Explanation: optionalText(obj["explanation"]),
			Example:     optionalText(obj["example"]),
		})
	}

	return drafts, nil
}

// extractCandidate narrows raw model output down to the text most likely
// to be the JSON array.
func extractCandidate(raw string) string {
	candidate := strings.TrimSpace(raw)

	if m := fencedBlockRegex.FindStringSubmatch(candidate); m != nil && m[1] != "" {
		candidate = strings.TrimSpace(m[1])
	}

	if span := arraySpanRegex.FindString(candidate); span != "" {
		candidate = span
	}

	return candidate
}

// sanitizeText escapes HTML-special characters and trims whitespace.
// Ampersands are left alone, so escaping already-escaped text is a no-op.
func sanitizeText(s string) string {
	return strings.TrimSpace(htmlEscaper.Replace(s))
}

// optionalText sanitizes an optional field, mapping absent, null and blank
// values to nil.
func optionalText(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = sanitizeText(s)
	if s == "" {
		return nil
	}
	return &s
}
