package generation

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/lingodeck/internal/domain"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(
	template.New("prompts").
		Funcs(template.FuncMap{"lower": func(v any) string { return strings.ToLower(fmt.Sprint(v)) }}).
		ParseFS(promptFS, "prompts/*.tmpl"),
)

// templateNames maps each deck type to its prompt template.
var templateNames = map[domain.DeckType]string{
	domain.DeckTypeWords:             "words.tmpl",
	domain.DeckTypePhrases:           "phrases.tmpl",
	domain.DeckTypeSentenceFragments: "sentence_fragments.tmpl",
}

// promptData holds the values interpolated into a prompt template.
type promptData struct {
	Source      domain.Language
	Target      domain.Language
	Proficiency domain.ProficiencyLevel
	Formality   domain.FormalityLevel
	CardCount   int
	Topic       string
}

// BuildPrompt renders the instruction prompt for a generation request.
// The output is deterministic for a given request. Topic lines are included
// only when the request carries a non-blank topic.
func BuildPrompt(req domain.GenerationRequest) (string, error) {
	name, ok := templateNames[req.DeckType]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDeckType, req.DeckType)
	}

	data := promptData{
		Source:      req.SourceLanguage,
		Target:      req.TargetLanguage,
		Proficiency: req.Proficiency,
		Formality:   req.Formality,
		CardCount:   req.CardCount,
		Topic:       strings.TrimSpace(req.Topic()),
	}

	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute %s prompt template: %w", req.DeckType, err)
	}

	return strings.TrimSpace(buf.String()), nil
}
