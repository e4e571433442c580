package generation

import (
	"strings"
	"testing"

	"github.com/phrazzld/lingodeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(deckType domain.DeckType) domain.GenerationRequest {
	return domain.GenerationRequest{
		SourceLanguage: domain.LanguageEnglish,
		TargetLanguage: domain.LanguageJapanese,
		DeckType:       deckType,
		Proficiency:    domain.ProficiencyBeginner,
		Formality:      domain.FormalityFormal,
		CardCount:      10,
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		deckType domain.DeckType
		contains []string
	}{
		{
			name:     "words",
			deckType: domain.DeckTypeWords,
			contains: []string{
				"Generate a set of 10 flashcards for learning individual English words.",
				"Provide clear, concise Japanese translations",
				`"back": "target language translation",`,
			},
		},
		{
			name:     "phrases",
			deckType: domain.DeckTypePhrases,
			contains: []string{
				"Generate a set of 10 flashcards for learning common English phrases.",
				"Phrases should be 2-6 words in length",
				"Prioritize formal register phrases",
			},
		},
		{
			name:     "sentence_fragments",
			deckType: domain.DeckTypeSentenceFragments,
			contains: []string{
				"featuring SENTENCE FRAGMENTS in English.",
				"Fragments should be 3-8 words long",
				`- "It depends on..." (conditional response)`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			prompt, err := BuildPrompt(newRequest(tt.deckType))
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(prompt,
				"You are an expert language teacher specializing in English to Japanese instruction"))
			assert.Contains(t, prompt, "Target Audience: Beginner level learner\nFormality: Formal")
			for _, want := range tt.contains {
				assert.Contains(t, prompt, want)
			}

			for _, key := range []string{`"front":`, `"back":`, `"explanation":`, `"example":`} {
				assert.Contains(t, prompt, key)
			}
			assert.Contains(t, prompt, "Return your response as a JSON array with this exact structure:\n[\n  {\n")
			assert.True(t, strings.HasSuffix(prompt,
				"Ensure the JSON is valid and properly formatted. Return ONLY the JSON array, no other text."))
			assert.NotContains(t, prompt, "Topic Focus")
			assert.NotContains(t, prompt, "<no value>")
		})
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	t.Parallel()

	req := newRequest(domain.DeckTypePhrases)
	topic := "ordering food"
	req.TopicContext = &topic

	first, err := BuildPrompt(req)
	require.NoError(t, err)
	second, err := BuildPrompt(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuildPromptTopic(t *testing.T) {
	t.Parallel()

	t.Run("present", func(t *testing.T) {
		req := newRequest(domain.DeckTypeWords)
		topic := "kitchen & <cooking>"
		req.TopicContext = &topic

		prompt, err := BuildPrompt(req)
		require.NoError(t, err)
		assert.Contains(t, prompt, "Target Audience: Beginner level learner\nTopic Focus: kitchen & <cooking>\nFormality: Formal")
		assert.Contains(t, prompt, "- Focus on vocabulary related to: kitchen & <cooking>\n\nReturn your response")
	})

	t.Run("blank_is_ignored", func(t *testing.T) {
		req := newRequest(domain.DeckTypeSentenceFragments)
		blank := "   "
		req.TopicContext = &blank

		prompt, err := BuildPrompt(req)
		require.NoError(t, err)
		assert.NotContains(t, prompt, "Topic Focus")
		assert.NotContains(t, prompt, "related to:")
	})
}

func TestBuildPromptUnknownDeckType(t *testing.T) {
	t.Parallel()

	_, err := BuildPrompt(newRequest("IDIOMS"))
	assert.ErrorIs(t, err, ErrUnknownDeckType)
}
