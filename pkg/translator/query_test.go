package translator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkclainer/bilex/pkg/index"
	"github.com/darkclainer/bilex/pkg/lexicon"
	"github.com/darkclainer/bilex/pkg/mocks"
)

func TestLookup(t *testing.T) {
	tr := newTestTranslator(t, nil, nil)
	testCases := map[string]struct {
		word      string
		direction index.Direction
		expected  Word
	}{
		"found": {
			word: "good",
			expected: Word{Senses: []lexicon.Entry{
				{SourceWord: "good", TargetWord: "gaarii", PartOfSpeech: lexicon.Adjective},
			}},
		},
		"not found with suggestions": {
			word:     "goat",
			expected: Word{NotFound: true, Suggestions: []string{"good"}},
		},
		"not found without suggestions": {
			word:     "xyz",
			expected: Word{NotFound: true, Suggestions: []string{}},
		},
		"backward": {
			word:      "galata",
			direction: index.TargetToSource,
			expected: Word{Senses: []lexicon.Entry{
				{SourceWord: "thank", TargetWord: "galata", PartOfSpeech: lexicon.Verb},
				{SourceWord: "thanks", TargetWord: "galata", PartOfSpeech: lexicon.Verb},
			}},
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tr.Lookup(tc.word, tc.direction))
		})
	}
}

func TestLookupSuggestionsLimit(t *testing.T) {
	tr := newTestTranslator(t, nil, &Config{MissThreshold: 0.01, MissSuggestions: 3})
	word := tr.Lookup("qqqqqqqqa", index.SourceToTarget)
	assert.True(t, word.NotFound)
	assert.Len(t, word.Suggestions, 3)
}

func TestSuggest(t *testing.T) {
	tr := newTestTranslator(t, nil, nil)
	testCases := map[string]struct {
		prefix    string
		direction index.Direction
		limit     int
		expected  []string
	}{
		"too short":       {prefix: "h", expected: []string{}},
		"too short after": {prefix: " h! ", expected: []string{}},
		"prefix":          {prefix: "ho", expected: []string{"home", "house"}},
		"upper case":      {prefix: "TH", expected: []string{"thank", "thanks"}},
		"limited":         {prefix: "th", limit: 1, expected: []string{"thank"}},
		"similar":         {prefix: "hause", expected: []string{"house"}},
		"backward":        {prefix: "ir", direction: index.TargetToSource, expected: []string{"irree-ni"}},
		"nothing":         {prefix: "zzzz", expected: []string{}},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tr.Suggest(tc.prefix, tc.direction, tc.limit))
		})
	}
}

func TestSuggestPrefixProperty(t *testing.T) {
	entries, err := lexicon.Default()
	require.NoError(t, err)
	idx, err := index.Build(entries)
	require.NoError(t, err)
	tr := New(idx, nil, nil, &Config{})
	defer tr.Close(context.TODO())

	for _, prefix := range []string{"ap", "wa", "ar", "th", "go"} {
		for _, word := range tr.Suggest(prefix, index.SourceToTarget, 0) {
			if len(tr.matcher.Prefix(prefix, index.SourceToTarget, 0)) != 0 {
				assert.True(t, strings.HasPrefix(word, prefix), "%q does not start with %q", word, prefix)
			}
		}
	}
}

func TestStatistics(t *testing.T) {
	tr := newTestTranslator(t, nil, nil)
	assert.Equal(t, Statistics{SourceWords: 8, TargetWords: 7, TotalEntries: 15}, tr.Statistics())
}

func TestSample(t *testing.T) {
	tr := newTestTranslator(t, nil, nil)
	sample := tr.Sample(2)
	assert.Len(t, sample, 2)
	assert.Contains(t, sample, "hello")
	assert.Contains(t, sample, "water")
}

func TestHealth(t *testing.T) {
	t.Run("dictionary only", func(t *testing.T) {
		tr := newTestTranslator(t, nil, nil)
		assert.Equal(t, Health{
			Ready:           true,
			DictionaryWords: 8,
			Modes:           []Mode{ModeDictionary},
		}, tr.Health(context.TODO()))
	})
	t.Run("with neural", func(t *testing.T) {
		tr := newTestTranslator(t, &mocks.Translator{}, nil)
		assert.Equal(t, Health{
			Ready:           true,
			DictionaryWords: 8,
			NeuralAvailable: true,
			Modes:           []Mode{ModeDictionary, ModeNeural},
		}, tr.Health(context.TODO()))
	})
}

func TestDirection(t *testing.T) {
	tr := newTestTranslator(t, nil, &Config{SourceLanguage: "English", TargetLanguage: "Borana"})
	testCases := map[string]struct {
		language string
		expected index.Direction
		isErr    bool
	}{
		"default":    {language: "", expected: index.SourceToTarget},
		"source":     {language: "english", expected: index.SourceToTarget},
		"case":       {language: " ENGLISH ", expected: index.SourceToTarget},
		"target":     {language: "borana", expected: index.TargetToSource},
		"unknown":    {language: "french", isErr: true},
		"other form": {language: "oromo", isErr: true},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			direction, err := tr.Direction(tc.language)
			if tc.isErr {
				assert.ErrorIs(t, err, ErrUnknownDirection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, direction)
		})
	}
}
