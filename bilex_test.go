package bilex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkclainer/bilex/pkg/index"
	"github.com/darkclainer/bilex/pkg/lexicon"
	"github.com/darkclainer/bilex/pkg/neural"
	"github.com/darkclainer/bilex/pkg/translator"
)

func TestOpen(t *testing.T) {
	testCases := map[string]struct {
		config   Config
		word     string
		expected string
		err      error
	}{
		"embedded lexicon": {
			word:     "water",
			expected: "bishaan",
		},
		"lexicon file": {
			config:   Config{Lexicon: LexiconConfig{Path: "pkg/lexicon/testdata/small.txt"}},
			word:     "home",
			expected: "mana",
		},
		"html lexicon": {
			config:   Config{Lexicon: LexiconConfig{Path: "pkg/lexicon/testdata/sample.html"}},
			word:     "sun",
			expected: "aduu",
		},
		"empty lexicon": {
			config: Config{Lexicon: LexiconConfig{Path: "pkg/lexicon/testdata/empty.txt"}},
			err:    lexicon.ErrEmptyLexicon,
		},
		"unknown format": {
			config: Config{Lexicon: LexiconConfig{Path: "pkg/lexicon/testdata/small.txt", Format: "csv"}},
			err:    lexicon.ErrUnknownFormat,
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			tr, err := Open(context.TODO(), &tc.config, nil)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			defer tr.Close(context.TODO())
			senses := tr.TranslateWord(tc.word, index.SourceToTarget)
			require.NotEmpty(t, senses)
			assert.Equal(t, tc.expected, senses[0].TargetWord)
			assert.Equal(t, []translator.Mode{translator.ModeDictionary}, tr.Modes())
		})
	}
}

func TestOpenNeural(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/languages":
			_, _ = w.Write([]byte(`[{"code": "om", "name": "Oromo"}]`))
		case "/translate":
			_, _ = w.Write([]byte(`{"translatedText": "Akkam jirta?"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	tr, err := Open(context.TODO(), &Config{
		Languages: LanguagesConfig{Source: "english", Target: "borana"},
		Neural: neural.Config{
			Enabled:    true,
			Engine:     neural.EngineLibreTranslate,
			BaseURL:    server.URL,
			SourceLang: "en",
			TargetLang: "om",
		},
	}, nil)
	require.NoError(t, err)
	defer tr.Close(context.TODO())

	assert.Equal(t, []translator.Mode{translator.ModeDictionary, translator.ModeNeural}, tr.Modes())
	sentence := tr.TranslateSentence(context.TODO(), "How are you?", index.SourceToTarget)
	assert.Equal(t, translator.Sentence{Translation: "Akkam jirta?", Mode: translator.ModeNeural}, sentence)
	assert.True(t, tr.Health(context.TODO()).NeuralAvailable)
}

func TestOpenNeuralMisconfigured(t *testing.T) {
	tr, err := Open(context.TODO(), &Config{
		Neural: neural.Config{Enabled: true, Engine: "argos"},
	}, nil)
	require.NoError(t, err)
	defer tr.Close(context.TODO())
	assert.Equal(t, []translator.Mode{translator.ModeDictionary}, tr.Modes())
}
