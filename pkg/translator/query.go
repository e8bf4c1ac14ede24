package translator

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/darkclainer/bilex/pkg/fuzzy"
	"github.com/darkclainer/bilex/pkg/index"
	"github.com/darkclainer/bilex/pkg/lexicon"
	"github.com/darkclainer/bilex/pkg/neural"
)

// minSuggestPrefix is the minimal length of normalized prefix in runes.
const minSuggestPrefix = 2

// Word is result of word lookup. Either Senses is filled or NotFound is set
// with Suggestions of similar words.
type Word struct {
	Senses      []lexicon.Entry `json:"translations,omitempty"`
	NotFound    bool            `json:"not_found,omitempty"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

type Statistics struct {
	SourceWords  int `json:"source_words"`
	TargetWords  int `json:"target_words"`
	TotalEntries int `json:"total_entries"`
}

type Health struct {
	Ready           bool   `json:"dictionary_loaded"`
	DictionaryWords int    `json:"dictionary_words"`
	NeuralAvailable bool   `json:"neural_available"`
	Modes           []Mode `json:"translation_modes"`
}

// Lookup translates single word. Miss is not an error, it carries suggestions.
func (t *Translator) Lookup(word string, direction index.Direction) Word {
	if senses := t.TranslateWord(word, direction); len(senses) != 0 {
		return Word{Senses: senses}
	}
	suggestions := fuzzy.Words(t.matcher.Similar(word, direction, t.config.MissThreshold, t.config.MissSuggestions))
	return Word{
		NotFound:    true,
		Suggestions: suggestions,
	}
}

// Suggest returns keys starting with prefix. If there is no such key, similar
// keys are returned instead. Prefixes shorter than two characters give nothing.
func (t *Translator) Suggest(prefix string, direction index.Direction, limit int) []string {
	if utf8.RuneCountInString(lexicon.Normalize(prefix)) < minSuggestPrefix {
		return []string{}
	}
	if limit < 1 {
		limit = t.config.SuggestLimit
	}
	if words := t.matcher.Prefix(prefix, direction, limit); len(words) != 0 {
		return words
	}
	return fuzzy.Words(t.matcher.Similar(prefix, direction, t.config.SuggestThreshold, limit))
}

func (t *Translator) Statistics() Statistics {
	stats := t.index.Statistics()
	return Statistics{
		SourceWords:  stats.SourceWords,
		TargetWords:  stats.TargetWords,
		TotalEntries: stats.SourceWords + stats.TargetWords,
	}
}

// Sample returns first n source words with their senses.
func (t *Translator) Sample(n int) map[string][]lexicon.Entry {
	return t.index.Sample(index.SourceToTarget, n)
}

func (t *Translator) Health(ctx context.Context) Health {
	health := Health{
		Ready:           t.index.Len(index.SourceToTarget) > 0,
		DictionaryWords: t.index.Len(index.SourceToTarget),
		Modes:           t.Modes(),
	}
	if t.neural != nil {
		err := neural.CheckHealth(ctx, t.neural)
		if err != nil {
			t.logger.Warn("neural translator is not healthy", zap.Error(err))
		}
		health.NeuralAvailable = err == nil
	}
	return health
}

// Direction resolves language name of the source side of a request. Empty
// name means source language.
func (t *Translator) Direction(language string) (index.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "", t.config.SourceLanguage:
		return index.SourceToTarget, nil
	case t.config.TargetLanguage:
		return index.TargetToSource, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, language)
	}
}
