// Package translator combines lexicon lookup, fuzzy fallback and an optional
// neural engine into word and sentence translation.
package translator

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gammazero/workerpool"
	"go.uber.org/zap"

	"github.com/darkclainer/bilex/pkg/fuzzy"
	"github.com/darkclainer/bilex/pkg/index"
	"github.com/darkclainer/bilex/pkg/lexicon"
	"github.com/darkclainer/bilex/pkg/neural"
)

const (
	defaultMissSuggestions = 5
	defaultSuggestLimit    = 10
	defaultNeuralTimeout   = 5 * time.Second
	defaultSourceLanguage  = "english"
	defaultTargetLanguage  = "borana"
)

var ErrUnknownDirection = errors.New("unknown translation direction")

type Mode string

const (
	ModeDictionary Mode = "dictionary"
	ModeNeural     Mode = "neural"
)

type Config struct {
	// FallbackThreshold is the minimal similarity for fuzzy fallback of a missed word
	FallbackThreshold float64 `mapstructure:"fallback_threshold"`
	// SuggestThreshold is the minimal similarity for suggestions when no key has the prefix
	SuggestThreshold float64 `mapstructure:"suggest_threshold"`
	// MissThreshold is the minimal similarity for suggestions attached to a missed word
	MissThreshold   float64 `mapstructure:"miss_threshold"`
	MissSuggestions int     `mapstructure:"miss_suggestions"`
	SuggestLimit    int     `mapstructure:"suggest_limit"`
	// NeuralTimeout limits every call of neural translator
	NeuralTimeout time.Duration `mapstructure:"neural_timeout"`
	// MaxWorkers specifies how many sentences of a batch are translated at once
	// Zero value mean that it will be equal to number of logical CPU
	MaxWorkers int `mapstructure:"max_workers"`
	// SourceLanguage and TargetLanguage name the languages of lexicon columns
	SourceLanguage string `mapstructure:"source_language"`
	TargetLanguage string `mapstructure:"target_language"`
}

func (c *Config) setDefaults() {
	if c.FallbackThreshold == 0 {
		c.FallbackThreshold = fuzzy.FallbackThreshold
	}
	if c.SuggestThreshold == 0 {
		c.SuggestThreshold = fuzzy.SuggestThreshold
	}
	if c.MissThreshold == 0 {
		c.MissThreshold = fuzzy.MissThreshold
	}
	if c.MissSuggestions < 1 {
		c.MissSuggestions = defaultMissSuggestions
	}
	if c.SuggestLimit < 1 {
		c.SuggestLimit = defaultSuggestLimit
	}
	if c.NeuralTimeout <= 0 {
		c.NeuralTimeout = defaultNeuralTimeout
	}
	if c.MaxWorkers < 1 { // nolint:gomnd // if number not specified
		c.MaxWorkers = runtime.NumCPU()
	}
	if c.SourceLanguage == "" {
		c.SourceLanguage = defaultSourceLanguage
	}
	if c.TargetLanguage == "" {
		c.TargetLanguage = defaultTargetLanguage
	}
	c.SourceLanguage = strings.ToLower(c.SourceLanguage)
	c.TargetLanguage = strings.ToLower(c.TargetLanguage)
}

// sentenceStrategy translates whole sentence and reports how it was done.
type sentenceStrategy func(ctx context.Context, text string, direction index.Direction) Sentence

// Translator is safe for concurrent use. Index is never modified after Build,
// so no locking is needed.
type Translator struct {
	index    *index.Index
	matcher  *fuzzy.Matcher
	neural   neural.Translator
	config   *Config
	logger   *zap.Logger
	pool     *workerpool.WorkerPool
	sentence sentenceStrategy
	modes    []Mode

	// mu guards closed, pool accepts no tasks once closed is set
	mu     sync.RWMutex
	closed bool
}

// New creates translator over idx. Neural translator is optional: when it is
// nil only dictionary is used.
func New(idx *index.Index, nt neural.Translator, logger *zap.Logger, config *Config) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	config.setDefaults()
	t := &Translator{
		index:   idx,
		matcher: fuzzy.NewMatcher(idx),
		neural:  nt,
		config:  config,
		logger:  logger,
		pool:    workerpool.New(config.MaxWorkers),
		modes:   []Mode{ModeDictionary},
	}
	t.sentence = t.translateByDictionary
	if nt != nil {
		t.sentence = t.translateByNeural
		t.modes = append(t.modes, ModeNeural)
	}
	return t
}

type Sentence struct {
	Translation string `json:"translation"`
	Mode        Mode   `json:"mode"`
}

// TranslateWord returns senses of word. It tries exact lookup, then a key
// containing word or contained in it, then the most similar key. Nil means
// nothing was found.
func (t *Translator) TranslateWord(word string, direction index.Direction) []lexicon.Entry {
	senses, stage := t.translateWord(word, direction)
	wordLookupsTotal.WithLabelValues(direction.String(), stage).Inc()
	return senses
}

func (t *Translator) translateWord(word string, direction index.Direction) ([]lexicon.Entry, string) {
	query := lexicon.Normalize(word)
	if query == "" {
		return nil, stageMiss
	}
	if senses := t.index.Lookup(query, direction); len(senses) != 0 {
		return senses, stageExact
	}
	var substring []lexicon.Entry
	t.index.Range(direction, func(key string) bool {
		if strings.Contains(key, query) || strings.Contains(query, key) {
			substring = t.index.Lookup(key, direction)[:1]
			return false
		}
		return true
	})
	if len(substring) != 0 {
		return substring, stageSubstring
	}
	if similar := t.matcher.Similar(query, direction, t.config.FallbackThreshold, 1); len(similar) != 0 {
		return t.index.Lookup(similar[0].Word, direction), stageFuzzy
	}
	return nil, stageMiss
}

// TranslateSentence never fails: when neural translator is absent or
// unavailable the sentence is translated word by word.
func (t *Translator) TranslateSentence(ctx context.Context, text string, direction index.Direction) Sentence {
	sentence := t.sentence(ctx, text, direction)
	sentencesTotal.WithLabelValues(direction.String(), string(sentence.Mode)).Inc()
	return sentence
}

func (t *Translator) translateByNeural(ctx context.Context, text string, direction index.Direction) Sentence {
	if direction != index.SourceToTarget {
		return t.translateByDictionary(ctx, text, direction)
	}
	neuralCtx, cancel := context.WithTimeout(ctx, t.config.NeuralTimeout)
	defer cancel()
	translation, err := t.neural.Translate(neuralCtx, text)
	switch {
	case err != nil:
		t.logger.Warn("neural translation unavailable, using dictionary", zap.Error(err))
	case strings.TrimSpace(translation) == "":
		t.logger.Warn("neural translation is empty, using dictionary")
	default:
		return Sentence{Translation: translation, Mode: ModeNeural}
	}
	return t.translateByDictionary(ctx, text, direction)
}

func (t *Translator) translateByDictionary(_ context.Context, text string, direction index.Direction) Sentence {
	tokens := Tokenize(text)
	translated := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if !token.Word {
			translated = append(translated, token.Text)
			continue
		}
		senses := t.TranslateWord(token.Text, direction)
		if len(senses) == 0 {
			translated = append(translated, "["+token.Text+"]")
			continue
		}
		translated = append(translated, direction.Translated(senses[0]))
	}
	return Sentence{
		Translation: strings.Join(translated, " "),
		Mode:        ModeDictionary,
	}
}

// TranslateBatch translates texts concurrently. Result order matches texts.
// Texts not started before ctx is done are left with empty Sentence. After
// Close texts are translated one by one in the calling goroutine.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string, direction index.Direction) []Sentence {
	results := make([]Sentence, len(texts))
	translate := func(i int) {
		if ctx.Err() != nil {
			return
		}
		results[i] = t.TranslateSentence(ctx, texts[i], direction)
	}

	t.mu.RLock()
	if t.closed {
		t.mu.RUnlock()
		for i := range texts {
			translate(i)
		}
		return results
	}
	var wg sync.WaitGroup
	wg.Add(len(texts))
	for i := range texts {
		t.pool.Submit(func() {
			defer wg.Done()
			translate(i)
		})
	}
	t.mu.RUnlock()
	wg.Wait()
	return results
}

// Modes lists translation modes available to this translator.
func (t *Translator) Modes() []Mode {
	modes := make([]Mode, len(t.modes))
	copy(modes, t.modes)
	return modes
}

// Close waits for queued batch texts and closes neural translator. Translator
// stays usable after Close, but batches are no longer concurrent.
func (t *Translator) Close(ctx context.Context) error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()
	t.pool.StopWait()
	if t.neural != nil {
		return t.neural.Close(ctx)
	}
	return nil
}
