// Package bilex assembles bilingual dictionary translator from configuration:
// lexicon is parsed and indexed once, then shared read-only by every query.
package bilex

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/darkclainer/bilex/pkg/index"
	"github.com/darkclainer/bilex/pkg/lexicon"
	"github.com/darkclainer/bilex/pkg/neural"
	"github.com/darkclainer/bilex/pkg/translator"
)

const neuralHealthTimeout = 3 * time.Second

type LexiconConfig struct {
	// Path to lexicon file. Embedded lexicon is used when empty
	Path   string         `mapstructure:"path"`
	Format lexicon.Format `mapstructure:"format"`
}

type LanguagesConfig struct {
	Source string `mapstructure:"source"`
	Target string `mapstructure:"target"`
}

type Config struct {
	Lexicon    LexiconConfig     `mapstructure:"lexicon"`
	Languages  LanguagesConfig   `mapstructure:"languages"`
	Translator translator.Config `mapstructure:"translator"`
	Neural     neural.Config     `mapstructure:"neural"`
}

// Open loads lexicon and creates translator. Lexicon that can not be read or
// has no entries is the only fatal error. Problems with neural translator are
// logged and translator falls back to dictionary only.
func Open(ctx context.Context, config *Config, logger *zap.Logger) (*translator.Translator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := loadLexicon(&config.Lexicon)
	if err != nil {
		return nil, fmt.Errorf("can not load lexicon: %w", err)
	}
	idx, err := index.Build(entries)
	if err != nil {
		return nil, fmt.Errorf("can not build index: %w", err)
	}
	stats := idx.Statistics()
	logger.Info("lexicon loaded",
		zap.String("path", config.Lexicon.Path),
		zap.Int("entries", stats.Entries),
		zap.Int("source_words", stats.SourceWords),
		zap.Int("target_words", stats.TargetWords),
	)

	config.Translator.SourceLanguage = config.Languages.Source
	config.Translator.TargetLanguage = config.Languages.Target
	return translator.New(idx, openNeural(ctx, &config.Neural, logger), logger, &config.Translator), nil
}

func loadLexicon(config *LexiconConfig) ([]lexicon.Entry, error) {
	if config.Path == "" {
		return lexicon.Default()
	}
	return lexicon.Load(config.Path, config.Format)
}

func openNeural(ctx context.Context, config *neural.Config, logger *zap.Logger) neural.Translator {
	if !config.Enabled {
		logger.Info("neural translation disabled")
		return nil
	}
	nt, err := neural.New(config, logger)
	if err != nil {
		logger.Error("neural translator is not available, using dictionary only", zap.Error(err))
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, neuralHealthTimeout)
	defer cancel()
	if err := neural.CheckHealth(ctx, nt); err != nil {
		logger.Warn("neural translator is not ready yet", zap.Error(err))
	}
	return nt
}
