package neural

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

type EngineType string

const (
	EngineLibreTranslate EngineType = "libretranslate"
	EngineOpenAI         EngineType = "openai"
)

type Config struct {
	// Enabled switches neural translation on. Without it only dictionary is used
	Enabled bool       `mapstructure:"enabled"`
	Engine  EngineType `mapstructure:"engine"`
	// BaseURL of engine API, engine default is used when empty
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	// Model is used only by openai engine
	Model      string `mapstructure:"model"`
	SourceLang string `mapstructure:"source_lang"`
	TargetLang string `mapstructure:"target_lang"`
	// Timeout of a single http request to the engine
	Timeout time.Duration `mapstructure:"timeout"`

	Breaker BreakerConfig `mapstructure:"breaker"`
	Cache   CacheConfig   `mapstructure:"cache"`
}

type CacheConfig struct {
	// Path to badger directory. Cache is disabled when Path is empty and
	// InMemory is false
	Path     string        `mapstructure:"path"`
	InMemory bool          `mapstructure:"in_memory"`
	TTL      time.Duration `mapstructure:"ttl"`
}

func (c *CacheConfig) enabled() bool {
	return c.Path != "" || c.InMemory
}

// New creates engine described by config wrapped with metrics, circuit breaker
// and optional cache.
func New(config *Config, logger *zap.Logger) (Translator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("neural")
	var engine Translator
	switch config.Engine {
	case EngineLibreTranslate:
		engine = NewLibreTranslate(nil, config, logger)
	case EngineOpenAI:
		engine = NewOpenAI(config, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, config.Engine)
	}
	logger.Info("neural engine created",
		zap.String("engine", string(config.Engine)),
		zap.String("base_url", config.BaseURL),
		zap.String("source_lang", config.SourceLang),
		zap.String("target_lang", config.TargetLang),
	)

	var translator Translator = NewBreaker(
		&instrumented{next: engine, engine: string(config.Engine)},
		&config.Breaker,
		logger,
	)
	if !config.Cache.enabled() {
		return translator, nil
	}
	storage, err := OpenStorage(&config.Cache, config.SourceLang+":"+config.TargetLang, logger)
	if err != nil {
		return nil, fmt.Errorf("can not open translation cache: %w", err)
	}
	return NewCached(translator, storage, logger), nil
}

// ParseEngineType parses engine name case insensitively.
func ParseEngineType(s string) (EngineType, error) {
	switch EngineType(strings.ToLower(strings.TrimSpace(s))) {
	case EngineLibreTranslate:
		return EngineLibreTranslate, nil
	case EngineOpenAI:
		return EngineOpenAI, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: %s, %s)", ErrUnknownEngine, s, EngineLibreTranslate, EngineOpenAI)
	}
}
