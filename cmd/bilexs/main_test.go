package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/darkclainer/bilex/pkg/lexicon"
	"github.com/darkclainer/bilex/pkg/neural"
)

func TestGetConfigDefaults(t *testing.T) {
	conf, zapConf, err := getConfig([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", conf.Host)
	assert.Equal(t, "english", conf.Languages.Source)
	assert.Equal(t, "borana", conf.Languages.Target)
	assert.Equal(t, 0.7, conf.Translator.FallbackThreshold)
	assert.Equal(t, 0.6, conf.Translator.SuggestThreshold)
	assert.Equal(t, 0.5, conf.Translator.MissThreshold)
	assert.Equal(t, 5, conf.Translator.MissSuggestions)
	assert.Equal(t, 5*time.Second, conf.Translator.NeuralTimeout)
	assert.False(t, conf.Neural.Enabled)
	assert.Equal(t, neural.EngineLibreTranslate, conf.Neural.Engine)
	assert.Equal(t, uint32(5), conf.Neural.Breaker.MaxFailures)
	assert.Equal(t, 30*time.Second, conf.Neural.Breaker.OpenTimeout)
	assert.Equal(t, zap.NewDevelopmentConfig().Level.Level(), zapConf.Level.Level())
}

func TestGetConfigOverrides(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
log_level: warn
lexicon:
  format: html
neural:
  engine: openai
  cache:
    in_memory: true
    ttl: 24h
`), 0o600))
	t.Setenv("BILEX_TRANSLATOR_SUGGEST_LIMIT", "3")
	t.Setenv("BILEX_NEURAL_MODEL", "gpt-4o")

	conf, zapConf, err := getConfig([]string{
		"--config", configPath,
		"--host", "0.0.0.0:9000",
		"--lexicon.path", "borana.html",
		"--neural.enabled",
	})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", conf.Host)
	assert.Equal(t, "borana.html", conf.Lexicon.Path)
	assert.Equal(t, lexicon.FormatHTML, conf.Lexicon.Format)
	assert.Equal(t, 3, conf.Translator.SuggestLimit)
	assert.True(t, conf.Neural.Enabled)
	assert.Equal(t, neural.EngineOpenAI, conf.Neural.Engine)
	assert.Equal(t, "gpt-4o", conf.Neural.Model)
	assert.True(t, conf.Neural.Cache.InMemory)
	assert.Equal(t, 24*time.Hour, conf.Neural.Cache.TTL)
	assert.Equal(t, zap.WarnLevel, zapConf.Level.Level())
}

func TestZapConf(t *testing.T) {
	conf := Config{ZapConfig: `{"level": "info", "encoding": "json", "outputPaths": ["stdout"]}`}
	zapConf, err := conf.ZapConf()
	require.NoError(t, err)
	assert.Equal(t, "json", zapConf.Encoding)
	assert.Equal(t, zap.InfoLevel, zapConf.Level.Level())

	conf = Config{LogLevel: "loud"}
	_, err = conf.ZapConf()
	assert.Error(t, err)

	conf = Config{ZapConfig: `{`}
	_, err = conf.ZapConf()
	assert.Error(t, err)
}
