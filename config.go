package bilex

import (
	"github.com/spf13/viper"
)

// SetDefaults registers default value of every configuration key, so that
// each of them can be overridden by environment variable.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("lexicon.path", "")
	v.SetDefault("lexicon.format", "")
	v.SetDefault("languages.source", "english")
	v.SetDefault("languages.target", "borana")
	v.SetDefault("translator.fallback_threshold", 0.7)
	v.SetDefault("translator.suggest_threshold", 0.6)
	v.SetDefault("translator.miss_threshold", 0.5)
	v.SetDefault("translator.miss_suggestions", 5)
	v.SetDefault("translator.suggest_limit", 10)
	v.SetDefault("translator.neural_timeout", "5s")
	v.SetDefault("translator.max_workers", 0)
	v.SetDefault("neural.enabled", false)
	v.SetDefault("neural.engine", "libretranslate")
	v.SetDefault("neural.base_url", "")
	v.SetDefault("neural.api_key", "")
	v.SetDefault("neural.model", "")
	v.SetDefault("neural.source_lang", "en")
	v.SetDefault("neural.target_lang", "om")
	v.SetDefault("neural.timeout", "10s")
	v.SetDefault("neural.breaker.max_failures", 5)
	v.SetDefault("neural.breaker.open_timeout", "30s")
	v.SetDefault("neural.cache.path", "")
	v.SetDefault("neural.cache.in_memory", false)
	v.SetDefault("neural.cache.ttl", "0s")
}
