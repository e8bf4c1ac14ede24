package translator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	stageExact     = "exact"
	stageSubstring = "substring"
	stageFuzzy     = "fuzzy"
	stageMiss      = "miss"
)

var (
	wordLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bilex_word_lookups_total",
			Help: "Word translations by direction and the lookup stage that resolved them",
		},
		[]string{"direction", "stage"},
	)

	sentencesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bilex_sentence_translations_total",
			Help: "Sentence translations by direction and mode",
		},
		[]string{"direction", "mode"},
	)
)
