// Package fuzzy answers prefix and similarity queries over index keys. Every
// query is a linear scan of the keys, which is fine for lexicons of a few
// thousand words.
package fuzzy

import (
	"sort"
	"strings"

	"github.com/darkclainer/bilex/pkg/index"
	"github.com/darkclainer/bilex/pkg/lexicon"
)

// Thresholds used by the different callers of Similar.
const (
	// SuggestThreshold is used for standalone suggestion queries.
	SuggestThreshold = 0.6
	// FallbackThreshold is used when a word translation misses exact and substring lookup.
	FallbackThreshold = 0.7
	// MissThreshold is used to attach suggestions to a word that was not found.
	MissThreshold = 0.5
)

type Match struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

type Matcher struct {
	index *index.Index
}

func NewMatcher(idx *index.Index) *Matcher {
	return &Matcher{index: idx}
}

// Prefix returns keys starting with query in ascending order. Non-positive
// limit means no limit.
func (m *Matcher) Prefix(query string, direction index.Direction, limit int) []string {
	query = lexicon.Normalize(query)
	if query == "" {
		return nil
	}
	var words []string
	m.index.Range(direction, func(key string) bool {
		if strings.HasPrefix(key, query) {
			words = append(words, key)
		}
		return true
	})
	sort.Strings(words)
	return truncate(words, limit)
}

// Similar returns keys whose Ratio with query is at least threshold, best
// first. Keys with equal score are ordered lexicographically.
func (m *Matcher) Similar(query string, direction index.Direction, threshold float64, limit int) []Match {
	query = lexicon.Normalize(query)
	if query == "" {
		return nil
	}
	var matches []Match
	m.index.Range(direction, func(key string) bool {
		if score := Ratio(query, key); score >= threshold {
			matches = append(matches, Match{Word: key, Score: score})
		}
		return true
	})
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Word < matches[j].Word
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Words drops scores keeping order.
func Words(matches []Match) []string {
	words := make([]string, 0, len(matches))
	for _, match := range matches {
		words = append(words, match.Word)
	}
	return words
}

func truncate(words []string, limit int) []string {
	if limit > 0 && len(words) > limit {
		return words[:limit]
	}
	return words
}
