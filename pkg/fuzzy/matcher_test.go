package fuzzy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkclainer/bilex/pkg/index"
	"github.com/darkclainer/bilex/pkg/lexicon"
)

func newTestMatcher(t *testing.T, lines ...string) *Matcher {
	var entries []lexicon.Entry
	for _, line := range lines {
		entries = append(entries, lexicon.ParseLine(line)...)
	}
	idx, err := index.Build(entries)
	require.NoError(t, err)
	return NewMatcher(idx)
}

func TestPrefix(t *testing.T) {
	m := newTestMatcher(t,
		"arrow n.- xadda-i",
		"arm n.- harka-i; irree-ni",
		"army n.- waraana-i",
		"art n.- ogummaa-i",
		"ask v.- gaafadha-atta",
	)
	testCases := map[string]struct {
		query     string
		direction index.Direction
		limit     int
		expected  []string
	}{
		"sorted":        {query: "ar", limit: 10, expected: []string{"arm", "army", "arrow", "art"}},
		"limited":       {query: "ar", limit: 2, expected: []string{"arm", "army"}},
		"no limit":      {query: "ar", expected: []string{"arm", "army", "arrow", "art"}},
		"case":          {query: "ARM", limit: 10, expected: []string{"arm", "army"}},
		"backward":      {query: "ha", direction: index.TargetToSource, limit: 10, expected: []string{"harka-i"}},
		"nothing found": {query: "zz", limit: 10},
		"empty query":   {query: "  ", limit: 10},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			words := m.Prefix(tc.query, tc.direction, tc.limit)
			assert.Equal(t, tc.expected, words)
			for _, word := range words {
				assert.True(t, strings.HasPrefix(word, strings.ToLower(strings.TrimSpace(tc.query))))
			}
		})
	}
}

func TestSimilar(t *testing.T) {
	m := newTestMatcher(t,
		"hello - akkam",
		"help v.- gargaara",
		"hell n.- ibidda",
		"water n.- bishaan",
	)
	matches := m.Similar("helo", index.SourceToTarget, SuggestThreshold, 10)
	assert.Equal(t, []string{"hello", "hell", "help"}, Words(matches))
	assert.InDelta(t, 8.0/9, matches[0].Score, 1e-9)
	assert.InDelta(t, 0.75, matches[1].Score, 1e-9)
	assert.InDelta(t, 0.75, matches[2].Score, 1e-9)

	assert.Equal(t, []string{"hello"}, Words(m.Similar("helo", index.SourceToTarget, SuggestThreshold, 1)))
	assert.Empty(t, m.Similar("helo", index.SourceToTarget, 0.95, 10))
	assert.Empty(t, m.Similar("", index.SourceToTarget, 0, 10))
}

func TestSimilarNoDuplicates(t *testing.T) {
	m := newTestMatcher(t,
		"arrange v.- qaba-bita; qaban-nita; saagaa-gita",
		"arrange n.- qindaa'a",
	)
	matches := m.Similar("arange", index.SourceToTarget, 0, 10)
	assert.Equal(t, []string{"arrange"}, Words(matches))
}

func TestSimilarOrderedByScore(t *testing.T) {
	entries, err := lexicon.Default()
	require.NoError(t, err)
	idx, err := index.Build(entries)
	require.NoError(t, err)
	matches := NewMatcher(idx).Similar("aple", index.SourceToTarget, 0.3, 0)
	require.NotEmpty(t, matches)
	for i := 1; i < len(matches); i++ {
		prev, cur := matches[i-1], matches[i]
		assert.True(t, prev.Score > cur.Score || (prev.Score == cur.Score && prev.Word < cur.Word))
	}
}
