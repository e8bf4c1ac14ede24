// Package index holds the bidirectional lexicon index. An Index is built once
// and is read-only afterwards, so it is safe for concurrent use without locks.
package index

import (
	"errors"
	"fmt"

	"github.com/darkclainer/bilex/pkg/lexicon"
)

var ErrEmptyIndex = errors.New("index has no entries")

type Direction int

const (
	SourceToTarget Direction = iota
	TargetToSource
)

func (d Direction) String() string {
	switch d {
	case SourceToTarget:
		return "source_to_target"
	case TargetToSource:
		return "target_to_source"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Translated returns the word of entry on the other side of d.
func (d Direction) Translated(entry lexicon.Entry) string {
	if d == TargetToSource {
		return entry.SourceWord
	}
	return entry.TargetWord
}

type table struct {
	senses map[string][]lexicon.Entry
	// keys in discovery order
	keys []string
}

func newTable() *table {
	return &table{senses: make(map[string][]lexicon.Entry)}
}

func (t *table) add(key string, entry lexicon.Entry) {
	if _, ok := t.senses[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.senses[key] = append(t.senses[key], entry)
}

type Index struct {
	forward  *table
	backward *table
	entries  int
}

type Statistics struct {
	SourceWords int `json:"source_words"`
	TargetWords int `json:"target_words"`
	Entries     int `json:"entries"`
}

// Build indexes entries in the given order. Several entries under the same key
// accumulate as senses, first discovered first.
func Build(entries []lexicon.Entry) (*Index, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyIndex
	}
	idx := &Index{
		forward:  newTable(),
		backward: newTable(),
		entries:  len(entries),
	}
	for _, entry := range entries {
		idx.forward.add(entry.SourceWord, entry)
		idx.backward.add(entry.TargetWord, entry)
	}
	return idx, nil
}

func (idx *Index) table(direction Direction) *table {
	if direction == TargetToSource {
		return idx.backward
	}
	return idx.forward
}

// Lookup returns senses of word in discovery order or nil.
func (idx *Index) Lookup(word string, direction Direction) []lexicon.Entry {
	senses := idx.table(direction).senses[lexicon.Normalize(word)]
	if len(senses) == 0 {
		return nil
	}
	result := make([]lexicon.Entry, len(senses))
	copy(result, senses)
	return result
}

// Range calls fn for every key in discovery order until fn returns false.
func (idx *Index) Range(direction Direction, fn func(key string) bool) {
	for _, key := range idx.table(direction).keys {
		if !fn(key) {
			return
		}
	}
}

// Len returns number of keys for direction.
func (idx *Index) Len(direction Direction) int {
	return len(idx.table(direction).keys)
}

func (idx *Index) Statistics() Statistics {
	return Statistics{
		SourceWords: len(idx.forward.keys),
		TargetWords: len(idx.backward.keys),
		Entries:     idx.entries,
	}
}

// Sample returns first n keys of direction with their senses.
func (idx *Index) Sample(direction Direction, n int) map[string][]lexicon.Entry {
	t := idx.table(direction)
	if n > len(t.keys) || n < 0 {
		n = len(t.keys)
	}
	sample := make(map[string][]lexicon.Entry, n)
	for _, key := range t.keys[:n] {
		sample[key] = idx.Lookup(key, direction)
	}
	return sample
}
