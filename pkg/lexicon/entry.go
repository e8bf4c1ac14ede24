package lexicon

import (
	"encoding/json"
	"strings"
	"unicode"
)

type PartOfSpeech int

const (
	Unknown PartOfSpeech = iota
	Noun
	Verb
	Adjective
	Adverb
)

var partOfSpeechNames = map[PartOfSpeech]string{
	Unknown:   "unknown",
	Noun:      "noun",
	Verb:      "verb",
	Adjective: "adjective",
	Adverb:    "adverb",
}

func (p PartOfSpeech) String() string {
	if name, ok := partOfSpeechNames[p]; ok {
		return name
	}
	return partOfSpeechNames[Unknown]
}

func (p PartOfSpeech) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PartOfSpeech) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*p = Unknown
	for pos, posName := range partOfSpeechNames {
		if posName == name {
			*p = pos
			break
		}
	}
	return nil
}

// Entry is one resolved word pair. Both words are normalized.
type Entry struct {
	SourceWord   string       `json:"source_word"`
	TargetWord   string       `json:"target_word"`
	PartOfSpeech PartOfSpeech `json:"type"`
}

// Normalize lowercases s and trims surrounding whitespace and punctuation.
// Punctuation inside the word (ji'a, qaba-bita) is kept.
func Normalize(s string) string {
	return strings.TrimFunc(strings.ToLower(s), func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}
