package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	word := func(s string) Token { return Token{Text: s, Word: true} }
	punct := func(s string) Token { return Token{Text: s} }
	testCases := map[string]struct {
		text     string
		expected []Token
	}{
		"words and punctuation": {
			text:     "Hello, world!",
			expected: []Token{word("Hello"), punct(","), word("world"), punct("!")},
		},
		"apostrophe inside word": {
			text:     "ji'a",
			expected: []Token{word("ji'a")},
		},
		"hyphenated words": {
			text:     "harka-i irree-ni",
			expected: []Token{word("harka-i"), word("irree-ni")},
		},
		"standalone dash": {
			text:     "a - b",
			expected: []Token{word("a"), punct("-"), word("b")},
		},
		"dash before word": {
			text:     "hello -world",
			expected: []Token{word("hello"), punct("-"), word("world")},
		},
		"dash after word": {
			text:     "hello- world",
			expected: []Token{word("hello"), punct("-"), word("world")},
		},
		"numbers": {
			text:     "2 apples.",
			expected: []Token{word("2"), word("apples"), punct(".")},
		},
		"only spaces": {
			text: " \t ",
		},
		"empty": {
			text: "",
		},
	}
	for name := range testCases {
		tc := testCases[name]
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Tokenize(tc.text))
		})
	}
}
