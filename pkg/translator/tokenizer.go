package translator

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

type Token struct {
	Text string
	// Word is false for standalone punctuation
	Word bool
}

// Tokenize splits text on Unicode word boundaries. Whitespace is dropped,
// punctuation becomes separate tokens and hyphenated words stay whole.
func Tokenize(text string) []Token {
	var tokens []Token
	// glue is set when the previous segment was a hyphen directly after a word
	glue := false
	// afterWord is set when the previous segment was a word, whitespace resets it
	afterWord := false
	state := -1
	for text != "" {
		var segment string
		segment, text, state = uniseg.FirstWordInString(text, state)
		switch {
		case isSpace(segment):
			glue = false
			afterWord = false
		case isWord(segment):
			afterWord = true
			if glue {
				tokens[len(tokens)-2].Text += tokens[len(tokens)-1].Text + segment
				tokens = tokens[:len(tokens)-1]
				glue = false
				continue
			}
			tokens = append(tokens, Token{Text: segment, Word: true})
		default:
			glue = segment == "-" && afterWord
			afterWord = false
			tokens = append(tokens, Token{Text: segment})
		}
	}
	return tokens
}

func isSpace(segment string) bool {
	return strings.TrimFunc(segment, unicode.IsSpace) == ""
}

func isWord(segment string) bool {
	return strings.IndexFunc(segment, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	}) >= 0
}
