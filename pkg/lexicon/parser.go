package lexicon

import (
	"regexp"
	"strings"
)

const (
	synonymSeparator = ","
	senseSeparator   = ";"
	bareSeparator    = "-"
)

type marker struct {
	token string
	pos   PartOfSpeech
}

// markers are matched on the raw line exactly, leading space and trailing dash included.
var markers = []marker{
	{token: " n.-", pos: Noun},
	{token: " v.-", pos: Verb},
	{token: " adj.-", pos: Adjective},
	{token: " adv.-", pos: Adverb},
}

// annotationMatcher also eats the whitespace before an annotation, so that
// "n. (big)- x" collapses into the marker "n.- x".
var annotationMatcher = regexp.MustCompile(`\s*\([^)]*\)`)

type markerOccurrence struct {
	start int
	end   int
	pos   PartOfSpeech
}

// ParseLine turns one raw lexicon line into entries. Lines that do not follow
// the lexicon grammar yield nothing.
//
// A line may hold several entries glued together:
//
//	appear to be v.- fakkaadha-kaatta appear v.- futisa-tifta; futuqa-tuxxa
//
// Every marker starts a new entry. Between two markers the text after the last
// ";" is split at its first space: the first word closes the previous sense list,
// the rest is the english word list of the next entry.
func ParseLine(line string) []Entry {
	line = cleanLine(line)
	if line == "" {
		return nil
	}
	occurrences := findMarkers(line)
	if len(occurrences) == 0 {
		return parseBare(line)
	}

	var entries []Entry
	words := line[:occurrences[0].start]
	for i, occurrence := range occurrences {
		var senses, nextWords string
		if i == len(occurrences)-1 {
			senses = line[occurrence.end:]
		} else {
			senses, nextWords = splitSegment(line[occurrence.end:occurrences[i+1].start])
		}
		entries = append(entries, crossProduct(
			splitItems(words, synonymSeparator),
			splitItems(senses, senseSeparator),
			occurrence.pos,
		)...)
		words = nextWords
	}
	return entries
}

func cleanLine(line string) string {
	line = annotationMatcher.ReplaceAllString(line, "")
	return strings.Join(strings.Fields(line), " ")
}

func findMarkers(line string) []markerOccurrence {
	var found []markerOccurrence
	for i := 0; i < len(line); {
		m, ok := markerAt(line, i)
		if !ok {
			i++
			continue
		}
		found = append(found, markerOccurrence{
			start: i,
			end:   i + len(m.token),
			pos:   m.pos,
		})
		i += len(m.token)
	}
	return found
}

func markerAt(line string, i int) (marker, bool) {
	for _, m := range markers {
		if strings.HasPrefix(line[i:], m.token) {
			return m, true
		}
	}
	return marker{}, false
}

// splitSegment divides the text between two markers into the sense list of the
// first one and the word list of the second one.
func splitSegment(segment string) (senses, words string) {
	cut := strings.LastIndex(segment, senseSeparator) + 1
	tail := strings.TrimLeft(segment[cut:], " ")
	offset := len(segment) - len(tail)
	if space := strings.IndexByte(tail, ' '); space >= 0 {
		return segment[:offset+space], segment[offset+space:]
	}
	return segment, ""
}

// parseBare handles lines without a type marker: "hello - akkam".
func parseBare(line string) []Entry {
	idx := strings.Index(line, bareSeparator)
	if idx < 0 {
		return nil
	}
	word := Normalize(line[:idx])
	sense := Normalize(line[idx+len(bareSeparator):])
	if word == "" || sense == "" {
		return nil
	}
	return []Entry{{SourceWord: word, TargetWord: sense, PartOfSpeech: Unknown}}
}

func splitItems(s, sep string) []string {
	var items []string
	for _, item := range strings.Split(s, sep) {
		if item = Normalize(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func crossProduct(words, senses []string, pos PartOfSpeech) []Entry {
	entries := make([]Entry, 0, len(words)*len(senses))
	for _, word := range words {
		for _, sense := range senses {
			entries = append(entries, Entry{
				SourceWord:   word,
				TargetWord:   sense,
				PartOfSpeech: pos,
			})
		}
	}
	return entries
}
