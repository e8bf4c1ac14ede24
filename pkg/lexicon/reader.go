package lexicon

import (
	"bufio"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Format of a lexicon source.
type Format string

const (
	FormatAuto Format = ""
	FormatText Format = "text"
	FormatHTML Format = "html"
)

var (
	ErrEmptyLexicon  = errors.New("lexicon has no entries")
	ErrUnknownFormat = errors.New("unknown lexicon format")
)

//go:embed data/borana.txt
var defaultLexicon []byte

// Parse reads a plain text lexicon line by line, top to bottom.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		entries = append(entries, ParseLine(scanner.Text())...)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("can not read lexicon: %w", err)
	}
	return entries, nil
}

var lexiconBlockMatcher = cascadia.MustCompile(`pre, p, li, dd`)

// ParseHTML extracts lexicon lines from an HTML document. Every pre, p, li and
// dd element is treated as a block of lines in document order. Text of a block
// nested in another block belongs to the nested block only.
func ParseHTML(page io.Reader) ([]Entry, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("can not parse page: %w", err)
	}
	var entries []Entry
	doc.FindMatcher(lexiconBlockMatcher).Each(func(i int, block *goquery.Selection) {
		var text strings.Builder
		for _, node := range block.Nodes {
			writeOwnText(&text, node)
		}
		for _, line := range strings.Split(text.String(), "\n") {
			entries = append(entries, ParseLine(line)...)
		}
	})
	return entries, nil
}

// writeOwnText writes text of node descendants skipping nested lexicon blocks.
// Every nested block is a line break.
func writeOwnText(text *strings.Builder, node *html.Node) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch {
		case child.Type == html.TextNode:
			text.WriteString(child.Data)
		case child.Type == html.ElementNode && lexiconBlockMatcher.Match(child):
			text.WriteByte('\n')
		default:
			writeOwnText(text, child)
		}
	}
}

// Load parses the lexicon file at path. An unreadable file or a file without
// a single entry is an error.
func Load(path string, format Format) ([]Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can not open lexicon: %w", err)
	}
	defer file.Close()

	if format == FormatAuto {
		format = DetectFormat(path)
	}
	entries, err := ParseFormat(file, format)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyLexicon)
	}
	return entries, nil
}

// ParseFormat parses r as a lexicon of the given format. Auto format is text.
func ParseFormat(r io.Reader, format Format) ([]Entry, error) {
	switch format {
	case FormatAuto, FormatText:
		return Parse(r)
	case FormatHTML:
		return ParseHTML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Default returns entries of the lexicon bundled with the binary.
func Default() ([]Entry, error) {
	entries, err := Parse(bytes.NewReader(defaultLexicon))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrEmptyLexicon
	}
	return entries, nil
}

// DetectFormat guesses lexicon format by file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatText
	}
}
