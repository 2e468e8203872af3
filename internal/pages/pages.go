// Package pages packs display sentences into fixed-budget pages.
//
// The budget is a character count derived from the lines-per-page
// setting alone. Font size never enters the calculation, so the page
// count stays put when the user changes text size.
package pages

import (
	"strings"
	"unicode/utf8"

	"github.com/sguzman/lantern-leaf/internal/sentence"
)

const (
	charsPerLine = 80

	// MinLinesPerPage and MaxLinesPerPage bound the lines-per-page
	// setting wherever it enters the engine.
	MinLinesPerPage = 8
	MaxLinesPerPage = 1000
)

// Page is one 0-indexed slice of the book. Immutable between
// repaginations.
type Page struct {
	Sentences []string
	WordCount int
}

// SentenceCount returns the number of display sentences on the page.
func (p Page) SentenceCount() int {
	return len(p.Sentences)
}

// Text returns the page body, sentences joined by single spaces.
func (p Page) Text() string {
	return strings.Join(p.Sentences, " ")
}

// Budget returns the page character budget for a lines-per-page value.
func Budget(linesPerPage int) int {
	if linesPerPage < MinLinesPerPage {
		linesPerPage = MinLinesPerPage
	}
	if linesPerPage > MaxLinesPerPage {
		linesPerPage = MaxLinesPerPage
	}
	return charsPerLine * linesPerPage
}

// Build segments text and greedily packs the sentences into pages. A
// sentence never spans two pages; a sentence larger than the whole
// budget fills a page of its own. The result is never empty: an empty
// book yields one empty page.
func Build(sp *sentence.Splitter, text string, linesPerPage int) []Page {
	budget := Budget(linesPerPage)
	sentences := sp.Segment(text)
	if len(sentences) == 0 {
		return []Page{{}}
	}

	var result []Page
	var current []string
	running := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		result = append(result, Page{
			Sentences: current,
			WordCount: countWords(current),
		})
		current = nil
		running = 0
	}

	for _, s := range sentences {
		length := utf8.RuneCountInString(s)
		if len(current) > 0 && running+1+length > budget {
			flush()
		}
		if len(current) > 0 {
			running++
		}
		current = append(current, s)
		running += length
	}
	flush()

	return result
}

func countWords(sentences []string) int {
	n := 0
	for _, s := range sentences {
		n += len(strings.Fields(s))
	}
	return n
}
