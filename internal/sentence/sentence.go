// Package sentence segments book text into display sentences.
//
// Splitting is punctuation based: a '.', '!', or '?' ends a sentence
// unless the token in front of it is a known abbreviation or part of a
// spelled initialism. Dotted abbreviations ("U.S.", "Ph.D.", "i.e.")
// need no configuration, the multi-dot rule catches them. Oversized
// sentences are broken into readability-bounded chunks without losing
// or reordering any token.
package sentence

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// DefaultCharLimit is the rune count above which a sentence is a
	// candidate for splitting.
	DefaultCharLimit = 220

	// DefaultWordLimit is the word count above which a sentence is a
	// candidate for splitting. Both limits must be exceeded before a
	// sentence is split.
	DefaultWordLimit = 36
)

// Options configure a Splitter. Zero values fall back to defaults.
type Options struct {
	// Abbreviations are lowercase tokens, without the trailing period,
	// that never end a sentence ("mr", "dr", "etc"). An empty slice
	// selects DefaultAbbreviations.
	Abbreviations []string

	CharLimit int
	WordLimit int
}

// Splitter turns raw text into display sentences.
type Splitter struct {
	abbreviations map[string]bool
	charLimit     int
	wordLimit     int
}

// NewSplitter creates a Splitter from opts.
func NewSplitter(opts Options) *Splitter {
	abbrevs := opts.Abbreviations
	if len(abbrevs) == 0 {
		abbrevs = DefaultAbbreviations()
	}
	m := make(map[string]bool, len(abbrevs))
	for _, a := range abbrevs {
		a = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(a), "."))
		if a != "" {
			m[a] = true
		}
	}

	s := &Splitter{
		abbreviations: m,
		charLimit:     opts.CharLimit,
		wordLimit:     opts.WordLimit,
	}
	if s.charLimit <= 0 {
		s.charLimit = DefaultCharLimit
	}
	if s.wordLimit <= 0 {
		s.wordLimit = DefaultWordLimit
	}
	return s
}

// Segment splits text into display sentences. Empty and whitespace-only
// spans are dropped, internal whitespace runs collapse to single spaces,
// and oversized sentences are chunked. Joining the result with single
// spaces reproduces the input token stream exactly.
func (s *Splitter) Segment(text string) []string {
	var sentences []string

	runes := []rune(text)
	lastStart := 0

	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}

		// Collect the whole punctuation run so "?!" and "..." stay
		// inside one sentence.
		punctEnd := i + 1
		for punctEnd < len(runes) && (runes[punctEnd] == '.' || runes[punctEnd] == '!' || runes[punctEnd] == '?') {
			punctEnd++
		}

		// Closing quotes and brackets belong to the sentence.
		for punctEnd < len(runes) && isClosing(runes[punctEnd]) {
			punctEnd++
		}

		if !s.isSentenceEnd(runes, i, punctEnd) {
			i = punctEnd - 1
			continue
		}

		if span := collapseSpan(runes[lastStart:punctEnd]); span != "" {
			sentences = append(sentences, s.splitOversized(span)...)
		}

		for punctEnd < len(runes) && unicode.IsSpace(runes[punctEnd]) {
			punctEnd++
		}
		lastStart = punctEnd
		i = punctEnd - 1
	}

	if span := collapseSpan(runes[lastStart:]); span != "" {
		sentences = append(sentences, s.splitOversized(span)...)
	}

	return sentences
}

// isSentenceEnd reports whether the punctuation starting at pos really
// terminates a sentence. punctEnd is the index just past the punctuation
// run and any closing quotes.
func (s *Splitter) isSentenceEnd(runes []rune, pos, punctEnd int) bool {
	// A boundary needs whitespace or end of text after it. This keeps
	// decimals ("3.14"), URLs, and glued typos inside one token, which
	// the pagination round trip depends on.
	if punctEnd < len(runes) && !unicode.IsSpace(runes[punctEnd]) {
		return false
	}

	if runes[pos] != '.' {
		return true
	}

	tok := tokenBefore(runes, pos)
	if tok == "" {
		return true
	}

	// Multi-dot tokens are spelled abbreviations or initialisms:
	// "U.S", "Ph.D", "i.e", "e.g".
	if strings.Contains(tok, ".") {
		return false
	}

	if s.abbreviations[strings.ToLower(strings.TrimLeftFunc(tok, isNonLetter))] {
		return false
	}

	// A lone letter followed by another letter-dot token is a spaced
	// initial, as in "J. R. R. Tolkien".
	if isSingleLetter(tok) {
		next := tokenAfter(runes, punctEnd)
		if len(next) >= 2 && unicode.IsLetter(next[0]) && next[1] == '.' {
			return false
		}
	}

	return true
}

// tokenBefore returns the non-space run ending just before pos,
// excluding the punctuation at pos itself.
func tokenBefore(runes []rune, pos int) string {
	start := pos - 1
	for start >= 0 && !unicode.IsSpace(runes[start]) {
		start--
	}
	if start+1 >= pos {
		return ""
	}
	return string(runes[start+1 : pos])
}

// tokenAfter returns the non-space run starting at or after pos.
func tokenAfter(runes []rune, pos int) []rune {
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	end := pos
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}
	return runes[pos:end]
}

func isSingleLetter(tok string) bool {
	r, size := utf8.DecodeRuneInString(tok)
	return size == len(tok) && unicode.IsLetter(r)
}

func isNonLetter(r rune) bool {
	return !unicode.IsLetter(r)
}

func isClosing(r rune) bool {
	return r == '"' || r == '\'' || r == ')' || r == ']'
}

// collapseSpan trims the span and collapses internal whitespace runs to
// single spaces. Returns "" for whitespace-only spans.
func collapseSpan(runes []rune) string {
	return strings.Join(strings.Fields(string(runes)), " ")
}

// DefaultAbbreviations returns the built-in abbreviation tokens. Common
// English words that double as unit abbreviations ("in", "no", "may")
// are deliberately absent so they keep ending sentences.
func DefaultAbbreviations() []string {
	return []string{
		"mr", "mrs", "ms", "dr", "prof", "rev", "hon", "fr",
		"sr", "jr", "st", "mt",
		"etc", "vs", "cf", "al", "approx",
		"inc", "ltd", "llc", "co", "corp", "dept", "div", "est",
		"jan", "feb", "mar", "apr", "jun", "jul", "aug",
		"sep", "sept", "oct", "nov", "dec",
		"mon", "tue", "wed", "thu", "fri", "sat", "sun",
		"ave", "blvd", "rd", "ln", "ct",
		"vol", "vols", "pg", "pp", "eds", "fig", "figs",
		"ft", "lb", "lbs", "oz", "kg", "km", "cm", "mm", "mi", "yd",
		"hr", "hrs", "min", "mins", "sec", "secs",
		"gen", "gov", "capt", "col", "lt", "maj", "sgt", "cmdr", "pres",
	}
}
