package sentence

import (
	"strings"
	"unicode/utf8"
)

// splitOversized breaks a sentence that exceeds both the character and
// the word limit into smaller chunks. It first splits on soft delimiters
// (comma, semicolon, colon, newline), packs the delimiter-bounded
// segments back together under both limits, and falls back to word
// boundaries for a single segment that is still too big. No token is
// dropped or reordered.
func (s *Splitter) splitOversized(text string) []string {
	if !s.oversized(text) {
		return []string{text}
	}

	segments := splitSoftDelimiters(text)
	if len(segments) <= 1 {
		return s.splitAtWords(text)
	}

	var parts []string
	current := ""
	currentWords := 0
	for _, seg := range segments {
		segWords := len(strings.Fields(seg))
		if current == "" {
			current = seg
			currentWords = segWords
			continue
		}
		if s.fits(utf8.RuneCountInString(current)+1+utf8.RuneCountInString(seg), currentWords+segWords) {
			current += " " + seg
			currentWords += segWords
			continue
		}
		parts = append(parts, current)
		current = seg
		currentWords = segWords
	}
	if current != "" {
		parts = append(parts, current)
	}

	// A packed part can only exceed the limits when it is a single
	// over-long segment; those break at word boundaries.
	var final []string
	for _, part := range parts {
		if utf8.RuneCountInString(part) > s.charLimit || len(strings.Fields(part)) > s.wordLimit {
			final = append(final, s.splitAtWords(part)...)
		} else {
			final = append(final, part)
		}
	}
	return final
}

// oversized reports whether text exceeds both limits. Short-but-wordy
// and long-but-terse sentences stay whole.
func (s *Splitter) oversized(text string) bool {
	return utf8.RuneCountInString(text) > s.charLimit && len(strings.Fields(text)) > s.wordLimit
}

func (s *Splitter) fits(chars, words int) bool {
	return chars <= s.charLimit && words <= s.wordLimit
}

// splitSoftDelimiters cuts text after ',', ';', ':' (keeping the
// delimiter attached to the left piece) and at newlines. Pieces are
// trimmed; empty pieces vanish.
func splitSoftDelimiters(text string) []string {
	var segments []string
	var b strings.Builder

	flush := func() {
		if seg := strings.TrimSpace(b.String()); seg != "" {
			segments = append(segments, seg)
		}
		b.Reset()
	}

	for _, r := range text {
		switch r {
		case ',', ';', ':':
			b.WriteRune(r)
			flush()
		case '\n':
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()

	return segments
}

// splitAtWords packs whitespace-separated words under both limits. A
// single word longer than the character limit is emitted on its own,
// there is nowhere left to cut.
func (s *Splitter) splitAtWords(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var parts []string
	current := words[0]
	currentWords := 1
	for _, word := range words[1:] {
		if s.fits(utf8.RuneCountInString(current)+1+utf8.RuneCountInString(word), currentWords+1) {
			current += " " + word
			currentWords++
			continue
		}
		parts = append(parts, current)
		current = word
		currentWords = 1
	}
	parts = append(parts, current)

	return parts
}
