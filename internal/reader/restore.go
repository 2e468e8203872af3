package reader

import (
	"github.com/sahilm/fuzzy"
)

// Position is a saved cursor handed in at construction. SentenceText,
// when present, wins over SentenceIdx: re-segmentation can shift
// indices between runs, but the sentence itself is findable again.
type Position struct {
	Page         int
	SentenceIdx  int
	SentenceText string
	ScrollY      float64
}

// restorePosition moves the cursor to a saved position against the
// current pagination, then recomputes search for the landing page.
func (s *Session) restorePosition(pos Position) {
	page := clampInt(pos.Page, 0, len(s.pages)-1)
	sentences := s.pages[page].Sentences

	idx := -1
	if pos.SentenceText != "" && len(sentences) > 0 {
		idx = closestSentence(sentences, pos.SentenceText)
	}
	if idx < 0 && pos.SentenceIdx >= 0 && len(sentences) > 0 {
		idx = clampInt(pos.SentenceIdx, 0, len(sentences)-1)
	}
	if idx < 0 && len(sentences) > 0 {
		idx = 0
	}

	s.landCursor(page, idx)
	s.scrollY = pos.ScrollY
	s.refreshSearch()
}

// closestSentence fuzzy-matches the saved sentence text against the
// page. -1 when nothing on the page resembles it.
func closestSentence(sentences []string, text string) int {
	matches := fuzzy.Find(text, sentences)
	if len(matches) == 0 {
		return -1
	}
	return matches[0].Index
}

// Position captures the current cursor for persistence. The sentence
// index and text are display-space regardless of mode, matching what
// restorePosition expects back.
func (s *Session) Position() Position {
	pos := Position{
		Page:        s.current,
		SentenceIdx: s.displayIdx,
		ScrollY:     s.scrollY,
	}
	if s.displayIdx >= 0 && s.displayIdx < s.pages[s.current].SentenceCount() {
		pos.SentenceText = s.pages[s.current].Sentences[s.displayIdx]
	}
	return pos
}
