package reader

// Stats is the per-snapshot statistics block. Counts are display-space;
// progress follows the active cursor.
type Stats struct {
	PageWords     int `json:"page_words"`
	PageSentences int `json:"page_sentences"`

	WordsBefore     int `json:"words_before"`
	SentencesBefore int `json:"sentences_before"`
	TotalWords      int `json:"total_words"`
	TotalSentences  int `json:"total_sentences"`

	// SentencesRead counts display sentences up to and including the
	// current position. Monotonic in reading order and bounded by the
	// page's sentence count.
	SentencesRead int `json:"sentences_read"`

	PageProgress float64 `json:"page_progress"`
	EffectiveWPM float64 `json:"effective_wpm"`

	PageRemainingSeconds float64 `json:"page_remaining_seconds"`
	BookRemainingSeconds float64 `json:"book_remaining_seconds"`
}

// stats assembles the statistics block for the current position.
func (s *Session) stats() Stats {
	page := s.pages[s.current]

	st := Stats{
		PageWords:       page.WordCount,
		PageSentences:   page.SentenceCount(),
		WordsBefore:     s.wordsBefore[s.current],
		SentencesBefore: s.sentencesBefore[s.current],
		TotalWords:      s.totalWords,
		TotalSentences:  s.totalSentences,
		PageProgress:    s.pageProgress(),
		EffectiveWPM:    s.effectiveWPM(),
	}

	st.SentencesRead = st.SentencesBefore + clampInt(s.activeCursor()+1, 0, st.PageSentences)

	if st.EffectiveWPM > 0 {
		st.PageRemainingSeconds = float64(st.PageWords) / st.EffectiveWPM * 60 * (1 - st.PageProgress)

		bookProgress := 0.0
		if st.TotalWords > 0 {
			read := float64(st.WordsBefore) + float64(st.PageWords)*st.PageProgress
			bookProgress = clampFloat(read/float64(st.TotalWords), 0, 1)
		}
		st.BookRemainingSeconds = float64(st.TotalWords) / st.EffectiveWPM * 60 * (1 - bookProgress)
	}

	return st
}

// pageProgress is the fraction of the current page's active-space
// sentences at or before the cursor; 0 on a page with no active
// content.
func (s *Session) pageProgress() float64 {
	n := s.activeCount(s.current)
	if n == 0 {
		return 0.0
	}
	cur := clampInt(s.activeCursor(), 0, n-1)
	return float64(1+cur) / float64(n)
}

// effectiveWPM scales the base reading rate by the TTS speed, floored
// so estimates stay finite at crawl speeds.
func (s *Session) effectiveWPM() float64 {
	wpm := s.baseWPM * s.settings.TTSSpeed
	if wpm < s.floorWPM {
		return s.floorWPM
	}
	return wpm
}
