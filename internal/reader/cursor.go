package reader

// activeCursor returns the cursor of the authoritative coordinate
// space: audio units in text-only mode, display sentences otherwise.
// -1 means no cursor.
func (s *Session) activeCursor() int {
	if s.settings.TextOnly {
		return s.audioIdx
	}
	return s.displayIdx
}

// activeCount returns the sentence count of page p in the active
// coordinate space. Audio counts for pages other than the current one
// are computed transiently; the single plan cache slot belongs to the
// current page alone.
func (s *Session) activeCount(p int) int {
	if p < 0 || p >= len(s.pages) {
		return 0
	}
	if !s.settings.TextOnly {
		return s.pages[p].SentenceCount()
	}
	if p == s.current {
		return s.plan().AudioCount()
	}
	return s.norm.PlanPage(s.pages[p].Sentences).AudioCount()
}

// setActiveCursor sets the authoritative cursor to idx and derives the
// other space's cursor through the current page's plan.
func (s *Session) setActiveCursor(idx int) {
	if s.settings.TextOnly {
		s.audioIdx = idx
		s.displayIdx = s.plan().DisplayFor(idx)
		return
	}
	s.displayIdx = idx
	s.audioIdx = s.plan().AudioFor(idx)
}

// setPage clamps n and makes it the current page: the display cursor
// resets to the first sentence, the plan cache is dropped, the audio
// cursor is re-derived in text-only mode, and search matches are
// recomputed for the new page.
func (s *Session) setPage(n int) {
	if len(s.pages) == 0 {
		return
	}
	n = clampInt(n, 0, len(s.pages)-1)

	s.current = n
	s.invalidatePlan()

	if s.pages[n].SentenceCount() > 0 {
		s.displayIdx = 0
	} else {
		s.displayIdx = -1
	}
	s.audioIdx = -1
	if s.settings.TextOnly && s.displayIdx >= 0 {
		s.audioIdx = s.plan().AudioFor(s.displayIdx)
	}

	s.refreshSearch()
}

func (s *Session) nextPage() {
	s.setPage(s.current + 1)
}

func (s *Session) prevPage() {
	s.setPage(s.current - 1)
}

// landOnPage is the seek variant of setPage: same invalidation, but the
// active cursor lands on idx instead of the page start.
func (s *Session) landOnPage(p, idx int) {
	s.current = p
	s.invalidatePlan()
	s.setActiveCursor(idx)
	s.refreshSearch()
}

// sentenceClick selects sentence idx in the active coordinate space and
// derives the other cursor. Out-of-range clicks are ignored.
func (s *Session) sentenceClick(idx int) {
	if s.settings.TextOnly {
		if idx < 0 || idx >= s.plan().AudioCount() {
			return
		}
		s.audioIdx = idx
		s.displayIdx = s.plan().DisplayFor(idx)
		return
	}
	if idx < 0 || idx >= s.pages[s.current].SentenceCount() {
		return
	}
	s.displayIdx = idx
	s.audioIdx = s.plan().AudioFor(idx)
}

// moveSentence shifts the active cursor by delta, clamped to the
// current page.
func (s *Session) moveSentence(delta int) {
	n := s.activeCount(s.current)
	if n == 0 {
		return
	}
	cur := s.activeCursor()
	if cur < 0 {
		cur = 0
	}
	s.setActiveCursor(clampInt(cur+delta, 0, n-1))
}

// toggleTextOnly flips the mode. The newly authoritative cursor is
// derived from the one that was authoritative; search moves to the new
// coordinate space.
func (s *Session) toggleTextOnly() {
	s.settings.TextOnly = !s.settings.TextOnly
	if s.settings.TextOnly {
		if s.displayIdx >= 0 {
			s.audioIdx = s.plan().AudioFor(s.displayIdx)
		} else {
			s.audioIdx = -1
		}
	} else {
		if s.audioIdx >= 0 {
			s.displayIdx = s.plan().DisplayFor(s.audioIdx)
		}
	}
	s.refreshSearch()
}
