package reader

// PlaybackState tracks the speech-playback cursor mode. It is
// orthogonal to the cursor itself: it only governs whether seek
// operations report the playback as still active.
type PlaybackState int

const (
	// StateIdle means no playback is underway.
	StateIdle PlaybackState = iota
	// StatePlaying means the host is feeding audio units to a speech
	// engine.
	StatePlaying
	// StatePaused means playback stopped mid-book and may resume.
	StatePaused
)

// String returns the lowercase state name.
func (s PlaybackState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// IsActive reports whether playback is underway or merely paused.
func (s PlaybackState) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// ttsPlay starts playback on the current page. A page with no
// speakable content forces Idle and leaves the cursor alone.
func (s *Session) ttsPlay() {
	if s.activeCount(s.current) == 0 {
		s.playback = StateIdle
		return
	}
	if s.activeCursor() < 0 {
		s.setActiveCursor(0)
	}
	s.playback = StatePlaying
}

// ttsPause pauses only out of Playing.
func (s *Session) ttsPause() {
	if s.playback == StatePlaying {
		s.playback = StatePaused
	}
}

// ttsTogglePlayPause dispatches on the current state.
func (s *Session) ttsTogglePlayPause() {
	if s.playback == StatePlaying {
		s.ttsPause()
	} else {
		s.ttsPlay()
	}
}

// ttsPlayFromPageStart forces the cursor to the first sentence of the
// page before playing.
func (s *Session) ttsPlayFromPageStart() {
	if s.activeCount(s.current) == 0 {
		s.playback = StateIdle
		return
	}
	s.setActiveCursor(0)
	s.playback = StatePlaying
}

// ttsPlayFromHighlight plays from the existing cursor, falling back to
// the page start when there is none.
func (s *Session) ttsPlayFromHighlight() {
	if s.activeCursor() < 0 {
		s.ttsPlayFromPageStart()
		return
	}
	s.playback = StatePlaying
}

// ttsRepeatSentence re-speaks the current sentence. The cursor does not
// move, so with a cursor present there is nothing to do.
func (s *Session) ttsRepeatSentence() {
	if s.activeCursor() < 0 {
		s.ttsPlayFromPageStart()
	}
}

// ttsStop forces Idle from any state.
func (s *Session) ttsStop() {
	s.playback = StateIdle
}

// ttsSeekNext advances the cursor by one sentence, crossing onto the
// next page that has speakable content. Running off the end of the book
// while Playing drops to Paused; the cursor never wraps.
func (s *Session) ttsSeekNext() {
	cur := s.activeCursor()
	if cur+1 < s.activeCount(s.current) {
		s.setActiveCursor(cur + 1)
		return
	}
	for p := s.current + 1; p < len(s.pages); p++ {
		if s.activeCount(p) > 0 {
			s.landOnPage(p, 0)
			return
		}
	}
	if s.playback == StatePlaying {
		s.playback = StatePaused
	}
}

// ttsSeekPrev backs the cursor up by one sentence, crossing onto the
// previous page that has speakable content and landing on its last
// sentence. At the very start it is a silent no-op.
func (s *Session) ttsSeekPrev() {
	cur := s.activeCursor()
	if cur > 0 {
		s.setActiveCursor(cur - 1)
		return
	}
	for p := s.current - 1; p >= 0; p-- {
		if n := s.activeCount(p); n > 0 {
			s.landOnPage(p, n-1)
			return
		}
	}
}

// canSeekNext reports whether ttsSeekNext would move the cursor.
func (s *Session) canSeekNext() bool {
	if s.activeCursor()+1 < s.activeCount(s.current) {
		return true
	}
	for p := s.current + 1; p < len(s.pages); p++ {
		if s.activeCount(p) > 0 {
			return true
		}
	}
	return false
}

// canSeekPrev reports whether ttsSeekPrev would move the cursor.
func (s *Session) canSeekPrev() bool {
	if s.activeCursor() > 0 {
		return true
	}
	for p := s.current - 1; p >= 0; p-- {
		if s.activeCount(p) > 0 {
			return true
		}
	}
	return false
}
