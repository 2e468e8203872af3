package reader

import "testing"

func TestPlaybackStateString(t *testing.T) {
	tests := []struct {
		state PlaybackState
		want  string
	}{
		{state: StateIdle, want: "idle"},
		{state: StatePlaying, want: "playing"},
		{state: StatePaused, want: "paused"},
		{state: PlaybackState(99), want: "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if StateIdle.IsActive() {
		t.Errorf("StateIdle.IsActive() = true, want false")
	}
	if !StatePaused.IsActive() {
		t.Errorf("StatePaused.IsActive() = false, want true")
	}
}

func TestPlaybackLifecycle(t *testing.T) {
	s := newTestSession(t, "First thing happens. Second thing happens. Third thing happens.", Config{})

	steps := []struct {
		name   string
		cmd    Command
		state  string
		cursor int
	}{
		{name: "play", cmd: TTSPlay{}, state: "playing", cursor: 0},
		{name: "pause", cmd: TTSPause{}, state: "paused", cursor: 0},
		{name: "toggle resumes", cmd: TTSTogglePlayPause{}, state: "playing", cursor: 0},
		{name: "toggle pauses", cmd: TTSTogglePlayPause{}, state: "paused", cursor: 0},
		{name: "stop", cmd: TTSStop{}, state: "idle", cursor: 0},
		{name: "pause while idle", cmd: TTSPause{}, state: "idle", cursor: 0},
		{name: "seek while idle", cmd: TTSSeekNext{}, state: "idle", cursor: 1},
		{name: "play from highlight", cmd: TTSPlayFromHighlight{}, state: "playing", cursor: 1},
		{name: "repeat keeps place", cmd: TTSRepeatSentence{}, state: "playing", cursor: 1},
		{name: "play from page start", cmd: TTSPlayFromPageStart{}, state: "playing", cursor: 0},
		{name: "stop again", cmd: TTSStop{}, state: "idle", cursor: 0},
	}
	for _, st := range steps {
		t.Run(st.name, func(t *testing.T) {
			snap := s.Apply(st.cmd)
			if snap.TTS.State != st.state {
				t.Errorf("TTS.State = %q, want %q", snap.TTS.State, st.state)
			}
			if snap.TTS.CurrentSentence != st.cursor {
				t.Errorf("TTS.CurrentSentence = %d, want %d", snap.TTS.CurrentSentence, st.cursor)
			}
		})
	}
}

func TestPlayOnEmptyBookStaysIdle(t *testing.T) {
	s := newTestSession(t, "", Config{})
	snap := s.Apply(TTSPlay{})
	if snap.TTS.State != "idle" {
		t.Errorf("TTS.State = %q, want %q", snap.TTS.State, "idle")
	}
	if snap.TTS.CurrentSentence != -1 {
		t.Errorf("TTS.CurrentSentence = %d, want -1", snap.TTS.CurrentSentence)
	}
}

func TestPausedSurvivesPageTurn(t *testing.T) {
	text := pageFiller("alpha") + " " + pageFiller("bravo")
	s := newTestSession(t, text, Config{Settings: smallPageSettings()})

	s.Apply(TTSPlay{})
	s.Apply(TTSPause{})
	snap := s.Apply(NextPage{})

	if snap.CurrentPage != 1 {
		t.Fatalf("CurrentPage = %d, want 1", snap.CurrentPage)
	}
	if snap.TTS.State != "paused" {
		t.Errorf("TTS.State = %q, want %q", snap.TTS.State, "paused")
	}
	if snap.TTS.CurrentSentence != 0 {
		t.Errorf("TTS.CurrentSentence = %d, want 0", snap.TTS.CurrentSentence)
	}
}

func TestSeekPastBookEndPausesPlayback(t *testing.T) {
	s := newTestSession(t, "Only one sentence here.", Config{})
	s.Apply(TTSPlay{})

	snap := s.Apply(TTSSeekNext{})
	if snap.TTS.State != "paused" {
		t.Errorf("TTS.State = %q, want %q", snap.TTS.State, "paused")
	}
	if snap.TTS.CurrentSentence != 0 {
		t.Errorf("TTS.CurrentSentence = %d, want cursor unchanged", snap.TTS.CurrentSentence)
	}

	// Seeking past the end while idle stays idle.
	s.Apply(TTSStop{})
	snap = s.Apply(TTSSeekNext{})
	if snap.TTS.State != "idle" {
		t.Errorf("TTS.State = %q, want %q", snap.TTS.State, "idle")
	}
}

func TestSeekBeforeBookStartIsSilent(t *testing.T) {
	s := newTestSession(t, "Only one sentence here.", Config{})
	s.Apply(TTSPlay{})

	snap := s.Apply(TTSSeekPrev{})
	if snap.TTS.State != "playing" {
		t.Errorf("TTS.State = %q, want %q", snap.TTS.State, "playing")
	}
	if snap.TTS.CurrentSentence != 0 {
		t.Errorf("TTS.CurrentSentence = %d, want 0", snap.TTS.CurrentSentence)
	}
}

func TestSeekCrossesPages(t *testing.T) {
	text := pageFiller("alpha") + " " + pageFiller("bravo")
	s := newTestSession(t, text, Config{Settings: smallPageSettings()})
	s.Apply(TTSPlay{})

	snap := s.Apply(TTSSeekNext{})
	if snap.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", snap.CurrentPage)
	}
	if snap.TTS.CurrentSentence != 0 {
		t.Errorf("TTS.CurrentSentence = %d, want 0", snap.TTS.CurrentSentence)
	}
	if snap.TTS.State != "playing" {
		t.Errorf("TTS.State = %q, want %q", snap.TTS.State, "playing")
	}

	snap = s.Apply(TTSSeekPrev{})
	if snap.CurrentPage != 0 {
		t.Errorf("CurrentPage = %d, want 0", snap.CurrentPage)
	}
	if snap.TTS.CurrentSentence != 0 {
		t.Errorf("TTS.CurrentSentence = %d, want last sentence of page 0", snap.TTS.CurrentSentence)
	}
}

func TestSeekSkipsSilentPage(t *testing.T) {
	text := pageFiller("alpha") + " " + silentFiller() + " " + pageFiller("charlie")
	s := newTestSession(t, text, Config{Settings: smallPageSettings()})

	// In audio space the middle page has nothing to speak, so seeks hop
	// straight over it.
	s.Apply(ToggleTextOnly{})
	s.Apply(TTSPlay{})

	snap := s.Apply(TTSSeekNext{})
	if snap.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, want 2", snap.CurrentPage)
	}
	if snap.TTS.CurrentSentence != 0 {
		t.Errorf("TTS.CurrentSentence = %d, want 0", snap.TTS.CurrentSentence)
	}
	if snap.TTS.State != "playing" {
		t.Errorf("TTS.State = %q, want %q", snap.TTS.State, "playing")
	}

	snap = s.Apply(TTSSeekPrev{})
	if snap.CurrentPage != 0 {
		t.Errorf("CurrentPage = %d, want 0", snap.CurrentPage)
	}
}

func TestCanSeekFlags(t *testing.T) {
	text := pageFiller("alpha") + " " + pageFiller("bravo")
	s := newTestSession(t, text, Config{Settings: smallPageSettings()})

	snap := s.Snapshot()
	if snap.TTS.CanSeekPrev {
		t.Errorf("CanSeekPrev = true at book start")
	}
	if !snap.TTS.CanSeekNext {
		t.Errorf("CanSeekNext = false with a page ahead")
	}

	snap = s.Apply(SetPage{Page: 1})
	if !snap.TTS.CanSeekPrev {
		t.Errorf("CanSeekPrev = false with a page behind")
	}
	if snap.TTS.CanSeekNext {
		t.Errorf("CanSeekNext = true at book end")
	}
}

func TestPlayOnSilentPageForcesIdle(t *testing.T) {
	text := pageFiller("alpha") + " " + silentFiller() + " " + pageFiller("charlie")
	s := newTestSession(t, text, Config{Settings: smallPageSettings()})
	s.Apply(ToggleTextOnly{})
	s.Apply(SetPage{Page: 1})
	s.Apply(TTSPlay{})
	s.Apply(TTSPause{})

	snap := s.Snapshot()
	if snap.TTS.State != "idle" {
		t.Errorf("TTS.State = %q, want %q", snap.TTS.State, "idle")
	}
	if snap.TTS.SentenceCount != 0 {
		t.Errorf("TTS.SentenceCount = %d, want 0", snap.TTS.SentenceCount)
	}
}
