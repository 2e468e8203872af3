package reader

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestStatsSinglePage(t *testing.T) {
	s := newTestSession(t, "One two three. Four five. Six.", Config{})
	st := s.Snapshot().Stats

	if st.PageWords != 6 || st.TotalWords != 6 {
		t.Errorf("words = %d/%d, want 6/6", st.PageWords, st.TotalWords)
	}
	if st.PageSentences != 3 || st.TotalSentences != 3 {
		t.Errorf("sentences = %d/%d, want 3/3", st.PageSentences, st.TotalSentences)
	}
	if st.WordsBefore != 0 || st.SentencesBefore != 0 {
		t.Errorf("before counts = %d/%d, want 0/0", st.WordsBefore, st.SentencesBefore)
	}
	if st.SentencesRead != 1 {
		t.Errorf("SentencesRead = %d, want 1", st.SentencesRead)
	}
	if !almostEqual(st.PageProgress, 1.0/3.0) {
		t.Errorf("PageProgress = %v, want 1/3", st.PageProgress)
	}
	if st.EffectiveWPM != 150 {
		t.Errorf("EffectiveWPM = %v, want 150", st.EffectiveWPM)
	}
	if !almostEqual(st.PageRemainingSeconds, 1.6) {
		t.Errorf("PageRemainingSeconds = %v, want 1.6", st.PageRemainingSeconds)
	}
	if !almostEqual(st.BookRemainingSeconds, 1.6) {
		t.Errorf("BookRemainingSeconds = %v, want 1.6", st.BookRemainingSeconds)
	}
}

func TestStatsAdvanceWithCursor(t *testing.T) {
	s := newTestSession(t, "One two three. Four five. Six.", Config{})

	snap := s.Apply(NextSentence{})
	if snap.Stats.SentencesRead != 2 {
		t.Errorf("SentencesRead = %d, want 2", snap.Stats.SentencesRead)
	}
	if !almostEqual(snap.Stats.PageProgress, 2.0/3.0) {
		t.Errorf("PageProgress = %v, want 2/3", snap.Stats.PageProgress)
	}
	if !almostEqual(snap.TTS.ProgressPct, 200.0/3.0) {
		t.Errorf("ProgressPct = %v, want 66.7", snap.TTS.ProgressPct)
	}

	snap = s.Apply(NextSentence{})
	if !almostEqual(snap.Stats.PageRemainingSeconds, 0) {
		t.Errorf("PageRemainingSeconds at page end = %v, want 0", snap.Stats.PageRemainingSeconds)
	}
}

func TestStatsAcrossPages(t *testing.T) {
	text := pageFiller("alpha") + " " + pageFiller("bravo")
	s := newTestSession(t, text, Config{Settings: smallPageSettings()})

	st := s.Apply(NextPage{}).Stats
	if st.WordsBefore != 36 {
		t.Errorf("WordsBefore = %d, want 36", st.WordsBefore)
	}
	if st.SentencesBefore != 1 {
		t.Errorf("SentencesBefore = %d, want 1", st.SentencesBefore)
	}
	if st.TotalWords != 72 {
		t.Errorf("TotalWords = %d, want 72", st.TotalWords)
	}
	if st.SentencesRead != 2 {
		t.Errorf("SentencesRead = %d, want 2", st.SentencesRead)
	}
}

func TestEffectiveWPM(t *testing.T) {
	tests := []struct {
		name     string
		baseWPM  float64
		floorWPM float64
		speed    float64
		want     float64
	}{
		{name: "default rate", speed: 1.0, want: 150},
		{name: "double speed", speed: 2.0, want: 300},
		{name: "crawl hits floor", speed: 0.25, want: 60},
		{name: "custom base", baseWPM: 200, floorWPM: 50, speed: 2.0, want: 400},
		{name: "custom floor", baseWPM: 100, floorWPM: 90, speed: 0.5, want: 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, "A short book.", Config{BaseWPM: tt.baseWPM, FloorWPM: tt.floorWPM})
			snap := s.Apply(ApplySettings{Patch: Patch{TTSSpeed: f64p(tt.speed)}})
			if got := snap.Stats.EffectiveWPM; got != tt.want {
				t.Errorf("EffectiveWPM = %v, want %v", got, tt.want)
			}
		})
	}
}
