package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sguzman/lantern-leaf/internal/reader"
)

// TestStatusStates tests icons and counters per playback state.
func TestStatusStates(t *testing.T) {
	r := NewRenderer(80)

	tests := []struct {
		name string
		tts  reader.TTSView
		want []string
	}{
		{
			name: "playing",
			tts:  reader.TTSView{State: "playing", CurrentSentence: 2, SentenceCount: 10, ProgressPct: 30},
			want: []string{"▶", "playing", "3/10"},
		},
		{
			name: "paused",
			tts:  reader.TTSView{State: "paused", CurrentSentence: 0, SentenceCount: 4},
			want: []string{"⏸", "paused", "1/4"},
		},
		{
			name: "idle",
			tts:  reader.TTSView{State: "idle", CurrentSentence: -1, SentenceCount: 4},
			want: []string{"■", "idle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Status(reader.Snapshot{TTS: tt.tts})
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Status() = %q, want it to contain %q", got, w)
				}
			}
		})
	}

	idle := r.Status(reader.Snapshot{TTS: reader.TTSView{State: "idle", SentenceCount: 4}})
	if strings.Contains(idle, "1/4") {
		t.Errorf("idle status should not show a counter, got %q", idle)
	}
}

// TestStatusSearchSummary tests the search tail of the status line.
func TestStatusSearchSummary(t *testing.T) {
	r := NewRenderer(80)

	snap := reader.Snapshot{
		TTS:    reader.TTSView{State: "idle"},
		Search: reader.SearchState{Query: "cat", Matches: []int{0, 2}, Selected: -1},
	}
	got := r.Status(snap)
	if !strings.Contains(got, `search "cat" -/2`) {
		t.Errorf("Status() = %q, want unselected search summary", got)
	}

	snap.Search.Selected = 1
	got = r.Status(snap)
	if !strings.Contains(got, `search "cat" 2/2`) {
		t.Errorf("Status() = %q, want selected search summary", got)
	}
}

// TestProgressBar tests fill proportions and clamping.
func TestProgressBar(t *testing.T) {
	r := NewRenderer(80)
	color := stateColor("idle")

	bar := r.progressBar(0.5, 20, color)
	if got := strings.Count(bar, "█"); got != 10 {
		t.Errorf("half bar filled = %d, want 10", got)
	}
	if got := strings.Count(bar, "░"); got != 10 {
		t.Errorf("half bar empty = %d, want 10", got)
	}

	if got := strings.Count(r.progressBar(1.5, 20, color), "█"); got != 20 {
		t.Errorf("overfull bar filled = %d, want 20", got)
	}
	if got := strings.Count(r.progressBar(-0.5, 20, color), "█"); got != 0 {
		t.Errorf("negative bar filled = %d, want 0", got)
	}
	if got := r.progressBar(0.5, 5, color); got != "" {
		t.Errorf("narrow bar = %q, want empty", got)
	}
}

// TestPageRender tests the page surface: header, numbering, cursor.
func TestPageRender(t *testing.T) {
	r := NewRenderer(80)
	var out bytes.Buffer

	snap := reader.Snapshot{
		SourceName:  "book.txt",
		CurrentPage: 0,
		TotalPages:  3,
		Sentences:   []string{"One short line.", "Two short lines."},
		Highlighted: 1,
		Settings:    reader.DefaultSettings(),
		TTS:         reader.TTSView{State: "idle"},
	}
	r.Page(&out, snap)
	got := out.String()

	for _, w := range []string{"book.txt", "page 1/3", "One short line.", "Two short lines.", "▌", "  1", "  2"} {
		if !strings.Contains(got, w) {
			t.Errorf("Page() output missing %q:\n%s", w, got)
		}
	}
}

// TestPageRenderTextOnlyTag tests the header mode tag.
func TestPageRenderTextOnlyTag(t *testing.T) {
	r := NewRenderer(80)
	var out bytes.Buffer

	snap := reader.Snapshot{
		SourceName: "book.txt",
		TotalPages: 1,
		TextOnly:   true,
		Settings:   reader.DefaultSettings(),
		TTS:        reader.TTSView{State: "idle"},
	}
	r.Page(&out, snap)

	if !strings.Contains(out.String(), "[text]") {
		t.Errorf("text-only header should carry the mode tag:\n%s", out.String())
	}
}

// TestPageRenderEmptyNotes tests the placeholder for empty pages.
func TestPageRenderEmptyNotes(t *testing.T) {
	r := NewRenderer(80)

	var out bytes.Buffer
	r.Page(&out, reader.Snapshot{
		SourceName: "book.txt",
		TotalPages: 1,
		Settings:   reader.DefaultSettings(),
		TTS:        reader.TTSView{State: "idle"},
	})
	if !strings.Contains(out.String(), "(empty page)") {
		t.Errorf("empty page should show a placeholder:\n%s", out.String())
	}

	out.Reset()
	r.Page(&out, reader.Snapshot{
		SourceName: "book.txt",
		TotalPages: 1,
		TextOnly:   true,
		Settings:   reader.DefaultSettings(),
		TTS:        reader.TTSView{State: "idle"},
	})
	if !strings.Contains(out.String(), "(no spoken text on this page)") {
		t.Errorf("silent page should show the spoken placeholder:\n%s", out.String())
	}
}

// TestPageRenderTruncatesLongNames tests header truncation.
func TestPageRenderTruncatesLongNames(t *testing.T) {
	r := NewRenderer(80)
	var out bytes.Buffer

	snap := reader.Snapshot{
		SourceName: strings.Repeat("verylongname", 12),
		TotalPages: 1,
		Settings:   reader.DefaultSettings(),
		TTS:        reader.TTSView{State: "idle"},
	}
	r.Page(&out, snap)

	if !strings.Contains(out.String(), "…") {
		t.Errorf("long source name should be truncated with an ellipsis:\n%s", out.String())
	}
}

// TestStatsRender tests the statistics block formatting.
func TestStatsRender(t *testing.T) {
	r := NewRenderer(80)
	var out bytes.Buffer

	snap := reader.Snapshot{
		Stats: reader.Stats{
			PageWords:            468,
			WordsBefore:          1000,
			TotalWords:           56789,
			SentencesRead:        67,
			TotalSentences:       2345,
			PageProgress:         0.5,
			EffectiveWPM:         150,
			PageRemainingSeconds: 83,
			BookRemainingSeconds: 754,
		},
	}
	r.Stats(&out, snap)
	got := out.String()

	for _, w := range []string{"1,234", "56,789", "67", "2,345", "150 wpm", "1:23", "12:34"} {
		if !strings.Contains(got, w) {
			t.Errorf("Stats() output missing %q:\n%s", w, got)
		}
	}
}

// TestHexColor tests RGBA to terminal hex conversion.
func TestHexColor(t *testing.T) {
	tests := []struct {
		color reader.Color
		want  string
	}{
		{reader.Color{R: 1, G: 0.9, B: 0.3, A: 0.35}, "#FFE64C"},
		{reader.Color{R: 0, G: 0, B: 0, A: 1}, "#000000"},
		{reader.Color{R: 2, G: -1, B: 0.5, A: 1}, "#FF0080"},
	}

	for _, tt := range tests {
		if got := hexColor(tt.color); got != tt.want {
			t.Errorf("hexColor(%+v) = %q, want %q", tt.color, got, tt.want)
		}
	}
}

// TestClock tests second formatting.
func TestClock(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{5, "0:05"},
		{75, "1:15"},
		{3675, "61:15"},
		{-5, "0:00"},
	}

	for _, tt := range tests {
		if got := clock(tt.seconds); got != tt.want {
			t.Errorf("clock(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

// TestNewRendererWidthFallback tests the minimum width guard.
func TestNewRendererWidthFallback(t *testing.T) {
	if r := NewRenderer(0); r.width != 80 {
		t.Errorf("width = %d, want 80", r.width)
	}
	if r := NewRenderer(120); r.width != 120 {
		t.Errorf("width = %d, want 120", r.width)
	}
}
