package speech

import (
	"testing"
)

// TestCleanPipeline tests individual cleanup steps through Clean.
func TestCleanPipeline(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		in   string
		want string
	}{
		{
			name: "markdown link keeps text",
			in:   "Read [the appendix](https://example.com/a) twice.",
			want: "Read the appendix twice.",
		},
		{
			name: "inline code dropped",
			in:   "Run `make all` now.",
			want: "Run now.",
		},
		{
			name: "numeric citations dropped",
			in:   "Proved earlier [12] and later (3).",
			want: "Proved earlier and later.",
		},
		{
			name: "citation ranges dropped",
			in:   "Several sources [1, 2] agree [4-6].",
			want: "Several sources agree.",
		},
		{
			name: "bracket and brace asides dropped",
			in:   "The king [of Prussia] left {sic} early.",
			want: "The king left early.",
		},
		{
			name: "parenthetical text survives",
			in:   "He paused (briefly) there.",
			want: "He paused (briefly) there.",
		},
		{
			name: "replacements longest match first",
			opts: Options{Replacements: map[string]string{"ab": "SHORT", "abc": "LONG"}},
			in:   "abc ab",
			want: "LONG SHORT",
		},
		{
			name: "drop tokens",
			opts: Options{DropTokens: []string{"†"}},
			in:   "A marked† word.",
			want: "A marked word.",
		},
		{
			name: "brand whole word case insensitive",
			opts: Options{BrandNames: map[string]string{"Nginx": "engine x"}},
			in:   "nginx serves, Nginxy does not.",
			want: "engine x serves, Nginxy does not.",
		},
		{
			name: "year spoken",
			in:   "Published in 1984 here.",
			want: "Published in nineteen eighty four here.",
		},
		{
			name: "year inside longer number untouched",
			in:   "Serial 19840 stays.",
			want: "Serial 19840 stays.",
		},
		{
			name: "acronym spelled out",
			opts: Options{Acronyms: []string{"GPU"}},
			in:   "The GPU hums.",
			want: "The G P U hums.",
		},
		{
			name: "acronym with trailing digits",
			opts: Options{Acronyms: []string{"MP"}},
			in:   "An MP3 file.",
			want: "An M P three file.",
		},
		{
			name: "whitespace collapsed and pre-punct space removed",
			in:   "Too   many  spaces , yes ?",
			want: "Too many spaces, yes?",
		},
		{
			name: "link stripped before year rewrite",
			in:   "See [1984](https://example.com).",
			want: "See nineteen eighty four.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNormalizer(tt.opts)
			if got := n.Clean(tt.in); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// TestPlanPage tests audio unit selection and the index mappings.
func TestPlanPage(t *testing.T) {
	n := NewNormalizer(Options{})

	display := []string{
		"The first sentence.",
		"[7]",
		"x",
		"The fourth sentence.",
	}
	plan := n.PlanPage(display)

	if plan.AudioCount() != 2 {
		t.Fatalf("AudioCount() = %d, want 2", plan.AudioCount())
	}
	wantD2A := []int{0, -1, -1, 1}
	for i, want := range wantD2A {
		if plan.DisplayToAudio[i] != want {
			t.Errorf("DisplayToAudio[%d] = %d, want %d", i, plan.DisplayToAudio[i], want)
		}
	}
	wantA2D := []int{0, 3}
	for j, want := range wantA2D {
		if plan.AudioToDisplay[j] != want {
			t.Errorf("AudioToDisplay[%d] = %d, want %d", j, plan.AudioToDisplay[j], want)
		}
	}
}

// TestPlanPageInvariants tests the structural mapping invariants over a
// mixed page.
func TestPlanPageInvariants(t *testing.T) {
	n := NewNormalizer(Options{DropTokens: []string{"SKIPME"}})

	display := []string{
		"Keep me first.",
		"SKIPME",
		"Keep me second [1].",
		"...",
		"Keep me third.",
	}
	plan := n.PlanPage(display)

	if len(plan.DisplayToAudio) != len(display) {
		t.Fatalf("DisplayToAudio length = %d, want %d", len(plan.DisplayToAudio), len(display))
	}
	if len(plan.AudioToDisplay) != plan.AudioCount() {
		t.Fatalf("AudioToDisplay length = %d, want %d", len(plan.AudioToDisplay), plan.AudioCount())
	}
	for i, j := range plan.DisplayToAudio {
		if j >= plan.AudioCount() {
			t.Errorf("DisplayToAudio[%d] = %d out of range", i, j)
		}
	}
	prev := -1
	for j, d := range plan.AudioToDisplay {
		if d < 0 || d >= len(display) {
			t.Errorf("AudioToDisplay[%d] = %d out of range", j, d)
		}
		if d <= prev {
			t.Errorf("AudioToDisplay not monotonic at %d: %v", j, plan.AudioToDisplay)
		}
		prev = d
	}
	for i, j := range plan.DisplayToAudio {
		if j >= 0 && plan.AudioToDisplay[j] != i {
			t.Errorf("mapping disagrees at display %d: audio %d maps back to %d", i, j, plan.AudioToDisplay[j])
		}
	}
}

// TestPlanPageFallback tests the sentence-mode fallback when a cleanup
// step eats a marker.
func TestPlanPageFallback(t *testing.T) {
	n := NewNormalizer(Options{})

	// The unbalanced brackets close across the sentence border, so page
	// mode would remove the joined marker.
	display := []string{"keep [this part", "and] the rest"}
	plan := n.PlanPage(display)

	if len(plan.DisplayToAudio) != 2 {
		t.Fatalf("DisplayToAudio length = %d, want 2", len(plan.DisplayToAudio))
	}
	if plan.AudioCount() != 2 {
		t.Fatalf("AudioCount() = %d, want 2 (fallback keeps both)", plan.AudioCount())
	}
	for i := 0; i < 2; i++ {
		if plan.DisplayToAudio[i] != i {
			t.Errorf("DisplayToAudio[%d] = %d, want %d", i, plan.DisplayToAudio[i], i)
		}
	}
}

// TestPlanPageEmpty tests the empty page.
func TestPlanPageEmpty(t *testing.T) {
	n := NewNormalizer(Options{})

	plan := n.PlanPage(nil)
	if plan.AudioCount() != 0 || len(plan.DisplayToAudio) != 0 {
		t.Errorf("PlanPage(nil) = %+v, want empty plan", plan)
	}
}

// TestAudioFor tests nearest-neighbor display to audio resolution.
func TestAudioFor(t *testing.T) {
	plan := Plan{
		AudioSentences: []string{"a", "b"},
		DisplayToAudio: []int{-1, 0, -1, 1, -1},
		AudioToDisplay: []int{1, 3},
	}

	tests := []struct {
		name       string
		displayIdx int
		want       int
	}{
		{"forward from dropped head", 0, 0},
		{"direct hit", 1, 0},
		{"forward between units", 2, 1},
		{"forward from tail hit", 3, 1},
		{"backward from dropped tail", 4, 1},
		{"clamped below", -5, 0},
		{"clamped above", 99, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plan.AudioFor(tt.displayIdx); got != tt.want {
				t.Errorf("AudioFor(%d) = %d, want %d", tt.displayIdx, got, tt.want)
			}
		})
	}

	empty := Plan{DisplayToAudio: []int{-1, -1}}
	if got := empty.AudioFor(0); got != -1 {
		t.Errorf("AudioFor on audio-less page = %d, want -1", got)
	}
}

// TestDisplayFor tests audio to display resolution.
func TestDisplayFor(t *testing.T) {
	plan := Plan{
		AudioSentences: []string{"a", "b"},
		DisplayToAudio: []int{0, -1, 1},
		AudioToDisplay: []int{0, 2},
	}

	if got := plan.DisplayFor(1); got != 2 {
		t.Errorf("DisplayFor(1) = %d, want 2", got)
	}
	if got := plan.DisplayFor(-1); got != -1 {
		t.Errorf("DisplayFor(-1) = %d, want -1", got)
	}
	if got := plan.DisplayFor(5); got != -1 {
		t.Errorf("DisplayFor(5) = %d, want -1", got)
	}
}
