package sentence

import (
	"strings"
	"testing"
)

// TestSegmentCounts tests sentence counts over representative inputs.
func TestSegmentCounts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "two plain sentences",
			text: "The lamp went out. Nobody moved.",
			want: 2,
		},
		{
			name: "titles do not end sentences",
			text: "Mr. Smith walked in. Mrs. Jones stayed.",
			want: 2,
		},
		{
			name: "dotted initialism",
			text: "This uses U.S. spelling. Next sentence.",
			want: 2,
		},
		{
			name: "spaced initials merge",
			text: "Written by J. R. R. Tolkien.",
			want: 2,
		},
		{
			name: "exclamation and question",
			text: "Stop! Who goes there? Nobody.",
			want: 3,
		},
		{
			name: "decimal stays whole",
			text: "Pi is roughly 3.14 in places. True enough.",
			want: 2,
		},
		{
			name: "abbreviation mid sentence",
			text: "Dr. Watson, I presume. Indeed.",
			want: 2,
		},
		{
			name: "ellipsis ends a sentence before whitespace",
			text: "He waited... Nothing came.",
			want: 2,
		},
		{
			name: "closing quote after period",
			text: "\"Leave now.\" The door shut.",
			want: 2,
		},
		{
			name: "no terminal punctuation",
			text: "the last line of the page",
			want: 1,
		},
		{
			name: "empty input",
			text: "",
			want: 0,
		},
		{
			name: "whitespace only",
			text: "  \n\t  ",
			want: 0,
		},
	}

	sp := NewSplitter(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sp.Segment(tt.text)
			if len(got) != tt.want {
				t.Errorf("Segment(%q) = %d sentences %v, want %d", tt.text, len(got), got, tt.want)
			}
		})
	}
}

// TestSegmentText tests the exact sentence texts produced.
func TestSegmentText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "trims and collapses whitespace",
			text: "First  one\nhere.   Second one.",
			want: []string{"First one here.", "Second one."},
		},
		{
			name: "keeps abbreviation sentence whole",
			text: "Mr. Smith walked in. Mrs. Jones stayed.",
			want: []string{"Mr. Smith walked in.", "Mrs. Jones stayed."},
		},
		{
			name: "question run",
			text: "What?! Again?",
			want: []string{"What?!", "Again?"},
		},
	}

	sp := NewSplitter(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sp.Segment(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Segment(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sentence %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// TestSegmentPreservesTokens tests that joining all sentences with
// single spaces reproduces the input token stream.
func TestSegmentPreservesTokens(t *testing.T) {
	texts := []string{
		"The lamp went out. Nobody moved. Then, slowly, the dark settled in.",
		"Mr. Smith walked in. Mrs. Jones stayed.",
		"One. Two! Three? " + strings.Repeat("word, ", 50) + "done.",
		"No punctuation here at all just words",
		"Lines\nbroken\nacross\nnewlines. And more.",
	}

	sp := NewSplitter(Options{})
	for _, text := range texts {
		got := strings.Fields(strings.Join(sp.Segment(text), " "))
		want := strings.Fields(text)
		if len(got) != len(want) {
			t.Fatalf("token count for %q = %d, want %d", text, len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("token %d for %q = %q, want %q", i, text, got[i], want[i])
			}
		}
	}
}

// TestCustomAbbreviations tests that configured abbreviations replace
// the default set.
func TestCustomAbbreviations(t *testing.T) {
	sp := NewSplitter(Options{Abbreviations: []string{"zzz."}})

	got := sp.Segment("The zzz. token binds. Mr. Smith ends here.")
	// "zzz." is suppressed, "Mr." is not part of the custom set.
	want := []string{"The zzz. token binds.", "Mr.", "Smith ends here."}
	if len(got) != len(want) {
		t.Fatalf("Segment() = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}
