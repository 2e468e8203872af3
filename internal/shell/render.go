package shell

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/sguzman/lantern-leaf/internal/reader"
)

// Renderer draws snapshots onto a terminal of a fixed width.
type Renderer struct {
	width int

	header   lipgloss.Style
	faint    lipgloss.Style
	matchNum lipgloss.Style
	selected lipgloss.Style
	errStyle lipgloss.Style
	barEmpty lipgloss.Style
}

// NewRenderer creates a renderer for the given terminal width. Widths
// below a usable minimum fall back to 80 columns.
func NewRenderer(width int) *Renderer {
	if width < 20 {
		width = 80
	}
	return &Renderer{
		width:    width,
		header:   lipgloss.NewStyle().Bold(true),
		faint:    lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
		matchNum: lipgloss.NewStyle().Underline(true),
		selected: lipgloss.NewStyle().Reverse(true),
		errStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")),
		barEmpty: lipgloss.NewStyle().Foreground(lipgloss.Color("#333333")),
	}
}

// Page draws the full reading surface: header, numbered sentences with
// the cursor and search decorations, and the status line.
func (r *Renderer) Page(w io.Writer, snap reader.Snapshot) {
	name := truncate.StringWithTail(snap.SourceName, uint(max(12, r.width-24)), "…")
	right := fmt.Sprintf("page %d/%d", snap.CurrentPage+1, snap.TotalPages)
	if snap.TextOnly {
		right += " [text]"
	}
	gap := r.width - runewidth.StringWidth(name) - runewidth.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	fmt.Fprintln(w, r.header.Render(name+strings.Repeat(" ", gap)+right))

	// Horizontal margins are pixel-ish in the settings; approximate
	// with one column per ten.
	indentCols := snap.Settings.MarginHorizontal / 10
	if indentCols > 8 {
		indentCols = 8
	}
	body := r.width - 2*indentCols - 6
	if body < 20 {
		body = 20
	}
	pad := strings.Repeat(" ", indentCols)

	highlight := lipgloss.NewStyle().
		Background(lipgloss.Color(hexColor(snap.Settings.Highlight)))
	if snap.TTS.State == "playing" {
		highlight = lipgloss.NewStyle().
			Background(lipgloss.Color(hexColor(snap.Settings.SpokenHighlight)))
	}

	matchSet := make(map[int]bool, len(snap.Search.Matches))
	for _, m := range snap.Search.Matches {
		matchSet[m] = true
	}
	selectedIdx := -1
	if snap.Search.Selected >= 0 && snap.Search.Selected < len(snap.Search.Matches) {
		selectedIdx = snap.Search.Matches[snap.Search.Selected]
	}

	for i, sent := range snap.Sentences {
		marker := " "
		if i == snap.Highlighted {
			marker = "▌"
		}
		num := fmt.Sprintf("%3d", i+1)
		if matchSet[i] {
			num = r.matchNum.Render(num)
		}

		lines := strings.Split(wordwrap.String(sent, body), "\n")
		for j, line := range lines {
			switch {
			case i == snap.Highlighted:
				line = highlight.Render(line)
			case i == selectedIdx:
				line = r.selected.Render(line)
			}
			if j == 0 {
				fmt.Fprintf(w, "%s%s %s  %s\n", pad, marker, num, line)
			} else {
				fmt.Fprintf(w, "%s       %s\n", pad, line)
			}
		}
	}
	if len(snap.Sentences) == 0 {
		note := "(empty page)"
		if snap.TextOnly {
			note = "(no spoken text on this page)"
		}
		fmt.Fprintln(w, pad+r.faint.Render(note))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Status(snap))
}

// Status renders the one-line playback and search summary.
func (r *Renderer) Status(snap reader.Snapshot) string {
	tts := snap.TTS
	color := stateColor(tts.State)

	s := lipgloss.NewStyle().Foreground(color).
		Render(fmt.Sprintf("%s %s", stateIcon(tts.State), tts.State))
	if tts.State != "idle" && tts.SentenceCount > 0 {
		s += r.faint.Render(fmt.Sprintf(" %d/%d", tts.CurrentSentence+1, tts.SentenceCount))
	}
	s += " " + r.progressBar(tts.ProgressPct/100, 20, color)

	if q := snap.Search.Query; q != "" {
		pos := "-"
		if snap.Search.Selected >= 0 {
			pos = strconv.Itoa(snap.Search.Selected + 1)
		}
		s += r.faint.Render(fmt.Sprintf("  search %q %s/%d", q, pos, len(snap.Search.Matches)))
	}
	return s
}

// Stats renders the statistics block for the current position.
func (r *Renderer) Stats(w io.Writer, snap reader.Snapshot) {
	st := snap.Stats

	wordsRead := st.WordsBefore + int(math.Round(st.PageProgress*float64(st.PageWords)))
	fmt.Fprintf(w, "words      %s read of %s (%s on this page)\n",
		humanize.Comma(int64(wordsRead)),
		humanize.Comma(int64(st.TotalWords)),
		humanize.Comma(int64(st.PageWords)))
	fmt.Fprintf(w, "sentences  %s read of %s\n",
		humanize.Comma(int64(st.SentencesRead)),
		humanize.Comma(int64(st.TotalSentences)))
	fmt.Fprintf(w, "pace       %.0f wpm  page left %s  book left %s\n",
		st.EffectiveWPM,
		clock(st.PageRemainingSeconds),
		clock(st.BookRemainingSeconds))
}

// Note prints a short informational message.
func (r *Renderer) Note(w io.Writer, msg string) {
	fmt.Fprintln(w, r.faint.Render(msg))
}

// Error prints an error line.
func (r *Renderer) Error(w io.Writer, err error) {
	fmt.Fprintln(w, r.errStyle.Render("error: "+err.Error()))
}

// progressBar renders a filled bar for a progress fraction in [0, 1].
func (r *Renderer) progressBar(progress float64, width int, color lipgloss.Color) string {
	if width < 10 {
		return ""
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	filled := int(progress * float64(width))
	if filled > width {
		filled = width
	}

	filledStyle := lipgloss.NewStyle().Foreground(color)
	return filledStyle.Render(strings.Repeat("█", filled)) +
		r.barEmpty.Render(strings.Repeat("░", width-filled))
}

func stateColor(state string) lipgloss.Color {
	switch state {
	case "playing":
		return lipgloss.Color("#00FF00")
	case "paused":
		return lipgloss.Color("#FFFF00")
	case "idle":
		return lipgloss.Color("#888888")
	default:
		return lipgloss.Color("#666666")
	}
}

func stateIcon(state string) string {
	switch state {
	case "playing":
		return "▶"
	case "paused":
		return "⏸"
	case "idle":
		return "■"
	default:
		return "○"
	}
}

// hexColor converts a unit-interval RGBA color to a terminal hex
// color. Alpha has no terminal equivalent and is dropped.
func hexColor(c reader.Color) string {
	return fmt.Sprintf("#%02X%02X%02X",
		channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

func channelByte(v float64) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return int(math.Round(v * 255))
}

// clock formats a second count as m:ss.
func clock(seconds float64) string {
	return formatDuration(time.Duration(seconds * float64(time.Second)))
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		return "0:00"
	}

	minutes := int(d.Minutes())
	secs := int(d.Seconds()) % 60

	return fmt.Sprintf("%d:%02d", minutes, secs)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
