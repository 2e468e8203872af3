// Package shell is the interactive line-oriented front end: it owns a
// reading session, renders snapshots, and maps typed commands onto the
// session's command set.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/sguzman/lantern-leaf/internal/bookmark"
	"github.com/sguzman/lantern-leaf/internal/reader"
)

// Config contains shell-specific configuration.
type Config struct {
	JSON  bool
	Watch bool
	Width int

	Prompt     string `env:"LANTERN_SHELL_PROMPT"       envDefault:"> "`
	ForceColor bool   `env:"LANTERN_FORCE_COLOR"        envDefault:"false"`
	DebounceMS int    `env:"LANTERN_RELOAD_DEBOUNCE_MS" envDefault:"400"`
}

// Shell runs the read-eval-print loop over a session. Commands arrive
// on In; everything is written to Out.
type Shell struct {
	In  io.Reader
	Out io.Writer

	// Reload re-reads the book for the reload command and for file
	// watching. Left nil for sources that cannot be re-read.
	Reload func() (string, error)

	// Settings receives settings patches from a config-file watcher.
	// A nil channel disables live settings.
	Settings <-chan reader.Patch

	cfg      Config
	session  *reader.Session
	marks    *bookmark.Store
	renderer *Renderer
	watcher  *Watcher

	json     bool
	quit     bool
	lastPage int
}

// New wires a shell around a session. marks may be nil to disable
// bookmark persistence.
func New(cfg Config, session *reader.Session, marks *bookmark.Store) *Shell {
	if cfg.Prompt == "" {
		cfg.Prompt = "> "
	}
	if cfg.DebounceMS <= 0 {
		cfg.DebounceMS = 400
	}
	if cfg.ForceColor {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	return &Shell{
		In:       os.Stdin,
		Out:      os.Stdout,
		cfg:      cfg,
		session:  session,
		marks:    marks,
		renderer: NewRenderer(cfg.Width),
		json:     cfg.JSON,
		lastPage: session.Position().Page,
	}
}

// Watch starts reloading the session whenever path changes. Reload
// must be set first.
func (sh *Shell) Watch(path string) error {
	if sh.Reload == nil {
		return fmt.Errorf("watch needs a reloadable source")
	}

	w, err := WatchFile(path, time.Duration(sh.cfg.DebounceMS)*time.Millisecond)
	if err != nil {
		return err
	}
	sh.watcher = w
	log.Debug("watching book file", "path", path)
	return nil
}

// Run drives the loop until quit, end of input, or context
// cancellation. The bookmark is saved on the way out.
func (sh *Shell) Run(ctx context.Context) error {
	sh.render(sh.session.Snapshot())

	lines := make(chan string)
	scanErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		sc := bufio.NewScanner(sh.In)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		scanErr <- sc.Err()
		close(lines)
	}()

	var reloads <-chan string
	if sh.watcher != nil {
		reloads = sh.watcher.Events()
		defer sh.watcher.Close()
	}

	sh.prompt()
	for {
		select {
		case <-ctx.Done():
			sh.persist()
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				sh.persist()
				return <-scanErr
			}
			if err := sh.dispatch(line); err != nil {
				sh.renderer.Error(sh.Out, err)
			}
			if sh.quit {
				sh.persist()
				return nil
			}
			sh.prompt()

		case <-reloads:
			if err := sh.reloadBook(); err != nil {
				sh.renderer.Error(sh.Out, err)
			}
			sh.prompt()

		case p := <-sh.Settings:
			snap := sh.session.Apply(reader.ApplySettings{Patch: p})
			sh.render(snap)
			sh.trackPage(snap)
			sh.renderer.Note(sh.Out, "settings reloaded")
			sh.prompt()
		}
	}
}

func (sh *Shell) prompt() {
	fmt.Fprint(sh.Out, sh.cfg.Prompt)
}

// dispatch runs one typed line. Shell-local commands are handled here;
// everything else becomes a session command.
func (sh *Shell) dispatch(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		sh.quit = true
		return nil

	case "h", "help", "?":
		fmt.Fprint(sh.Out, helpText)
		return nil

	case "json":
		sh.json = !sh.json
		sh.renderer.Note(sh.Out, "json output "+onOff(sh.json))
		return nil

	case "stats":
		snap := sh.session.Snapshot()
		if sh.json {
			return sh.writeJSON(snap.Stats)
		}
		sh.renderer.Stats(sh.Out, snap)
		return nil

	case "copy":
		snap := sh.session.Snapshot()
		if err := clipboard.WriteAll(snap.PageText); err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		sh.renderer.Note(sh.Out, "page copied")
		return nil

	case "export":
		if len(args) == 0 {
			return fmt.Errorf("export wants a path")
		}
		pause := sh.session.Snapshot().Settings.PauseAfterSentence
		if err := ExportScript(args[0], sh.session.AudioScript(), pause); err != nil {
			return err
		}
		sh.renderer.Note(sh.Out, "script written to "+args[0])
		return nil

	case "save":
		if sh.marks == nil {
			return fmt.Errorf("bookmarks are disabled")
		}
		if err := sh.saveBookmark(); err != nil {
			return err
		}
		sh.renderer.Note(sh.Out, "bookmark saved")
		return nil

	case "reload":
		return sh.reloadBook()
	}

	rc, err := readerCommand(cmd, args)
	if err != nil {
		return err
	}
	snap := sh.session.Apply(rc)
	sh.render(snap)
	sh.trackPage(snap)
	return nil
}

// readerCommand maps a typed command onto the session command set.
func readerCommand(cmd string, args []string) (reader.Command, error) {
	switch cmd {
	case "n", "next":
		return reader.NextPage{}, nil
	case "p", "prev":
		return reader.PrevPage{}, nil
	case "g", "goto":
		n, err := wantNumber("goto", "a page number", args)
		if err != nil {
			return nil, err
		}
		return reader.SetPage{Page: n - 1}, nil
	case "c", "click":
		n, err := wantNumber("click", "a sentence number", args)
		if err != nil {
			return nil, err
		}
		return reader.SentenceClick{Index: n - 1}, nil
	case "ns":
		return reader.NextSentence{}, nil
	case "ps":
		return reader.PrevSentence{}, nil
	case "mode":
		return reader.ToggleTextOnly{}, nil
	case "set":
		if len(args) < 2 {
			return nil, fmt.Errorf("set wants a key and a value")
		}
		patch, err := parsePatch(args[0], args[1])
		if err != nil {
			return nil, err
		}
		return reader.ApplySettings{Patch: patch}, nil
	case "search":
		return reader.SearchSetQuery{Query: strings.Join(args, " ")}, nil
	case "sn":
		return reader.SearchNext{}, nil
	case "sp":
		return reader.SearchPrev{}, nil
	case "play":
		return reader.TTSPlay{}, nil
	case "pause":
		return reader.TTSPause{}, nil
	case "pp":
		return reader.TTSTogglePlayPause{}, nil
	case "playpage":
		return reader.TTSPlayFromPageStart{}, nil
	case "playhere":
		return reader.TTSPlayFromHighlight{}, nil
	case "]", "seeknext":
		return reader.TTSSeekNext{}, nil
	case "[", "seekprev":
		return reader.TTSSeekPrev{}, nil
	case "repeat":
		return reader.TTSRepeatSentence{}, nil
	case "stop":
		return reader.TTSStop{}, nil
	}
	return nil, fmt.Errorf("unknown command %q (try help)", cmd)
}

func wantNumber(cmd, what string, args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s wants %s", cmd, what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%s wants %s, got %q", cmd, what, args[0])
	}
	return n, nil
}

// parsePatch turns a set key/value pair into a settings patch.
func parsePatch(key, value string) (reader.Patch, error) {
	var p reader.Patch

	parseInt := func() (int, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("%s wants a number, got %q", key, value)
		}
		return n, nil
	}
	parseFloat := func() (float64, error) {
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("%s wants a number, got %q", key, value)
		}
		return f, nil
	}
	parseBool := func() (bool, error) {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("%s wants true or false, got %q", key, value)
		}
		return b, nil
	}

	switch key {
	case "font":
		n, err := parseInt()
		if err != nil {
			return p, err
		}
		p.FontSize = &n
	case "lines":
		n, err := parseInt()
		if err != nil {
			return p, err
		}
		p.LinesPerPage = &n
	case "hmargin":
		n, err := parseInt()
		if err != nil {
			return p, err
		}
		p.MarginHorizontal = &n
	case "vmargin":
		n, err := parseInt()
		if err != nil {
			return p, err
		}
		p.MarginVertical = &n
	case "linespacing":
		f, err := parseFloat()
		if err != nil {
			return p, err
		}
		p.LineSpacing = &f
	case "wordspacing":
		f, err := parseFloat()
		if err != nil {
			return p, err
		}
		p.WordSpacing = &f
	case "letterspacing":
		f, err := parseFloat()
		if err != nil {
			return p, err
		}
		p.LetterSpacing = &f
	case "pause":
		f, err := parseFloat()
		if err != nil {
			return p, err
		}
		p.PauseAfterSentence = &f
	case "speed":
		f, err := parseFloat()
		if err != nil {
			return p, err
		}
		p.TTSSpeed = &f
	case "volume":
		f, err := parseFloat()
		if err != nil {
			return p, err
		}
		p.TTSVolume = &f
	case "textonly":
		b, err := parseBool()
		if err != nil {
			return p, err
		}
		p.TextOnly = &b
	case "autoscroll":
		b, err := parseBool()
		if err != nil {
			return p, err
		}
		p.AutoScroll = &b
	case "centerspoken":
		b, err := parseBool()
		if err != nil {
			return p, err
		}
		p.CenterSpoken = &b
	default:
		return p, fmt.Errorf("unknown setting %q", key)
	}
	return p, nil
}

func (sh *Shell) render(snap reader.Snapshot) {
	if sh.json {
		if err := sh.writeJSON(snap); err != nil {
			sh.renderer.Error(sh.Out, err)
		}
		return
	}
	sh.renderer.Page(sh.Out, snap)
}

func (sh *Shell) writeJSON(v interface{}) error {
	enc := json.NewEncoder(sh.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (sh *Shell) reloadBook() error {
	if sh.Reload == nil {
		return fmt.Errorf("this source cannot be reloaded")
	}

	text, err := sh.Reload()
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	sh.session.Reload(text)

	snap := sh.session.Snapshot()
	sh.render(snap)
	sh.renderer.Note(sh.Out, "book reloaded")
	return nil
}

// trackPage autosaves the bookmark on page turns.
func (sh *Shell) trackPage(snap reader.Snapshot) {
	if snap.CurrentPage == sh.lastPage {
		return
	}
	sh.lastPage = snap.CurrentPage
	if err := sh.saveBookmark(); err != nil {
		log.Debug("bookmark autosave failed", "error", err)
	}
}

func (sh *Shell) saveBookmark() error {
	if sh.marks == nil {
		return nil
	}

	pos := sh.session.Position()
	snap := sh.session.Snapshot()
	err := sh.marks.Put(snap.SourceHash, bookmark.Bookmark{
		Source:       snap.SourceName,
		Page:         pos.Page,
		SentenceIdx:  pos.SentenceIdx,
		SentenceText: pos.SentenceText,
		ScrollY:      pos.ScrollY,
	})
	if err != nil {
		return fmt.Errorf("bookmark save: %w", err)
	}
	log.Debug("bookmark saved", "source", snap.SourceName, "page", pos.Page)
	return nil
}

func (sh *Shell) persist() {
	if err := sh.saveBookmark(); err != nil {
		log.Debug("bookmark save failed", "error", err)
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

const helpText = `commands
  n, next             next page
  p, prev             previous page
  g, goto N           jump to page N
  c, click N          select sentence N on this page
  ns / ps             next / previous sentence
  mode                toggle text-only mode
  set KEY VALUE       change a setting (font, lines, hmargin, vmargin,
                      linespacing, wordspacing, letterspacing, pause,
                      speed, volume, textonly, autoscroll, centerspoken)
  search TEXT         search sentences (regex, falls back to substring)
  sn / sp             next / previous search match
  play, pause, pp     start, pause, toggle playback
  playpage, playhere  play from page start / from the highlight
  ], [                seek to next / previous sentence
  repeat, stop        repeat current sentence, stop playback
  stats               reading statistics
  json                toggle JSON output
  copy                copy page text to the clipboard
  export PATH         write the audio script (.zst compresses)
  save                save the bookmark now
  reload              re-read the book from its source
  q, quit             leave
`
