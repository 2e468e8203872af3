// Package reader holds the session state machine of the reading
// engine: pages, the dual display/audio cursor, search, playback, and
// statistics, driven through a command/snapshot API.
package reader

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/sguzman/lantern-leaf/internal/pages"
	"github.com/sguzman/lantern-leaf/internal/sentence"
	"github.com/sguzman/lantern-leaf/internal/speech"
)

// ErrLoad wraps any failure of the text source at construction. It is
// the only error the engine ever surfaces; every in-session command is
// total.
var ErrLoad = errors.New("load book text")

// TextSource supplies the raw book text. Loading happens exactly once,
// at session construction.
type TextSource interface {
	Name() string
	Load() (string, error)
}

// StringSource is a TextSource over an in-memory string.
type StringSource struct {
	SourceName string
	Text       string
}

func (s StringSource) Name() string          { return s.SourceName }
func (s StringSource) Load() (string, error) { return s.Text, nil }

// Config carries the session collaborators. Zero values select
// defaults throughout.
type Config struct {
	Splitter   *sentence.Splitter
	Normalizer *speech.Normalizer
	Settings   Settings

	// BaseWPM and FloorWPM feed the reading-time estimates.
	BaseWPM  float64
	FloorWPM float64

	// Position restores a previously saved cursor.
	Position *Position
}

// Session is the reading engine state machine. It is synchronous and
// not internally thread-safe; the host serializes commands.
type Session struct {
	id         uuid.UUID
	sourceName string
	sourceHash string

	text     string
	splitter *sentence.Splitter
	norm     *speech.Normalizer

	settings Settings

	pages   []pages.Page
	current int

	displayIdx int
	audioIdx   int

	search   SearchState
	playback PlaybackState

	cachedPage int
	cachedPlan *speech.Plan

	wordsBefore     []int
	sentencesBefore []int
	totalWords      int
	totalSentences  int

	baseWPM  float64
	floorWPM float64

	scrollY float64
}

// New loads the source and builds a session around its text. The one
// failure mode is the source itself; the returned error unwraps to
// ErrLoad.
func New(src TextSource, cfg Config) (*Session, error) {
	text, err := src.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrLoad, src.Name(), err)
	}

	s := &Session{
		id:         uuid.New(),
		sourceName: src.Name(),
		sourceHash: contentHash(text),
		text:       text,
		splitter:   cfg.Splitter,
		norm:       cfg.Normalizer,
		settings:   cfg.Settings,
		displayIdx: -1,
		audioIdx:   -1,
		cachedPage: -1,
		baseWPM:    cfg.BaseWPM,
		floorWPM:   cfg.FloorWPM,
	}
	if s.splitter == nil {
		s.splitter = sentence.NewSplitter(sentence.Options{})
	}
	if s.norm == nil {
		s.norm = speech.NewNormalizer(speech.Options{})
	}
	if s.settings == (Settings{}) {
		s.settings = DefaultSettings()
	}
	if s.baseWPM <= 0 {
		s.baseWPM = 150
	}
	if s.floorWPM <= 0 {
		s.floorWPM = 60
	}

	s.repaginate()
	s.setPage(0)
	if cfg.Position != nil {
		s.restorePosition(*cfg.Position)
	}

	log.Debug("session created",
		"source", s.sourceName,
		"hash", s.sourceHash,
		"pages", len(s.pages),
		"sentences", s.totalSentences)
	return s, nil
}

// Reload swaps in new book text, repaginating while the global sentence
// index keeps the reader's place. Playback state survives untouched.
func (s *Session) Reload(text string) {
	anchor := s.globalIndex()
	s.text = text
	s.sourceHash = contentHash(text)
	s.repaginate()
	s.restoreGlobalIndex(anchor)
	s.refreshSearch()
	log.Debug("session reloaded", "pages", len(s.pages), "anchor", anchor)
}

// repaginate rebuilds pages and statistics from the current text and
// settings and drops the plan cache. Cursor restoration is the
// caller's job.
func (s *Session) repaginate() {
	s.pages = pages.Build(s.splitter, s.text, s.settings.LinesPerPage)
	s.invalidatePlan()

	s.wordsBefore = make([]int, len(s.pages))
	s.sentencesBefore = make([]int, len(s.pages))
	words, sentences := 0, 0
	for i, page := range s.pages {
		s.wordsBefore[i] = words
		s.sentencesBefore[i] = sentences
		words += page.WordCount
		sentences += page.SentenceCount()
	}
	s.totalWords = words
	s.totalSentences = sentences
}

// plan returns the current page's normalization plan, computing it on
// first use after a page change. A single slot: visiting another page
// replaces it outright.
func (s *Session) plan() *speech.Plan {
	if s.cachedPlan == nil || s.cachedPage != s.current {
		p := s.norm.PlanPage(s.pages[s.current].Sentences)
		s.cachedPlan = &p
		s.cachedPage = s.current
	}
	return s.cachedPlan
}

func (s *Session) invalidatePlan() {
	s.cachedPlan = nil
	s.cachedPage = -1
}

// globalIndex is the layout-independent cursor anchor: display
// sentences on all pages before the current one, plus the local display
// cursor.
func (s *Session) globalIndex() int {
	local := s.displayIdx
	if local < 0 {
		local = 0
	}
	if s.current < len(s.sentencesBefore) {
		return s.sentencesBefore[s.current] + local
	}
	return local
}

// restoreGlobalIndex walks the freshly built pages until the anchor
// fits inside one, clamping to the last sentence of the last page when
// the text shrank.
func (s *Session) restoreGlobalIndex(anchor int) {
	if anchor < 0 {
		anchor = 0
	}
	for i, page := range s.pages {
		n := page.SentenceCount()
		if anchor < n {
			s.landCursor(i, anchor)
			return
		}
		anchor -= n
	}
	last := len(s.pages) - 1
	s.landCursor(last, s.pages[last].SentenceCount()-1)
}

// landCursor places the display cursor without touching search or
// playback. idx below zero means an empty page.
func (s *Session) landCursor(page, idx int) {
	s.current = page
	s.invalidatePlan()
	if idx < 0 {
		s.displayIdx = -1
		s.audioIdx = -1
		return
	}
	s.displayIdx = idx
	s.audioIdx = -1
	if s.settings.TextOnly {
		s.audioIdx = s.plan().AudioFor(idx)
	}
}

// AudioScript renders the whole book as ordered audio units, one slice
// per page. Pages that normalize to nothing yield an empty slice. The
// plan cache is left alone so the current page stays warm.
func (s *Session) AudioScript() [][]string {
	script := make([][]string, len(s.pages))
	for i := range s.pages {
		plan := s.norm.PlanPage(s.pages[i].Sentences)
		script[i] = plan.AudioSentences
	}
	return script
}

// HashText returns the content key a session would use for this book
// text, for bookmark lookups before a session exists.
func HashText(text string) string {
	return contentHash(text)
}

// contentHash identifies the book text for bookmark persistence: the
// SHA-256 of the first 8 KiB, truncated to 16 hex digits, so trimmed or
// renamed copies of the same book keep their place.
func contentHash(text string) string {
	data := []byte(text)
	if len(data) > 8192 {
		data = data[:8192]
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}
