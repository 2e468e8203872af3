package reader

// Command is the closed set of session operations. One command in, one
// consistent Snapshot out; commands never fail.
type Command interface {
	isCommand()
}

// GetSnapshot reads the current state without changing it.
type GetSnapshot struct{}

// NextPage turns one page forward.
type NextPage struct{}

// PrevPage turns one page back.
type PrevPage struct{}

// SetPage jumps to a page; out-of-range values clamp.
type SetPage struct{ Page int }

// SentenceClick selects a sentence on the current page in the active
// coordinate space.
type SentenceClick struct{ Index int }

// NextSentence moves the active cursor forward within the page.
type NextSentence struct{}

// PrevSentence moves the active cursor back within the page.
type PrevSentence struct{}

// ToggleTextOnly switches between the display and audio coordinate
// spaces.
type ToggleTextOnly struct{}

// ApplySettings patches the session settings.
type ApplySettings struct{ Patch Patch }

// SearchSetQuery replaces the search query.
type SearchSetQuery struct{ Query string }

// SearchNext selects the next match, wrapping around.
type SearchNext struct{}

// SearchPrev selects the previous match, wrapping around.
type SearchPrev struct{}

// TTSPlay starts playback at the cursor, or the page start without one.
type TTSPlay struct{}

// TTSPause pauses playback.
type TTSPause struct{}

// TTSTogglePlayPause plays or pauses depending on the current state.
type TTSTogglePlayPause struct{}

// TTSPlayFromPageStart rewinds to the first sentence and plays.
type TTSPlayFromPageStart struct{}

// TTSPlayFromHighlight plays from the highlighted sentence.
type TTSPlayFromHighlight struct{}

// TTSSeekNext advances the playback cursor one sentence, crossing
// pages.
type TTSSeekNext struct{}

// TTSSeekPrev backs the playback cursor up one sentence, crossing
// pages.
type TTSSeekPrev struct{}

// TTSRepeatSentence re-speaks the current sentence.
type TTSRepeatSentence struct{}

// TTSStop ends playback.
type TTSStop struct{}

func (GetSnapshot) isCommand()          {}
func (NextPage) isCommand()             {}
func (PrevPage) isCommand()             {}
func (SetPage) isCommand()              {}
func (SentenceClick) isCommand()        {}
func (NextSentence) isCommand()         {}
func (PrevSentence) isCommand()         {}
func (ToggleTextOnly) isCommand()       {}
func (ApplySettings) isCommand()        {}
func (SearchSetQuery) isCommand()       {}
func (SearchNext) isCommand()           {}
func (SearchPrev) isCommand()           {}
func (TTSPlay) isCommand()              {}
func (TTSPause) isCommand()             {}
func (TTSTogglePlayPause) isCommand()   {}
func (TTSPlayFromPageStart) isCommand() {}
func (TTSPlayFromHighlight) isCommand() {}
func (TTSSeekNext) isCommand()          {}
func (TTSSeekPrev) isCommand()          {}
func (TTSRepeatSentence) isCommand()    {}
func (TTSStop) isCommand()              {}

// Apply runs one command and returns the resulting snapshot. Unknown
// or nil commands read the state like GetSnapshot.
func (s *Session) Apply(cmd Command) Snapshot {
	switch c := cmd.(type) {
	case NextPage:
		s.nextPage()
	case PrevPage:
		s.prevPage()
	case SetPage:
		s.setPage(c.Page)
	case SentenceClick:
		s.sentenceClick(c.Index)
	case NextSentence:
		s.moveSentence(1)
	case PrevSentence:
		s.moveSentence(-1)
	case ToggleTextOnly:
		s.toggleTextOnly()
	case ApplySettings:
		s.applySettings(c.Patch)
	case SearchSetQuery:
		s.setSearchQuery(c.Query)
	case SearchNext:
		s.searchNext()
	case SearchPrev:
		s.searchPrev()
	case TTSPlay:
		s.ttsPlay()
	case TTSPause:
		s.ttsPause()
	case TTSTogglePlayPause:
		s.ttsTogglePlayPause()
	case TTSPlayFromPageStart:
		s.ttsPlayFromPageStart()
	case TTSPlayFromHighlight:
		s.ttsPlayFromHighlight()
	case TTSSeekNext:
		s.ttsSeekNext()
	case TTSSeekPrev:
		s.ttsSeekPrev()
	case TTSRepeatSentence:
		s.ttsRepeatSentence()
	case TTSStop:
		s.ttsStop()
	}
	return s.Snapshot()
}
