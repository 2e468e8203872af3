package reader

// TTSView is the playback slice of a snapshot.
type TTSView struct {
	State           string  `json:"state"`
	CurrentSentence int     `json:"current_sentence"`
	SentenceCount   int     `json:"sentence_count"`
	CanSeekPrev     bool    `json:"can_seek_prev"`
	CanSeekNext     bool    `json:"can_seek_next"`
	ProgressPct     float64 `json:"progress_pct"`
}

// Snapshot is the read-only result of every command: the full view a
// host needs to render the reading surface.
type Snapshot struct {
	SourceID   string `json:"source_id"`
	SourceName string `json:"source_name"`
	SourceHash string `json:"source_hash"`

	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TextOnly    bool `json:"text_only"`

	PageText    string   `json:"page_text"`
	Sentences   []string `json:"sentences"`
	Highlighted int      `json:"highlighted"`

	Search   SearchState `json:"search"`
	Settings Settings    `json:"settings"`
	TTS      TTSView     `json:"tts"`
	Stats    Stats       `json:"stats"`

	ScrollY float64 `json:"scroll_y"`
}

// Snapshot assembles the current view. Slices are copied; the caller
// may hold a snapshot across further commands.
func (s *Session) Snapshot() Snapshot {
	page := s.pages[s.current]

	active := s.activeSentences()
	sentences := make([]string, len(active))
	copy(sentences, active)

	search := s.search
	search.Matches = append([]int(nil), s.search.Matches...)

	return Snapshot{
		SourceID:   s.id.String(),
		SourceName: s.sourceName,
		SourceHash: s.sourceHash,

		CurrentPage: s.current,
		TotalPages:  len(s.pages),
		TextOnly:    s.settings.TextOnly,

		PageText:    page.Text(),
		Sentences:   sentences,
		Highlighted: s.activeCursor(),

		Search:   search,
		Settings: s.settings,
		TTS: TTSView{
			State:           s.playback.String(),
			CurrentSentence: s.activeCursor(),
			SentenceCount:   s.activeCount(s.current),
			CanSeekPrev:     s.canSeekPrev(),
			CanSeekNext:     s.canSeekNext(),
			ProgressPct:     s.pageProgress() * 100,
		},
		Stats: s.stats(),

		ScrollY: s.scrollY,
	}
}
