package reader

import "math"

// Color is an RGBA highlight color, each channel in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Settings are the session's typography, margin, highlight, and TTS
// knobs. Mutated only through Patch application so every field stays
// inside its documented range.
type Settings struct {
	FontSize         int     `json:"font_size"`
	LinesPerPage     int     `json:"lines_per_page"`
	MarginHorizontal int     `json:"margin_horizontal"`
	MarginVertical   int     `json:"margin_vertical"`
	LineSpacing      float64 `json:"line_spacing"`
	WordSpacing      float64 `json:"word_spacing"`
	LetterSpacing    float64 `json:"letter_spacing"`

	PauseAfterSentence float64 `json:"pause_after_sentence"`
	TTSSpeed           float64 `json:"tts_speed"`
	TTSVolume          float64 `json:"tts_volume"`

	Highlight       Color `json:"highlight"`
	SpokenHighlight Color `json:"spoken_highlight"`

	TextOnly     bool `json:"text_only"`
	AutoScroll   bool `json:"auto_scroll"`
	CenterSpoken bool `json:"center_spoken"`
}

// DefaultSettings returns the out-of-the-box settings.
func DefaultSettings() Settings {
	return Settings{
		FontSize:         18,
		LinesPerPage:     24,
		MarginHorizontal: 40,
		MarginVertical:   20,
		LineSpacing:      1.4,
		WordSpacing:      0,
		LetterSpacing:    0,

		PauseAfterSentence: 0.4,
		TTSSpeed:           1.0,
		TTSVolume:          1.0,

		Highlight:       Color{R: 1.0, G: 0.9, B: 0.3, A: 0.35},
		SpokenHighlight: Color{R: 0.3, G: 0.65, B: 1.0, A: 0.3},

		AutoScroll:   true,
		CenterSpoken: true,
	}
}

// Patch carries optional settings updates. Present fields are clamped
// to their range and applied; absent fields stay untouched. A patch is
// never rejected.
type Patch struct {
	FontSize         *int     `json:"font_size,omitempty"`
	LinesPerPage     *int     `json:"lines_per_page,omitempty"`
	MarginHorizontal *int     `json:"margin_horizontal,omitempty"`
	MarginVertical   *int     `json:"margin_vertical,omitempty"`
	LineSpacing      *float64 `json:"line_spacing,omitempty"`
	WordSpacing      *float64 `json:"word_spacing,omitempty"`
	LetterSpacing    *float64 `json:"letter_spacing,omitempty"`

	PauseAfterSentence *float64 `json:"pause_after_sentence,omitempty"`
	TTSSpeed           *float64 `json:"tts_speed,omitempty"`
	TTSVolume          *float64 `json:"tts_volume,omitempty"`

	Highlight       *Color `json:"highlight,omitempty"`
	SpokenHighlight *Color `json:"spoken_highlight,omitempty"`

	TextOnly     *bool `json:"text_only,omitempty"`
	AutoScroll   *bool `json:"auto_scroll,omitempty"`
	CenterSpoken *bool `json:"center_spoken,omitempty"`
}

// applySettings applies a patch. A font-size or lines-per-page change
// repaginates and restores the cursor through the global sentence
// index anchor.
func (s *Session) applySettings(p Patch) {
	anchor := s.globalIndex()
	oldFont := s.settings.FontSize
	oldLines := s.settings.LinesPerPage

	if p.FontSize != nil {
		s.settings.FontSize = clampInt(*p.FontSize, 12, 36)
	}
	if p.LinesPerPage != nil {
		s.settings.LinesPerPage = clampInt(*p.LinesPerPage, 8, 1000)
	}
	if p.MarginHorizontal != nil {
		s.settings.MarginHorizontal = clampInt(*p.MarginHorizontal, 0, 600)
	}
	if p.MarginVertical != nil {
		s.settings.MarginVertical = clampInt(*p.MarginVertical, 0, 240)
	}
	if p.LineSpacing != nil {
		s.settings.LineSpacing = clampFloat(*p.LineSpacing, 0.8, 3.0)
	}
	if p.WordSpacing != nil {
		s.settings.WordSpacing = clampFloat(*p.WordSpacing, 0, 24)
	}
	if p.LetterSpacing != nil {
		s.settings.LetterSpacing = clampFloat(*p.LetterSpacing, 0, 24)
	}
	if p.PauseAfterSentence != nil {
		s.settings.PauseAfterSentence = round2(clampFloat(*p.PauseAfterSentence, 0.0, 3.0))
	}
	if p.TTSSpeed != nil {
		s.settings.TTSSpeed = clampFloat(*p.TTSSpeed, 0.25, 4.0)
	}
	if p.TTSVolume != nil {
		s.settings.TTSVolume = clampFloat(*p.TTSVolume, 0.0, 2.0)
	}
	if p.Highlight != nil {
		s.settings.Highlight = clampColor(*p.Highlight)
	}
	if p.SpokenHighlight != nil {
		s.settings.SpokenHighlight = clampColor(*p.SpokenHighlight)
	}
	if p.AutoScroll != nil {
		s.settings.AutoScroll = *p.AutoScroll
	}
	if p.CenterSpoken != nil {
		s.settings.CenterSpoken = *p.CenterSpoken
	}
	if p.TextOnly != nil && *p.TextOnly != s.settings.TextOnly {
		s.toggleTextOnly()
	}

	if s.settings.FontSize != oldFont || s.settings.LinesPerPage != oldLines {
		s.repaginate()
		s.restoreGlobalIndex(anchor)
		s.refreshSearch()
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampColor(c Color) Color {
	return Color{
		R: clampFloat(c.R, 0, 1),
		G: clampFloat(c.G, 0, 1),
		B: clampFloat(c.B, 0, 1),
		A: clampFloat(c.A, 0, 1),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
