// Package config is the lantern configuration schema: the YAML file
// and environment shape, its defaults and validation, and the bridges
// into the engine's option structs.
package config

import (
	"fmt"

	"github.com/sguzman/lantern-leaf/internal/reader"
	"github.com/sguzman/lantern-leaf/internal/sentence"
	"github.com/sguzman/lantern-leaf/internal/speech"
)

// Config is the full lantern configuration.
type Config struct {
	Reader    ReaderConfig    `yaml:"reader"`
	TTS       TTSConfig       `yaml:"tts"`
	Segmenter SegmenterConfig `yaml:"segmenter"`
	Speech    SpeechConfig    `yaml:"speech"`
	Shell     ShellConfig     `yaml:"shell"`
}

// ReaderConfig holds the display defaults applied to new sessions.
type ReaderConfig struct {
	FontSize         int     `yaml:"font_size" env:"LANTERN_READER_FONT_SIZE" envDefault:"18"`
	LinesPerPage     int     `yaml:"lines_per_page" env:"LANTERN_READER_LINES_PER_PAGE" envDefault:"24"`
	MarginHorizontal int     `yaml:"margin_horizontal" env:"LANTERN_READER_MARGIN_HORIZONTAL" envDefault:"40"`
	MarginVertical   int     `yaml:"margin_vertical" env:"LANTERN_READER_MARGIN_VERTICAL" envDefault:"20"`
	LineSpacing      float64 `yaml:"line_spacing" env:"LANTERN_READER_LINE_SPACING" envDefault:"1.4"`
	WordSpacing      float64 `yaml:"word_spacing" env:"LANTERN_READER_WORD_SPACING" envDefault:"0"`
	LetterSpacing    float64 `yaml:"letter_spacing" env:"LANTERN_READER_LETTER_SPACING" envDefault:"0"`

	TextOnly     bool `yaml:"text_only" env:"LANTERN_READER_TEXT_ONLY" envDefault:"false"`
	AutoScroll   bool `yaml:"auto_scroll" env:"LANTERN_READER_AUTO_SCROLL" envDefault:"true"`
	CenterSpoken bool `yaml:"center_spoken" env:"LANTERN_READER_CENTER_SPOKEN" envDefault:"true"`

	Highlight       ColorConfig `yaml:"highlight"`
	SpokenHighlight ColorConfig `yaml:"spoken_highlight"`
}

// ColorConfig is an RGBA color with channels in [0, 1].
type ColorConfig struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
	A float64 `yaml:"a"`
}

// TTSConfig holds the speech pacing knobs and the reading-time model.
type TTSConfig struct {
	Speed              float64 `yaml:"speed" env:"LANTERN_TTS_SPEED" envDefault:"1.0"`
	Volume             float64 `yaml:"volume" env:"LANTERN_TTS_VOLUME" envDefault:"1.0"`
	PauseAfterSentence float64 `yaml:"pause_after_sentence" env:"LANTERN_TTS_PAUSE_AFTER_SENTENCE" envDefault:"0.4"`

	BaseWPM  float64 `yaml:"base_wpm" env:"LANTERN_TTS_BASE_WPM" envDefault:"150"`
	FloorWPM float64 `yaml:"floor_wpm" env:"LANTERN_TTS_FLOOR_WPM" envDefault:"60"`
}

// SegmenterConfig holds the sentence splitter knobs. An empty
// abbreviation list selects the built-in set.
type SegmenterConfig struct {
	CharLimit     int      `yaml:"char_limit" env:"LANTERN_SEGMENTER_CHAR_LIMIT" envDefault:"220"`
	WordLimit     int      `yaml:"word_limit" env:"LANTERN_SEGMENTER_WORD_LIMIT" envDefault:"36"`
	Abbreviations []string `yaml:"abbreviations" env:"LANTERN_SEGMENTER_ABBREVIATIONS"`
}

// SpeechConfig holds the normalizer's user-tunable vocabulary.
type SpeechConfig struct {
	MinChars     int               `yaml:"min_chars" env:"LANTERN_SPEECH_MIN_CHARS" envDefault:"2"`
	Replacements map[string]string `yaml:"replacements"`
	DropTokens   []string          `yaml:"drop_tokens" env:"LANTERN_SPEECH_DROP_TOKENS"`
	BrandNames   map[string]string `yaml:"brand_names"`
	Acronyms     []string          `yaml:"acronyms" env:"LANTERN_SPEECH_ACRONYMS"`
}

// ShellConfig holds the interactive shell's file-backed options.
type ShellConfig struct {
	Watch bool `yaml:"watch" env:"LANTERN_SHELL_WATCH" envDefault:"true"`
	JSON  bool `yaml:"json" env:"LANTERN_SHELL_JSON" envDefault:"false"`
	Width int  `yaml:"width" env:"LANTERN_SHELL_WIDTH" envDefault:"0"`
}

// Default returns a Config with the out-of-the-box values.
func Default() Config {
	return Config{
		Reader:    DefaultReaderConfig(),
		TTS:       DefaultTTSConfig(),
		Segmenter: DefaultSegmenterConfig(),
		Speech:    DefaultSpeechConfig(),
		Shell:     DefaultShellConfig(),
	}
}

// DefaultReaderConfig returns the default display configuration.
func DefaultReaderConfig() ReaderConfig {
	s := reader.DefaultSettings()
	return ReaderConfig{
		FontSize:         s.FontSize,
		LinesPerPage:     s.LinesPerPage,
		MarginHorizontal: s.MarginHorizontal,
		MarginVertical:   s.MarginVertical,
		LineSpacing:      s.LineSpacing,
		WordSpacing:      s.WordSpacing,
		LetterSpacing:    s.LetterSpacing,
		TextOnly:         s.TextOnly,
		AutoScroll:       s.AutoScroll,
		CenterSpoken:     s.CenterSpoken,
		Highlight:        ColorConfig(s.Highlight),
		SpokenHighlight:  ColorConfig(s.SpokenHighlight),
	}
}

// DefaultTTSConfig returns the default speech pacing configuration.
func DefaultTTSConfig() TTSConfig {
	s := reader.DefaultSettings()
	return TTSConfig{
		Speed:              s.TTSSpeed,
		Volume:             s.TTSVolume,
		PauseAfterSentence: s.PauseAfterSentence,
		BaseWPM:            150,
		FloorWPM:           60,
	}
}

// DefaultSegmenterConfig returns the default splitter configuration.
func DefaultSegmenterConfig() SegmenterConfig {
	return SegmenterConfig{
		CharLimit: sentence.DefaultCharLimit,
		WordLimit: sentence.DefaultWordLimit,
	}
}

// DefaultSpeechConfig returns the default normalizer configuration.
func DefaultSpeechConfig() SpeechConfig {
	return SpeechConfig{
		MinChars: speech.DefaultMinChars,
	}
}

// DefaultShellConfig returns the default shell configuration.
func DefaultShellConfig() ShellConfig {
	return ShellConfig{
		Watch: true,
	}
}

// Validate checks the configuration for values no clamp can rescue.
func (c *Config) Validate() error {
	if err := c.Reader.Validate(); err != nil {
		return fmt.Errorf("reader config: %w", err)
	}
	if err := c.TTS.Validate(); err != nil {
		return fmt.Errorf("tts config: %w", err)
	}
	if err := c.Segmenter.Validate(); err != nil {
		return fmt.Errorf("segmenter config: %w", err)
	}
	if err := c.Speech.Validate(); err != nil {
		return fmt.Errorf("speech config: %w", err)
	}
	return nil
}

// Validate checks the display configuration.
func (c *ReaderConfig) Validate() error {
	if c.FontSize < 1 {
		return fmt.Errorf("font_size must be at least 1, got %d", c.FontSize)
	}
	if c.LinesPerPage < 1 {
		return fmt.Errorf("lines_per_page must be at least 1, got %d", c.LinesPerPage)
	}
	if c.LineSpacing <= 0 {
		return fmt.Errorf("line_spacing must be positive, got %f", c.LineSpacing)
	}
	return nil
}

// Validate checks the speech pacing configuration.
func (c *TTSConfig) Validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("speed must be positive, got %f", c.Speed)
	}
	if c.Volume < 0 {
		return fmt.Errorf("volume must not be negative, got %f", c.Volume)
	}
	if c.PauseAfterSentence < 0 {
		return fmt.Errorf("pause_after_sentence must not be negative, got %f", c.PauseAfterSentence)
	}
	if c.BaseWPM <= 0 {
		return fmt.Errorf("base_wpm must be positive, got %f", c.BaseWPM)
	}
	if c.FloorWPM <= 0 {
		return fmt.Errorf("floor_wpm must be positive, got %f", c.FloorWPM)
	}
	return nil
}

// Validate checks the splitter configuration.
func (c *SegmenterConfig) Validate() error {
	if c.CharLimit < 1 {
		return fmt.Errorf("char_limit must be at least 1, got %d", c.CharLimit)
	}
	if c.WordLimit < 1 {
		return fmt.Errorf("word_limit must be at least 1, got %d", c.WordLimit)
	}
	return nil
}

// Validate checks the normalizer configuration.
func (c *SpeechConfig) Validate() error {
	if c.MinChars < 1 {
		return fmt.Errorf("min_chars must be at least 1, got %d", c.MinChars)
	}
	return nil
}

// SegmenterOptions bridges to the sentence splitter.
func (c Config) SegmenterOptions() sentence.Options {
	return sentence.Options{
		Abbreviations: c.Segmenter.Abbreviations,
		CharLimit:     c.Segmenter.CharLimit,
		WordLimit:     c.Segmenter.WordLimit,
	}
}

// SpeechOptions bridges to the normalizer.
func (c Config) SpeechOptions() speech.Options {
	return speech.Options{
		Replacements: c.Speech.Replacements,
		DropTokens:   c.Speech.DropTokens,
		BrandNames:   c.Speech.BrandNames,
		Acronyms:     c.Speech.Acronyms,
		MinChars:     c.Speech.MinChars,
	}
}

// ReaderSettings bridges the display and pacing sections to session
// settings.
func (c Config) ReaderSettings() reader.Settings {
	return reader.Settings{
		FontSize:         c.Reader.FontSize,
		LinesPerPage:     c.Reader.LinesPerPage,
		MarginHorizontal: c.Reader.MarginHorizontal,
		MarginVertical:   c.Reader.MarginVertical,
		LineSpacing:      c.Reader.LineSpacing,
		WordSpacing:      c.Reader.WordSpacing,
		LetterSpacing:    c.Reader.LetterSpacing,

		PauseAfterSentence: c.TTS.PauseAfterSentence,
		TTSSpeed:           c.TTS.Speed,
		TTSVolume:          c.TTS.Volume,

		Highlight:       reader.Color(c.Reader.Highlight),
		SpokenHighlight: reader.Color(c.Reader.SpokenHighlight),

		TextOnly:     c.Reader.TextOnly,
		AutoScroll:   c.Reader.AutoScroll,
		CenterSpoken: c.Reader.CenterSpoken,
	}
}

// SessionConfig assembles a ready session configuration: splitter,
// normalizer, settings, and the reading-time model.
func (c Config) SessionConfig() reader.Config {
	return reader.Config{
		Splitter:   sentence.NewSplitter(c.SegmenterOptions()),
		Normalizer: speech.NewNormalizer(c.SpeechOptions()),
		Settings:   c.ReaderSettings(),
		BaseWPM:    c.TTS.BaseWPM,
		FloorWPM:   c.TTS.FloorWPM,
	}
}

// SettingsPatch expresses the configured settings as a full patch, for
// pushing a reloaded configuration into a running session. Every field
// is present; the session clamps as usual and derives cursors when the
// text-only flag flips.
func (c Config) SettingsPatch() reader.Patch {
	s := c.ReaderSettings()
	return reader.Patch{
		FontSize:         &s.FontSize,
		LinesPerPage:     &s.LinesPerPage,
		MarginHorizontal: &s.MarginHorizontal,
		MarginVertical:   &s.MarginVertical,
		LineSpacing:      &s.LineSpacing,
		WordSpacing:      &s.WordSpacing,
		LetterSpacing:    &s.LetterSpacing,

		PauseAfterSentence: &s.PauseAfterSentence,
		TTSSpeed:           &s.TTSSpeed,
		TTSVolume:          &s.TTSVolume,

		Highlight:       &s.Highlight,
		SpokenHighlight: &s.SpokenHighlight,

		TextOnly:     &s.TextOnly,
		AutoScroll:   &s.AutoScroll,
		CenterSpoken: &s.CenterSpoken,
	}
}
