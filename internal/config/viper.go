package config

import (
	"github.com/spf13/viper"
)

// SetViperDefaults registers every configuration key with its default
// so a partial config file or environment override layers cleanly.
func SetViperDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("reader.font_size", d.Reader.FontSize)
	v.SetDefault("reader.lines_per_page", d.Reader.LinesPerPage)
	v.SetDefault("reader.margin_horizontal", d.Reader.MarginHorizontal)
	v.SetDefault("reader.margin_vertical", d.Reader.MarginVertical)
	v.SetDefault("reader.line_spacing", d.Reader.LineSpacing)
	v.SetDefault("reader.word_spacing", d.Reader.WordSpacing)
	v.SetDefault("reader.letter_spacing", d.Reader.LetterSpacing)
	v.SetDefault("reader.text_only", d.Reader.TextOnly)
	v.SetDefault("reader.auto_scroll", d.Reader.AutoScroll)
	v.SetDefault("reader.center_spoken", d.Reader.CenterSpoken)
	v.SetDefault("reader.highlight.r", d.Reader.Highlight.R)
	v.SetDefault("reader.highlight.g", d.Reader.Highlight.G)
	v.SetDefault("reader.highlight.b", d.Reader.Highlight.B)
	v.SetDefault("reader.highlight.a", d.Reader.Highlight.A)
	v.SetDefault("reader.spoken_highlight.r", d.Reader.SpokenHighlight.R)
	v.SetDefault("reader.spoken_highlight.g", d.Reader.SpokenHighlight.G)
	v.SetDefault("reader.spoken_highlight.b", d.Reader.SpokenHighlight.B)
	v.SetDefault("reader.spoken_highlight.a", d.Reader.SpokenHighlight.A)

	v.SetDefault("tts.speed", d.TTS.Speed)
	v.SetDefault("tts.volume", d.TTS.Volume)
	v.SetDefault("tts.pause_after_sentence", d.TTS.PauseAfterSentence)
	v.SetDefault("tts.base_wpm", d.TTS.BaseWPM)
	v.SetDefault("tts.floor_wpm", d.TTS.FloorWPM)

	v.SetDefault("segmenter.char_limit", d.Segmenter.CharLimit)
	v.SetDefault("segmenter.word_limit", d.Segmenter.WordLimit)
	v.SetDefault("segmenter.abbreviations", d.Segmenter.Abbreviations)

	v.SetDefault("speech.min_chars", d.Speech.MinChars)
	v.SetDefault("speech.replacements", d.Speech.Replacements)
	v.SetDefault("speech.drop_tokens", d.Speech.DropTokens)
	v.SetDefault("speech.brand_names", d.Speech.BrandNames)
	v.SetDefault("speech.acronyms", d.Speech.Acronyms)

	v.SetDefault("shell.watch", d.Shell.Watch)
	v.SetDefault("shell.json", d.Shell.JSON)
	v.SetDefault("shell.width", d.Shell.Width)
}

// FromViper reads the full configuration out of viper and validates
// it. Defaults must have been registered with SetViperDefaults first.
func FromViper(v *viper.Viper) (Config, error) {
	c := Config{
		Reader: ReaderConfig{
			FontSize:         v.GetInt("reader.font_size"),
			LinesPerPage:     v.GetInt("reader.lines_per_page"),
			MarginHorizontal: v.GetInt("reader.margin_horizontal"),
			MarginVertical:   v.GetInt("reader.margin_vertical"),
			LineSpacing:      v.GetFloat64("reader.line_spacing"),
			WordSpacing:      v.GetFloat64("reader.word_spacing"),
			LetterSpacing:    v.GetFloat64("reader.letter_spacing"),
			TextOnly:         v.GetBool("reader.text_only"),
			AutoScroll:       v.GetBool("reader.auto_scroll"),
			CenterSpoken:     v.GetBool("reader.center_spoken"),
			Highlight: ColorConfig{
				R: v.GetFloat64("reader.highlight.r"),
				G: v.GetFloat64("reader.highlight.g"),
				B: v.GetFloat64("reader.highlight.b"),
				A: v.GetFloat64("reader.highlight.a"),
			},
			SpokenHighlight: ColorConfig{
				R: v.GetFloat64("reader.spoken_highlight.r"),
				G: v.GetFloat64("reader.spoken_highlight.g"),
				B: v.GetFloat64("reader.spoken_highlight.b"),
				A: v.GetFloat64("reader.spoken_highlight.a"),
			},
		},
		TTS: TTSConfig{
			Speed:              v.GetFloat64("tts.speed"),
			Volume:             v.GetFloat64("tts.volume"),
			PauseAfterSentence: v.GetFloat64("tts.pause_after_sentence"),
			BaseWPM:            v.GetFloat64("tts.base_wpm"),
			FloorWPM:           v.GetFloat64("tts.floor_wpm"),
		},
		Segmenter: SegmenterConfig{
			CharLimit:     v.GetInt("segmenter.char_limit"),
			WordLimit:     v.GetInt("segmenter.word_limit"),
			Abbreviations: v.GetStringSlice("segmenter.abbreviations"),
		},
		Speech: SpeechConfig{
			MinChars:     v.GetInt("speech.min_chars"),
			Replacements: v.GetStringMapString("speech.replacements"),
			DropTokens:   v.GetStringSlice("speech.drop_tokens"),
			BrandNames:   v.GetStringMapString("speech.brand_names"),
			Acronyms:     v.GetStringSlice("speech.acronyms"),
		},
		Shell: ShellConfig{
			Watch: v.GetBool("shell.watch"),
			JSON:  v.GetBool("shell.json"),
			Width: v.GetInt("shell.width"),
		},
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
