package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfig = `# Display defaults for new reading sessions.
reader:
  font_size: 18
  lines_per_page: 24
  margin_horizontal: 40
  margin_vertical: 20
  line_spacing: 1.4
  word_spacing: 0.0
  letter_spacing: 0.0
  # Start in text-only mode (every sentence shown, citations included)
  text_only: false
  auto_scroll: true
  center_spoken: true
  # Highlight colors, channels in 0..1
  highlight:
    r: 1.0
    g: 0.9
    b: 0.3
    a: 0.35
  spoken_highlight:
    r: 0.3
    g: 0.65
    b: 1.0
    a: 0.3

# Speech pacing.
tts:
  # Playback rate multiplier (0.25 to 4.0)
  speed: 1.0
  # Volume (0.0 to 2.0)
  volume: 1.0
  # Silence after each sentence, in seconds
  pause_after_sentence: 0.4
  # Reading-time model
  base_wpm: 150
  floor_wpm: 60

# Sentence segmentation.
segmenter:
  # A sentence is split only when it exceeds both limits
  char_limit: 220
  word_limit: 36
  # Extra abbreviations that never end a sentence
  # abbreviations: ["vs", "etc"]

# Spoken-text cleanup.
speech:
  # Minimum cleaned-sentence length to be spoken
  min_chars: 2
  # replacements:
  #   "&": "and"
  # drop_tokens: ["[sic]"]
  # brand_names:
  #   iphone: "i phone"
  # acronyms: ["NASA"]

# Interactive shell.
shell:
  # Reload when the book file changes on disk
  watch: true
  # Emit snapshots as JSON instead of rendering pages
  json: false
  # Render width; 0 autodetects from the terminal
  width: 0
`

var configCmd = &cobra.Command{
	Use:     "config",
	Hidden:  false,
	Short:   "Edit the lantern config file",
	Long:    paragraph(fmt.Sprintf("\n%s the lantern config file. We’ll use EDITOR to determine which editor to use. If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("lantern config\nlantern config --config path/to/config.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("LanternLeaf", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}

func ensureConfigFile() error {
	if configFile == "" {
		configFile = viper.GetViper().ConfigFileUsed()
		if err := os.MkdirAll(filepath.Dir(configFile), 0o755); err != nil { //nolint:gosec
			return fmt.Errorf("could not write configuration file: %w", err)
		}
	}

	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '%s' or '%s'", ext, ".yaml", ".yml")
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		// File doesn't exist yet, create all necessary directories and
		// write the default config file
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable create directory: %w", err)
		}

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("unable to create config file: %w", err)
		}
		defer func() { _ = f.Close() }()

		if _, err := f.WriteString(defaultConfig); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil { // some other error occurred
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}
