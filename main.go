// Package main provides the entry point for the lantern CLI application.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/muesli/gitcha"
	gap "github.com/muesli/go-app-paths"
	"github.com/sguzman/lantern-leaf/internal/bookmark"
	"github.com/sguzman/lantern-leaf/internal/config"
	"github.com/sguzman/lantern-leaf/internal/reader"
	"github.com/sguzman/lantern-leaf/internal/shell"
	"github.com/sguzman/lantern-leaf/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var (
	// Version as provided by goreleaser.
	Version = ""
	// CommitSHA as provided by goreleaser.
	CommitSHA = ""

	textExtensions = []string{"*.txt", "*.text", "*.md", "*.markdown", "*.mdown", "*.mkd"}
	ignoredDirs    = []string{"node_modules", ".*"}

	configFile string
	jsonOut    bool
	watchFlag  bool
	width      uint
	linesFlag  int
	textOnly   bool
	noRestore  bool
	debug      bool

	rootCmd = &cobra.Command{
		Use:   "lantern [SOURCE]",
		Short: "Read books in the terminal, sentence by sentence",
		Long: paragraph(
			fmt.Sprintf("\nRead a book in the terminal, %s.", keyword("sentence by sentence")),
		),
		SilenceErrors:    false,
		SilenceUsage:     true,
		TraverseChildren: true,
		Args:             cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return nil, cobra.ShellCompDirectiveDefault
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return validateOptions(cmd)
		},
		RunE: execute,
	}
)

// source provides readable book text.
type source struct {
	reader io.ReadCloser
	name   string
	path   string
}

// sourceFromArg parses an argument and creates a readable source for it.
func sourceFromArg(arg string) (*source, error) {
	// from stdin
	if arg == "-" {
		return &source{reader: os.Stdin, name: "stdin"}, nil
	}

	// a directory:
	if len(arg) == 0 {
		// use the current working dir if no argument was supplied
		arg = "."
	}
	st, err := os.Stat(arg)
	if err == nil && st.IsDir() {
		return sourceFromDir(arg)
	}

	r, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %w", err)
	}
	p, err := filepath.Abs(arg)
	if err != nil {
		return nil, fmt.Errorf("unable to get absolute path: %w", err)
	}
	return &source{r, filepath.Base(arg), p}, nil
}

// sourceFromDir picks the most recently modified text file under dir.
func sourceFromDir(dir string) (*source, error) {
	ch, err := gitcha.FindFilesExcept(dir, textExtensions, ignoredDirs)
	if err != nil {
		return nil, fmt.Errorf("unable to scan directory: %w", err)
	}

	var best gitcha.SearchResult
	for res := range ch {
		if !utils.IsTextFile(res.Path) {
			continue
		}
		if best.Path == "" || res.Info.ModTime().After(best.Info.ModTime()) {
			best = res
		}
	}
	if best.Path == "" {
		return nil, errors.New("no text files found")
	}

	r, err := os.Open(best.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %w", err)
	}
	return &source{r, filepath.Base(best.Path), best.Path}, nil
}

// loadBook drains a source and prepares the text for segmentation.
func loadBook(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("unable to read from reader: %w", err)
	}
	return utils.StripFrontmatter(utils.NormalizeText(string(b))), nil
}

// openSession builds a one-shot session for a subcommand, ignoring any
// saved bookmark.
func openSession(args []string) (*reader.Session, error) {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	if arg == "" {
		pipe, err := stdinIsPipe()
		if err != nil {
			return nil, err
		}
		if pipe {
			arg = "-"
		}
	}

	src, err := sourceFromArg(arg)
	if err != nil {
		return nil, err
	}
	defer src.reader.Close() //nolint:errcheck

	text, err := loadBook(src.reader)
	if err != nil {
		return nil, err
	}

	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return reader.New(reader.StringSource{SourceName: src.name, Text: text}, cfg.SessionConfig())
}

func validateOptions(cmd *cobra.Command) error {
	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
		if os.Getenv("LANTERN_LOGFILE") == "" {
			log.SetOutput(os.Stderr)
		}
	}

	// grab config values from Viper
	jsonOut = viper.GetBool("shell.json")
	watchFlag = viper.GetBool("shell.watch")
	width = viper.GetUint("shell.width")

	isTerminal := term.IsTerminal(int(os.Stdout.Fd()))

	// Detect terminal width
	if !cmd.Flags().Changed("width") {
		if isTerminal && width == 0 {
			w, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err == nil {
				width = uint(w) //nolint:gosec
			}

			if width > 120 {
				width = 120
			}
		}
		if width == 0 {
			width = 80
		}
	}
	return nil
}

func stdinIsPipe() (bool, error) {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false, fmt.Errorf("unable to open file: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice == 0 || stat.Size() > 0 {
		return true, nil
	}
	return false, nil
}

func execute(_ *cobra.Command, args []string) error {
	// if stdin is a pipe then use stdin for input. note that you can also
	// explicitly use a - to read from stdin.
	if yes, err := stdinIsPipe(); err != nil {
		return err
	} else if yes {
		src := &source{reader: os.Stdin, name: "stdin"}
		defer src.reader.Close() //nolint:errcheck
		return runShell(src)
	}

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	src, err := sourceFromArg(arg)
	if err != nil {
		return err
	}
	defer src.reader.Close() //nolint:errcheck
	return runShell(src)
}

func runShell(src *source) error {
	// Read environment to get debugging stuff
	shellCfg, err := env.ParseAs[shell.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}

	cfg, err := config.FromViper(viper.GetViper())
	if err != nil {
		return err
	}

	text, err := loadBook(src.reader)
	if err != nil {
		return err
	}

	shellCfg.JSON = jsonOut
	shellCfg.Watch = watchFlag
	shellCfg.Width = int(width) //nolint:gosec

	var marks *bookmark.Store
	if path, err := bookmark.DefaultPath(); err != nil {
		log.Warn("bookmarks unavailable", "err", err)
	} else if store, err := bookmark.Open(path); err != nil {
		log.Warn("bookmarks unavailable", "err", err)
	} else {
		marks = store
	}

	sessionCfg := cfg.SessionConfig()
	if marks != nil && !noRestore {
		if b, ok := marks.Get(reader.HashText(text)); ok {
			sessionCfg.Position = &reader.Position{
				Page:         b.Page,
				SentenceIdx:  b.SentenceIdx,
				SentenceText: b.SentenceText,
				ScrollY:      b.ScrollY,
			}
			log.Debug("restoring bookmark", "source", b.Source, "page", b.Page)
		}
	}

	sess, err := reader.New(reader.StringSource{SourceName: src.name, Text: text}, sessionCfg)
	if err != nil {
		return err
	}

	sh := shell.New(shellCfg, sess, marks)
	if src.path != "" {
		path := src.path
		sh.Reload = func() (string, error) {
			f, err := os.Open(path)
			if err != nil {
				return "", fmt.Errorf("unable to open file: %w", err)
			}
			defer f.Close() //nolint:errcheck
			return loadBook(f)
		}
		if watchFlag {
			if err := sh.Watch(path); err != nil {
				log.Warn("watch unavailable", "err", err)
			}
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		patches := make(chan reader.Patch, 1)
		viper.OnConfigChange(func(fsnotify.Event) {
			c, err := config.FromViper(viper.GetViper())
			if err != nil {
				log.Warn("config change ignored", "err", err)
				return
			}
			select {
			case patches <- c.SettingsPatch():
			default:
			}
		})
		viper.WatchConfig()
		sh.Settings = patches
		log.Debug("watching config file", "path", used)
	}

	return sh.Run(context.Background())
}

func main() {
	closer, err := setupLog()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := rootCmd.Execute(); err != nil {
		_ = closer()
		os.Exit(1)
	}
	_ = closer()
}

func init() {
	tryLoadConfigFromDefaultPlaces()
	if len(CommitSHA) >= 7 {
		vt := rootCmd.VersionTemplate()
		rootCmd.SetVersionTemplate(vt[:len(vt)-1] + " (" + CommitSHA[0:7] + ")\n")
	}
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.InitDefaultCompletionCmd()

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", fmt.Sprintf("config file (default %s)", viper.GetViper().ConfigFileUsed()))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging to stderr")
	rootCmd.Flags().BoolVarP(&jsonOut, "json", "j", false, "print snapshots as JSON")
	rootCmd.Flags().BoolVar(&watchFlag, "watch", true, "reload when the book file changes")
	rootCmd.Flags().UintVarP(&width, "width", "w", 0, "render width (set to 0 to autodetect)")
	rootCmd.Flags().IntVarP(&linesFlag, "lines", "l", 24, "lines per page")
	rootCmd.Flags().BoolVarP(&textOnly, "text-only", "t", false, "show every sentence, citations included")
	rootCmd.Flags().BoolVar(&noRestore, "no-restore", false, "start from page one, ignoring any bookmark")

	// Config bindings
	_ = viper.BindPFlag("shell.json", rootCmd.Flags().Lookup("json"))
	_ = viper.BindPFlag("shell.watch", rootCmd.Flags().Lookup("watch"))
	_ = viper.BindPFlag("shell.width", rootCmd.Flags().Lookup("width"))
	_ = viper.BindPFlag("reader.lines_per_page", rootCmd.Flags().Lookup("lines"))
	_ = viper.BindPFlag("reader.text_only", rootCmd.Flags().Lookup("text-only"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	viper.SetDefault("debug", false)

	rootCmd.AddCommand(configCmd, manCmd, catCmd, exportCmd, statsCmd)
}

func tryLoadConfigFromDefaultPlaces() {
	scope := gap.NewScope(gap.User, "lantern")
	dirs, err := scope.ConfigDirs()
	if err != nil {
		fmt.Println("Could not find configuration directory.")
		os.Exit(1)
	}

	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, "lantern")}, dirs...)
	}

	if c := os.Getenv("LANTERN_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}

	for _, v := range dirs {
		viper.AddConfigPath(v)
	}

	viper.SetConfigName("lantern")
	viper.SetConfigType("yaml")
	viper.SetEnvPrefix("lantern")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetViperDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("Using configuration file", "path", viper.ConfigFileUsed())
		return
	}

	if viper.ConfigFileUsed() == "" {
		configFile = filepath.Join(dirs[0], "lantern.yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "error", err)
	}
}
