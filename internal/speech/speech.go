// Package speech turns display sentences into TTS-ready audio units.
//
// The cleanup pipeline strips markup and citations, applies the
// user-configured replacement and pronunciation tables, rewrites years
// and acronyms into spoken English, and tidies whitespace. Each page of
// display sentences yields a Plan: the surviving audio units plus the
// index mappings between the two coordinate spaces.
package speech

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// DefaultMinChars is the minimum trimmed length for a cleaned sentence
// to survive as an audio unit.
const DefaultMinChars = 2

// marker separates joined sentences through the pipeline in page mode.
// A control character, so no cleanup step produces or consumes it.
const marker = "\x1f"

// Options configure a Normalizer. Maps and slices are taken as-is from
// the config layer; all matching against them is literal, a replacement
// key that looks like a regex stays plain text.
type Options struct {
	// Replacements maps literal text to its spoken form, applied
	// longest key first.
	Replacements map[string]string

	// DropTokens are literal strings removed outright.
	DropTokens []string

	// BrandNames maps names to pronunciations, matched whole-word and
	// case-insensitively, longest name first.
	BrandNames map[string]string

	// Acronyms are expanded letter by letter; a trailing digit run is
	// spoken digit by digit ("MP3" reads "M P three").
	Acronyms []string

	MinChars int
}

type brandRule struct {
	pattern *regexp.Regexp
	spoken  string
}

type acronymRule struct {
	pattern *regexp.Regexp
	letters string
}

// Normalizer holds the compiled cleanup pipeline.
type Normalizer struct {
	minChars int

	linkPattern       *regexp.Regexp
	inlineCodePattern *regexp.Regexp
	citationPattern   *regexp.Regexp
	bracketPattern    *regexp.Regexp
	bracePattern      *regexp.Regexp
	yearPattern       *regexp.Regexp
	hspacePattern     *regexp.Regexp
	prePunctPattern   *regexp.Regexp

	replacer *strings.Replacer
	brands   []brandRule
	acronyms []acronymRule
}

// NewNormalizer compiles a Normalizer from opts.
func NewNormalizer(opts Options) *Normalizer {
	n := &Normalizer{
		minChars: opts.MinChars,

		linkPattern:       regexp.MustCompile(`\[([^\]]+)\]\(([^)]*)\)`),
		inlineCodePattern: regexp.MustCompile("`[^`]+`"),
		citationPattern:   regexp.MustCompile(`\[\s*\d+(?:\s*[,–-]\s*\d+)*\s*\]|\(\s*\d+(?:\s*[,–-]\s*\d+)*\s*\)`),
		bracketPattern:    regexp.MustCompile(`\[[^\]]*\]`),
		bracePattern:      regexp.MustCompile(`\{[^}]*\}`),
		yearPattern:       regexp.MustCompile(`\b(1[0-9]{3}|20[0-9]{2})\b`),
		hspacePattern:     regexp.MustCompile(`[ \t]+`),
		prePunctPattern:   regexp.MustCompile(`[ \t]+([.,;:!?])`),
	}
	if n.minChars <= 0 {
		n.minChars = DefaultMinChars
	}

	n.replacer = buildReplacer(opts.Replacements, opts.DropTokens)

	brandNames := make([]string, 0, len(opts.BrandNames))
	for name := range opts.BrandNames {
		brandNames = append(brandNames, name)
	}
	sortLongestFirst(brandNames)
	for _, name := range brandNames {
		n.brands = append(n.brands, brandRule{
			pattern: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`),
			spoken:  opts.BrandNames[name],
		})
	}

	for _, acro := range opts.Acronyms {
		acro = strings.TrimSpace(acro)
		if acro == "" {
			continue
		}
		n.acronyms = append(n.acronyms, acronymRule{
			pattern: regexp.MustCompile(`\b` + regexp.QuoteMeta(acro) + `([0-9]+)?\b`),
			letters: spreadLetters(acro),
		})
	}

	return n
}

// Clean runs the full cleanup pipeline over text.
func (n *Normalizer) Clean(text string) string {
	text = n.linkPattern.ReplaceAllString(text, "$1")
	text = n.inlineCodePattern.ReplaceAllString(text, "")
	text = n.citationPattern.ReplaceAllString(text, "")
	text = n.bracketPattern.ReplaceAllString(text, "")
	text = n.bracePattern.ReplaceAllString(text, "")

	if n.replacer != nil {
		text = n.replacer.Replace(text)
	}

	for _, brand := range n.brands {
		text = brand.pattern.ReplaceAllString(text, brand.spoken)
	}

	text = n.yearPattern.ReplaceAllStringFunc(text, spokenYearToken)

	for _, acro := range n.acronyms {
		text = acro.pattern.ReplaceAllStringFunc(text, func(match string) string {
			return acro.expand(match)
		})
	}

	text = n.hspacePattern.ReplaceAllString(text, " ")
	text = n.prePunctPattern.ReplaceAllString(text, "$1")

	return text
}

// PlanPage cleans a page of display sentences into a Plan. Page mode
// cleans everything in one pass over a marker-joined string; if a
// cleanup step corrupts a marker the count mismatch shows it, and the
// page falls back to cleaning each sentence independently.
func (n *Normalizer) PlanPage(display []string) Plan {
	if len(display) == 0 {
		return Plan{}
	}

	cleaned := strings.Split(n.Clean(strings.Join(display, marker)), marker)
	mode := "page"
	if len(cleaned) != len(display) {
		mode = "sentence"
		cleaned = cleaned[:0]
		for _, s := range display {
			cleaned = append(cleaned, n.Clean(s))
		}
	}

	plan := Plan{DisplayToAudio: make([]int, len(display))}
	for i, c := range cleaned {
		c = strings.TrimSpace(c)
		if !n.keep(c) {
			plan.DisplayToAudio[i] = -1
			continue
		}
		plan.DisplayToAudio[i] = len(plan.AudioSentences)
		plan.AudioToDisplay = append(plan.AudioToDisplay, i)
		plan.AudioSentences = append(plan.AudioSentences, c)
	}

	log.Debug("planned page audio", "mode", mode, "display", len(display), "audio", len(plan.AudioSentences))
	return plan
}

// keep reports whether a trimmed cleaned sentence survives as an audio
// unit.
func (n *Normalizer) keep(trimmed string) bool {
	if utf8.RuneCountInString(trimmed) < n.minChars {
		return false
	}
	for _, r := range trimmed {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// buildReplacer folds user replacements and drop tokens into a single
// longest-first literal replacer.
func buildReplacer(replacements map[string]string, dropTokens []string) *strings.Replacer {
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sortLongestFirst(keys)

	pairs := make([]string, 0, 2*(len(keys)+len(dropTokens)))
	for _, k := range keys {
		pairs = append(pairs, k, replacements[k])
	}
	for _, tok := range dropTokens {
		if tok != "" {
			pairs = append(pairs, tok, "")
		}
	}
	if len(pairs) == 0 {
		return nil
	}
	return strings.NewReplacer(pairs...)
}

// sortLongestFirst orders keys by descending length, ties alphabetical
// so the pipeline is deterministic.
func sortLongestFirst(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
}
