package reader

import (
	"regexp"
	"strings"
)

// SearchState holds the query and its matches over the current page in
// the active coordinate space. Selected is -1 while nothing is
// selected.
type SearchState struct {
	Query    string `json:"query"`
	Matches  []int  `json:"matches"`
	Selected int    `json:"selected"`
}

// setSearchQuery recomputes matches when the query changes. A query
// that finds anything selects its first match right away and moves the
// cursor there, live-search style.
func (s *Session) setSearchQuery(query string) {
	if query == s.search.Query {
		return
	}
	s.search.Query = query
	s.computeMatches()
	if len(s.search.Matches) > 0 {
		s.search.Selected = 0
		s.sentenceClick(s.search.Matches[0])
	}
}

// refreshSearch recomputes matches after the page, mode, or layout
// changed. The selection clears; the next SearchNext starts from the
// first match again.
func (s *Session) refreshSearch() {
	s.computeMatches()
}

// computeMatches runs the query over the active sentence list. A query
// that compiles as a regular expression matches anywhere in the
// sentence; anything else falls back to case-insensitive substring
// containment. Whitespace-only queries match nothing.
func (s *Session) computeMatches() {
	s.search.Matches = nil
	s.search.Selected = -1

	trimmed := strings.TrimSpace(s.search.Query)
	if trimmed == "" {
		return
	}

	sentences := s.activeSentences()
	if re, err := regexp.Compile(trimmed); err == nil {
		for i, sent := range sentences {
			if re.MatchString(sent) {
				s.search.Matches = append(s.search.Matches, i)
			}
		}
		return
	}

	needle := strings.ToLower(trimmed)
	for i, sent := range sentences {
		if strings.Contains(strings.ToLower(sent), needle) {
			s.search.Matches = append(s.search.Matches, i)
		}
	}
}

// searchNext cycles the selection forward with wraparound and moves the
// cursor to the selected match.
func (s *Session) searchNext() {
	n := len(s.search.Matches)
	if n == 0 {
		return
	}
	if s.search.Selected < 0 {
		s.search.Selected = 0
	} else {
		s.search.Selected = (s.search.Selected + 1) % n
	}
	s.sentenceClick(s.search.Matches[s.search.Selected])
}

// searchPrev cycles the selection backward with wraparound.
func (s *Session) searchPrev() {
	n := len(s.search.Matches)
	if n == 0 {
		return
	}
	if s.search.Selected < 0 {
		s.search.Selected = n - 1
	} else {
		s.search.Selected = (s.search.Selected - 1 + n) % n
	}
	s.sentenceClick(s.search.Matches[s.search.Selected])
}

// activeSentences returns the current page's sentence list in the
// active coordinate space.
func (s *Session) activeSentences() []string {
	if s.settings.TextOnly {
		return s.plan().AudioSentences
	}
	return s.pages[s.current].Sentences
}
