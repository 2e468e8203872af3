// Package bookmark persists reading positions keyed by book content
// hash, so a renamed or relocated file keeps its place.
package bookmark

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	gap "github.com/muesli/go-app-paths"
	"gopkg.in/yaml.v3"
)

// Bookmark is one saved reading position. SentenceText carries the
// highlighted sentence so the position survives re-segmentation; the
// index is the fallback when the text cannot be found again.
type Bookmark struct {
	Source       string    `yaml:"source,omitempty"`
	Page         int       `yaml:"page"`
	SentenceIdx  int       `yaml:"sentence_idx"`
	SentenceText string    `yaml:"sentence_text,omitempty"`
	ScrollY      float64   `yaml:"scroll_y,omitempty"`
	SavedAt      time.Time `yaml:"saved_at,omitempty"`
}

// Store is a YAML-backed bookmark collection keyed by content hash.
// Every mutation writes the file through. Safe for concurrent use.
type Store struct {
	path string

	mu    sync.RWMutex
	marks map[string]Bookmark
}

// DefaultPath returns the bookmark file location inside the user's
// lantern data directory.
func DefaultPath() (string, error) {
	scope := gap.NewScope(gap.User, "lantern")
	path, err := scope.DataPath("bookmarks.yml")
	if err != nil {
		return "", fmt.Errorf("resolve bookmark path: %w", err)
	}
	return path, nil
}

// Open loads the store at path, starting empty when the file does not
// exist yet.
func Open(path string) (*Store, error) {
	s := &Store{
		path:  path,
		marks: make(map[string]Bookmark),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}
	if err := yaml.Unmarshal(data, &s.marks); err != nil {
		return nil, fmt.Errorf("parse bookmarks %q: %w", path, err)
	}
	if s.marks == nil {
		s.marks = make(map[string]Bookmark)
	}
	return s, nil
}

// Get retrieves the bookmark for a content hash.
func (s *Store) Get(hash string) (Bookmark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.marks[hash]
	return b, ok
}

// Put stores a bookmark under hash and writes the file. A zero SavedAt
// is stamped with the current time.
func (s *Store) Put(hash string, b Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.SavedAt.IsZero() {
		b.SavedAt = time.Now()
	}
	s.marks[hash] = b
	return s.save()
}

// Delete removes the bookmark for a content hash. Deleting a missing
// entry is a no-op.
func (s *Store) Delete(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.marks[hash]; !ok {
		return nil
	}
	delete(s.marks, hash)
	return s.save()
}

// Len returns the number of stored bookmarks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.marks)
}

// Prune drops bookmarks not saved within maxAge and reports how many
// went. The file is rewritten only when something was removed.
func (s *Store) Prune(maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	pruned := 0
	for hash, b := range s.marks {
		if b.SavedAt.Before(cutoff) {
			delete(s.marks, hash)
			pruned++
		}
	}
	if pruned == 0 {
		return 0, nil
	}
	return pruned, s.save()
}

// save writes the store to disk. Callers hold the write lock.
func (s *Store) save() error {
	data, err := yaml.Marshal(s.marks)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create bookmark directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write bookmarks: %w", err)
	}
	return nil
}
