package shell

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestWatchFileDetectsWrite tests that a write to the watched file
// produces an event.
func TestWatchFileDetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	if err := os.WriteFile(path, []byte("One."), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	w, err := WatchFile(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("WatchFile() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("One. Two."), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	select {
	case got := <-w.Events():
		if got != path {
			t.Errorf("event path = %q, want %q", got, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no event after write")
	}
}

// TestWatchFileIgnoresSiblings tests that unrelated files in the same
// directory do not produce events.
func TestWatchFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	if err := os.WriteFile(path, []byte("One."), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	w, err := WatchFile(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("WatchFile() error = %v", err)
	}
	defer w.Close()

	sibling := filepath.Join(dir, "other.txt")
	if err := os.WriteFile(sibling, []byte("noise"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	time.Sleep(300 * time.Millisecond)
	select {
	case got := <-w.Events():
		t.Errorf("unexpected event %q for a sibling write", got)
	default:
	}
}

// TestWatchFileMissingDir tests the error for an unwatchable path.
func TestWatchFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "book.txt")

	if _, err := WatchFile(path, 50*time.Millisecond); err == nil {
		t.Error("WatchFile() should fail when the directory does not exist")
	}
}

// TestWatcherCloseTwice tests that Close is idempotent.
func TestWatcherCloseTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.txt")
	if err := os.WriteFile(path, []byte("One."), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	w, err := WatchFile(path, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("WatchFile() error = %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
