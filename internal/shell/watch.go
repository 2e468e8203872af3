package shell

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// Watcher reports changes to a single book file. Editors that replace
// the file on save surface as create or rename events in the parent
// directory, so the directory is watched and events are filtered by
// name.
type Watcher struct {
	fsw     *fsnotify.Watcher
	limiter *rate.Limiter
	events  chan string

	done      chan struct{}
	closeOnce sync.Once
}

// WatchFile watches path, emitting at most one event per debounce
// interval. Bursts of writes within the interval collapse into one.
func WatchFile(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		fsw:     fsw,
		limiter: rate.NewLimiter(rate.Every(debounce), 1),
		events:  make(chan string, 1),
		done:    make(chan struct{}),
	}
	go w.loop(abs)
	return w, nil
}

// Events delivers the changed path, debounced.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) loop(path string) {
	base := filepath.Base(path)

	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !w.limiter.Allow() {
				continue
			}
			select {
			case w.events <- path:
			default:
				// A reload is already pending.
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Debug("watch error", "error", err)
		}
	}
}
