package store

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"tally/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes a database file (and its -wal/-journal siblings) and
// calls onChange once writes have settled. It never writes to the store.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	dir         string
	base        string
	onChange    func()
	debounceDur time.Duration
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool

	stats WatcherStats
}

// WatcherStats tracks watcher activity for debugging.
type WatcherStats struct {
	Events        int
	Notifications int
	Errors        int
	LastEventTime time.Time
	LastEventPath string
}

// NewWatcher creates a watcher for the database file at path.
func NewWatcher(path string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher:     fw,
		dir:         filepath.Dir(path),
		base:        filepath.Base(path),
		onChange:    onChange,
		debounceDur: 100 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; events are handled in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil // Already running
	}
	w.running = true
	w.mu.Unlock()

	// SQLite replaces and appends sibling files, so watch the directory.
	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	logging.Store("watcher: watching %s in %s", w.base, w.dir)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryStore).Errorf("watcher: error closing: %v", err)
	}
}

// Stats returns a copy of the watcher counters.
func (w *Watcher) Stats() WatcherStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounceDur)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.mu.Lock()
			w.stats.Events++
			w.stats.LastEventTime = time.Now()
			w.stats.LastEventPath = event.Name
			w.mu.Unlock()
			timer.Reset(w.debounceDur)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryStore).Errorf("watcher error: %v", err)
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()

		case <-timer.C:
			w.mu.Lock()
			w.stats.Notifications++
			w.mu.Unlock()
			w.onChange()
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	return strings.HasPrefix(filepath.Base(event.Name), w.base)
}
