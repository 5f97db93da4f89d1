// Package watch re-triggers ingestion when the source catalogue or a
// locally mirrored statute changes on disk.
//
// Parent directories are watched rather than the files themselves so that
// editors which save by rename still produce events. Bursts of events are
// debounced into a single callback.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/tashri/internal/logger"
)

// DefaultDebounce is the quiet period after the last event before the
// handler runs.
const DefaultDebounce = 500 * time.Millisecond

// ErrClosed is returned when the watcher has been closed.
var ErrClosed = errors.New("watcher closed")

// Handler receives the tracked files that changed since the last call,
// sorted and absolute.
type Handler func(ctx context.Context, changed []string)

// Watcher watches a set of files for changes.
type Watcher struct {
	mu       sync.Mutex
	fsw      *fsnotify.Watcher
	debounce time.Duration
	files    map[string]struct{}
	dirs     map[string]struct{}
	closed   bool
}

// New creates a watcher tracking paths. A zero debounce uses DefaultDebounce.
func New(paths []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}
	if err := w.SetPaths(paths); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// SetPaths replaces the tracked files, e.g. after the catalogue is reloaded.
func (w *Watcher) SetPaths(paths []string) error {
	files := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}

	for dir := range dirs {
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}
	for dir := range w.dirs {
		if _, ok := dirs[dir]; !ok {
			_ = w.fsw.Remove(dir)
		}
	}

	w.files = files
	w.dirs = dirs
	return nil
}

// Paths returns the tracked files, sorted.
func (w *Watcher) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return sortedKeys(w.files)
}

// Run dispatches debounced changes to handle until ctx is cancelled or the
// watcher is closed. handle runs on the caller's goroutine, so events that
// arrive meanwhile are batched into the next call.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			path := w.match(event)
			if path == "" {
				continue
			}
			logger.Debug("Change detected: %s (%s)", path, event.Op)
			pending[path] = struct{}{}
			timer.Reset(w.debounce)
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-fire:
			fire = nil
			changed := sortedKeys(pending)
			clear(pending)
			handle(ctx, changed)
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsw.Close()
}

// match returns the tracked file an event refers to, or "" when the event
// is for an untracked file or only changes permissions.
func (w *Watcher) match(event fsnotify.Event) string {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return ""
	}

	path := filepath.Clean(event.Name)
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.files[path]; !ok {
		return ""
	}
	return path
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
