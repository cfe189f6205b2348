// ============================================================================
// minic - File Watcher
// ============================================================================
//
// Package: watch
// Description: Re-runs a callback when watched source files change on disk.
//              Directories are watched rather than files so editors that
//              replace a file by renaming are handled.
// Author: Mike Stoffels
// Created: 2026-10-14
// License: MIT
// ============================================================================

package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
)

// DefaultDebounce is the quiet period before a change is reported
const DefaultDebounce = 200 * time.Millisecond

// ErrRunning is returned by Start on a watcher that already runs
var ErrRunning = errors.New("watch: already running")

// Options configures a Watcher
type Options struct {
	Logger   *slog.Logger
	Debounce time.Duration

	// OnChange is called from the watch goroutine, one path at a time
	OnChange func(path string)
}

// Watcher reports changes of a fixed set of files
type Watcher struct {
	files   map[string]string // absolute path -> path as given
	watcher *fsnotify.Watcher
	logger  *slog.Logger
	options Options
	running bool
	done    chan struct{}
	mu      sync.Mutex
}

// New creates a watcher for paths
func New(paths []string, opts Options) (*Watcher, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.OnChange == nil {
		return nil, errors.New("watch: OnChange is required")
	}

	files := make(map[string]string, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		files[filepath.Clean(abs)] = p
	}

	return &Watcher{
		files:   files,
		logger:  opts.Logger.With("component", "watch"),
		options: opts,
		done:    make(chan struct{}),
	}, nil
}

// Start begins watching. Watches are registered before Start returns; events
// are processed in a goroutine until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return ErrRunning
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	dirs := lo.Uniq(lo.Map(lo.Keys(w.files), func(path string, _ int) string {
		return filepath.Dir(path)
	}))
	slices.Sort(dirs)

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	w.watcher = watcher
	w.running = true
	w.logger.Info("Started watching for source changes", "files", len(w.files), "dirs", len(dirs))

	go w.watchLoop(ctx)
	return nil
}

// Wait blocks until the watch goroutine has stopped
func (w *Watcher) Wait() {
	<-w.done
}

// watchLoop handles file system events
func (w *Watcher) watchLoop(ctx context.Context) {
	defer func() {
		w.watcher.Close()
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		close(w.done)
	}()

	// Changed files waiting for the debounce period to pass
	pending := make(map[string]bool)
	timer := time.NewTimer(time.Hour)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Stopping file watcher (context cancelled)")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			path, watched := w.files[filepath.Clean(event.Name)]
			if !watched || !relevant(event) {
				continue
			}
			w.logger.Debug("Source file event", "file", path, "op", event.Op.String())
			pending[path] = true
			timer.Reset(w.options.Debounce)

		case <-timer.C:
			changed := lo.Keys(pending)
			slices.Sort(changed)
			clear(pending)
			for _, path := range changed {
				w.options.OnChange(path)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)
		}
	}
}

// relevant reports whether an event may have changed file contents
func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write)
}
