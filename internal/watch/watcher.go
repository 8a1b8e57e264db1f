// Package watch re-processes local objects when XML files in the SDF
// objects directory change.
package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"suitedeploy/internal/sdfxml"
)

// Watcher debounces filesystem events on one directory into calls to a
// change handler.
type Watcher struct {
	dir      string
	debounce time.Duration
	onChange func(ctx context.Context)
	log      *zap.Logger
	fsw      *fsnotify.Watcher

	mu       sync.Mutex
	triggers int
	closed   bool
}

// New watches dir. onChange runs on the Run goroutine once events have been
// quiet for debounce.
func New(dir string, debounce time.Duration, onChange func(ctx context.Context), log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		onChange: onChange,
		log:      log.Named("watch"),
		fsw:      fsw,
	}, nil
}

// Triggers returns how many times the change handler has run.
func (w *Watcher) Triggers() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.triggers
}

// Run blocks until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	w.log.Info("watching for object changes", zap.String("dir", w.dir), zap.Duration("debounce", w.debounce))

	// Stop and Reset never leave a stale tick behind as of Go 1.23.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.log.Debug("object file changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error", zap.Error(err))

		case <-timer.C:
			w.mu.Lock()
			w.triggers++
			w.mu.Unlock()
			w.onChange(ctx)
		}
	}
}

// Close stops the underlying watcher, which ends Run.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsw.Close()
}

// relevant keeps create, write, remove and rename events on .xml files.
func relevant(event fsnotify.Event) bool {
	if !sdfxml.IsObjectFile(event.Name) {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
