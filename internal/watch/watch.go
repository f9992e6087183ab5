// Package watch re-runs analysis when a source file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lexframe-labs/lexframe-cli/internal/logger"
)

// defaultDebounce coalesces editor write bursts into one trigger.
const defaultDebounce = 300 * time.Millisecond

// Watcher triggers a callback when the watched file changes.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(ctx context.Context) error
}

// New creates a watcher for one file. onChange runs after each debounced
// change; its error is logged, not fatal, so a broken edit does not end
// the watch.
func New(path string, onChange func(ctx context.Context) error) *Watcher {
	return &Watcher{
		path:     path,
		debounce: defaultDebounce,
		onChange: onChange,
	}
}

// Run blocks until the context is canceled, re-triggering on changes.
// The parent directory is watched rather than the file itself: editors
// that replace files on save (rename + create) would otherwise detach
// the watch.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", w.path, err)
	}

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("change detected: %s (%s)", event.Name, event.Op)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if err := w.onChange(ctx); err != nil {
				logger.Warn("re-run failed: %v", err)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}
