// Package watcher re-runs a callback when governed files change. It
// backs the check command's watch mode.
package watcher

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"govsync/internal/logging"
	"govsync/internal/scanner"
)

// debounce collapses editor save bursts into one trigger.
const debounce = 500 * time.Millisecond

type Watcher struct {
	root string
	fn   func(context.Context)
	log  *slog.Logger
}

// New prepares a watcher over the project root. fn runs once per settled
// batch of filesystem events.
func New(root string, fn func(context.Context)) *Watcher {
	return &Watcher{
		root: root,
		fn:   fn,
		log:  logging.ForComponent("watcher"),
	}
}

// Run blocks until ctx is cancelled, invoking the callback after each
// settled change. The initial run is the caller's responsibility.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := w.addRecursive(fw); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			// New directories need explicit registration.
			if ev.Has(fsnotify.Create) {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() &&
					!scanner.ExcludedDir(filepath.Base(ev.Name)) {
					_ = fw.Add(ev.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		case <-fire:
			fire = nil
			w.log.Debug("change batch settled, re-running")
			w.fn(ctx)
		}
	}
}

func (w *Watcher) addRecursive(fw *fsnotify.Watcher) error {
	return filepath.WalkDir(w.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && scanner.ExcludedDir(d.Name()) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			w.log.Debug("cannot watch directory", "dir", path, "error", err)
		}
		return nil
	})
}
