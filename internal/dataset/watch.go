// Feedrank - Multi-Signal Feed Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/feedrank

package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultWatchDebounce groups the burst of events a generator produces while
// rewriting a CSV file into a single reload.
const DefaultWatchDebounce = 2 * time.Second

// Watcher triggers onChange when any of the configured local CSV files is
// written, created or renamed into place. Directories are watched rather than
// files so that atomic replace-by-rename is seen.
//
// Watcher implements suture.Service.
type Watcher struct {
	files    map[string]struct{}
	dirs     []string
	debounce time.Duration
	onChange func(ctx context.Context)
	logger   zerolog.Logger
}

// NewWatcher creates a watcher for the local entries of paths. Remote paths
// are ignored. It returns nil when there is nothing to watch.
//
//nolint:gocritic // hugeParam: paths is three strings
func NewWatcher(paths Paths, debounce time.Duration, onChange func(ctx context.Context), logger zerolog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	w := &Watcher{
		files:    make(map[string]struct{}),
		debounce: debounce,
		onChange: onChange,
		logger:   logger.With().Str("component", "dataset-watcher").Logger(),
	}
	seenDir := make(map[string]struct{})
	for _, p := range []string{paths.Posts, paths.Interests, paths.Likes} {
		if p == "" || isRemote(p) {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}
		w.files[abs] = struct{}{}
		dir := filepath.Dir(abs)
		if _, ok := seenDir[dir]; !ok {
			seenDir[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.files) == 0 {
		return nil
	}
	return w
}

// Serve watches until ctx is cancelled.
func (w *Watcher) Serve(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create fsnotify watcher: %w", err)
	}
	defer fw.Close()

	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.logger.Info().Strs("dirs", w.dirs).Msg("watching dataset files")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return fmt.Errorf("fsnotify event channel closed")
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.Debug().Str("file", ev.Name).Str("op", ev.Op.String()).Msg("dataset file changed")
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case err, ok := <-fw.Errors:
			if !ok {
				return fmt.Errorf("fsnotify error channel closed")
			}
			w.logger.Warn().Err(err).Msg("dataset watcher error")

		case <-timer.C:
			pending = false
			w.onChange(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	_, ok := w.files[filepath.Clean(ev.Name)]
	return ok
}

// Files returns the absolute paths being watched.
func (w *Watcher) Files() []string {
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	return out
}

// String implements fmt.Stringer for supervisor logging.
func (w *Watcher) String() string {
	return "dataset-watcher"
}
