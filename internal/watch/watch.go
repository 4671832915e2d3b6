// Package watch reruns a callback whenever a query file changes on disk.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/brendan.keane/imdburl/pkg/errors"
)

// DefaultDebounce lets editors finish writing before the file is reread
const DefaultDebounce = 100 * time.Millisecond

// Watcher follows a single file. The parent directory is watched so that
// editors that replace the file on save are still seen.
type Watcher struct {
	logger   zerolog.Logger
	path     string
	debounce time.Duration
	fs       *fsnotify.Watcher
}

// New creates a Watcher for path
func New(logger zerolog.Logger, path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to resolve query file path").
			WithContext("path", path)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "cannot watch query file").
			WithContext("path", path)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to create file watcher")
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to watch directory").
			WithContext("path", filepath.Dir(abs))
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		logger:   logger.With().Str("component", "watch").Str("path", path).Logger(),
		path:     abs,
		debounce: debounce,
		fs:       fs,
	}, nil
}

// Run calls onChange after each settled change until ctx is done. Errors
// from onChange are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, onChange func() error) error {
	defer w.fs.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	w.logger.Info().Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug().Str("op", event.Op.String()).Msg("change detected")

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if _, err := os.Stat(w.path); err != nil {
				// Removed or mid-rename; the next Create brings it back
				w.logger.Debug().Err(err).Msg("query file missing, waiting")
				continue
			}
			if err := onChange(); err != nil {
				w.logger.Warn().Err(err).Msg("rebuild failed")
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("watcher error")
		}
	}
}
