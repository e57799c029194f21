package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultWatchDelay debounces bursts of writes from editors.
const DefaultWatchDelay = 500 * time.Millisecond

// WatchFile calls onChange after path is written, created or replaced,
// once per burst of events separated by less than delay. It watches the
// parent directory so editors that save by rename are seen. WatchFile
// blocks until ctx is cancelled; onChange runs on the calling goroutine.
func WatchFile(ctx context.Context, path string, delay time.Duration, logger zerolog.Logger, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if delay <= 0 {
		delay = DefaultWatchDelay
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	logger.Info().Str("file", abs).Dur("delay", delay).Msg("Watching kitchen definition")

	timer := time.NewTimer(delay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug().
				Str("file", event.Name).
				Str("op", event.Op.String()).
				Msg("Kitchen definition changed")
			timer.Reset(delay)

		case <-timer.C:
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("Watcher error")
		}
	}
}
