package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watch reloads the file at path whenever it is written or replaced, and delivers each valid
// configuration on the returned channel. Invalid reloads are logged and dropped. Only the most
// recent undelivered configuration is kept. The channel is closed when ctx is done.
//
// Parameters:
//   - ctx: stops the watcher
//   - path: the configuration file
//
// Returns:
//   - <-chan Config: reloaded configurations
//   - error: an error if the watcher could not be started
func Watch(ctx context.Context, path string) (<-chan Config, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watch config")
	}
	// Watch the directory so editors that replace the file by rename are still seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "watch config %s", path)
	}

	out := make(chan Config, 1)
	target := filepath.Clean(path)

	go func() {
		defer close(out)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				cfg, err := Load(path)
				if err != nil {
					slog.Warn("config reload rejected", "path", path, "error", err)
					continue
				}
				deliver(out, cfg)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", "path", path, "error", err)
			}
		}
	}()
	return out, nil
}

// deliver replaces any pending configuration with cfg.
func deliver(out chan Config, cfg Config) {
	select {
	case <-out:
	default:
	}
	out <- cfg
}
