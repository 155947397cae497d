package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/seezee/launcherhub/internal/models"
)

// ownWriter is implemented by stores that can recognise their own writes.
type ownWriter interface {
	OwnWrite() bool
}

// Watcher reloads the settings file when another writer changes it and hands
// the result to a callback. Events caused by the store's own writes are
// skipped when the store implements OwnWrite.
type Watcher struct {
	store    Store
	onChange func(models.Settings)
	watcher  *fsnotify.Watcher
}

// NewWatcher watches the directory holding store's file.
func NewWatcher(store Store, onChange func(models.Settings)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(store.Path())); err != nil {
		fw.Close()
		return nil, err
	}
	return &Watcher{store: store, onChange: onChange, watcher: fw}, nil
}

// Run delivers reloads until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()
	path := filepath.Clean(w.store.Path())
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if ow, ok := w.store.(ownWriter); ok && ow.OwnWrite() {
				continue
			}
			settings, err := w.store.Load()
			if err != nil {
				slog.Warn("config: reload failed", "path", path, "err", err)
				continue
			}
			slog.Debug("config: settings reloaded", "path", path)
			if w.onChange != nil {
				w.onChange(*settings)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config: watcher error", "err", err)
		}
	}
}
