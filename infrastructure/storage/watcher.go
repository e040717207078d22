package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Watcher publishes TopicStorageChanged when a store file is rewritten by
// another process sharing the data directory. Events caused by this process's
// own saves are filtered out via Store.RecentlyWritten. Notifications are
// advisory only: by the time one arrives, a racing write may already have
// won, and that loss is accepted rather than prevented.
type Watcher struct {
	store *Store
	bus   *Bus
	fsw   *fsnotify.Watcher
}

func NewWatcher(store *Store, bus *Bus) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating storage watcher")
	}

	return &Watcher{store: store, bus: bus, fsw: fsw}, nil
}

// Start watches the store's data directory until ctx is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.fsw.Add(w.store.Dir()); err != nil {
		return errors.Wrapf(err, "watching data directory %s", w.store.Dir())
	}

	logrus.WithField("dir", w.store.Dir()).Info("watching data directory for external changes")

	go w.run(ctx)
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer func() {
		if err := w.fsw.Close(); err != nil {
			logrus.WithError(err).Warn("error closing storage watcher")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.isExternalWrite(event) {
				continue
			}

			logrus.WithField("file", filepath.Base(event.Name)).Debug("external storage change detected")
			w.bus.Publish(TopicStorageChanged)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Warn("storage watcher error")
		}
	}
}

func (w *Watcher) isExternalWrite(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	name := filepath.Base(event.Name)
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, ".json") {
		return false
	}

	return !w.store.RecentlyWritten(name)
}
