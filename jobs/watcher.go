package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

const statusEvents = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher runs an extra check as soon as the status file is touched. The
// scheduled poll keeps running regardless, stale records only show up there.
type Watcher struct {
	fsw    *fsnotify.Watcher
	path   string
	poller *Poller
}

// NewWatcher watches the directory rather than the file, since writers that
// replace the file by renaming would otherwise drop the watch.
func NewWatcher(statusPath string, poller *Poller) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create status watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(statusPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(statusPath), err)
	}
	return &Watcher{
		fsw:    fsw,
		path:   filepath.Clean(statusPath),
		poller: poller,
	}, nil
}

// Run blocks until ctx is done or the watcher is closed
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path || event.Op&statusEvents == 0 {
				continue
			}
			w.poller.Check()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Debug("Status watcher error", slog.String("stack", err.Error()))
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsw.Close()
}
