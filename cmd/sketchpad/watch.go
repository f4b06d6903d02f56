package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// burstDelay is how long to wait after the last file event before acting, so
// an editor's write-chmod-write shows up as one change.
const burstDelay = 16 * time.Millisecond

// watch calls onChange after every settled change to path until ctx is done.
// It watches the parent directory so editors that replace the file on save
// keep being seen.
func watch(ctx context.Context, path string, onChange func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	slog.Info("watching for changes", "path", path)

	burst := time.NewTimer(0)
	<-burst.C

	for {
		select {
		case ev, ok := <-fw.Events:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			if filepath.Clean(ev.Name) != abs || ev.Op == fsnotify.Chmod {
				continue
			}
			slog.Debug("file event", "event", ev)
			burst.Reset(burstDelay)
		case <-burst.C:
			slog.Info("detected change, re-rendering", "path", path)
			onChange()
		case err, ok := <-fw.Errors:
			if !ok {
				return errors.New("fsnotify watcher closed")
			}
			slog.Error("fsnotify error", "error", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
