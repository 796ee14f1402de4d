// Package watch blocks until an upstream stage drops its signal artifact.
// Stages signal completion by writing a descriptor file after their data
// files, so waiting on the descriptor name is enough to order the pipeline.
package watch

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// WaitFor blocks until a file matching pattern (a glob over the base name)
// exists in dir, and returns its absolute path. Files already present are
// checked before watching, so the call cannot miss a file written earlier.
// Cancellation or deadline on ctx ends the wait.
func WaitFor(ctx context.Context, dir, pattern string, log *slog.Logger) (string, error) {
	if log == nil {
		log = slog.Default()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return "", err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return "", err
	}

	// The watcher is registered before the scan so a file arriving between
	// the two is seen either way.
	if p, ok, err := scan(dir, pattern); err != nil {
		return "", err
	} else if ok {
		return p, nil
	}

	log.Info("waiting for artifact", "dir", dir, "pattern", pattern)
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return "", context.Canceled
			}
			if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) {
				continue
			}
			matched, err := path.Match(pattern, filepath.Base(ev.Name))
			if err != nil {
				return "", err
			}
			if matched {
				return filepath.Abs(ev.Name)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return "", context.Canceled
			}
			log.Warn("watch error", "dir", dir, "error", err)
		}
	}
}

func scan(dir, pattern string) (string, bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		matched, err := path.Match(pattern, e.Name())
		if err != nil {
			return "", false, err
		}
		if matched {
			abs, err := filepath.Abs(filepath.Join(dir, e.Name()))
			if err != nil {
				return "", false, err
			}
			return abs, true, nil
		}
	}
	return "", false, nil
}
