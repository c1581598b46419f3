// Package watch reruns a callback when source files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/fsnotify/fsnotify"
	"github.com/specialistvlad/typecollect/internal/ctxlog"
)

// Handler is called with the path of a changed file. An error is logged and
// watching continues.
type Handler func(ctx context.Context, path string) error

// Watcher observes a set of directories for files with one extension.
type Watcher struct {
	fs        *fsnotify.Watcher
	extension string
	dirs      []string
}

// New starts watching dirs. Directories are watched instead of single files
// so that editors which save by rename are still seen.
func New(dirs []string, extension string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{fs: fw, extension: extension}
	for _, d := range dirs {
		d = filepath.Clean(d)
		if slices.Contains(w.dirs, d) {
			continue
		}
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch directory %s: %w", d, err)
		}
		w.dirs = append(w.dirs, d)
	}
	return w, nil
}

// Dirs returns the watched directories.
func (w *Watcher) Dirs() []string {
	return w.dirs
}

// Run delivers change events to fn until ctx is done, then closes the
// watcher.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	logger := ctxlog.FromContext(ctx)
	defer w.fs.Close()
	logger.Info("Watching for changes.", "dirs", w.dirs)

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != w.extension {
				continue
			}
			// Atomic saves show up as create.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("Source file changed.", "event", event.Op.String(), "file", event.Name)
			if err := fn(ctx, event.Name); err != nil {
				logger.Error("Rebuild after change failed.", "file", event.Name, "error", err)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Error("File watcher error.", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}
