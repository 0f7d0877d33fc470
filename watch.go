package lantern

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Resetter is implemented by Sites that can drop their caches. CachedSite is
// a Resetter.
type Resetter interface {
	Reset()
}

// Watcher resets a Site's caches whenever a file under a template directory
// changes. It's meant for development, where templates are read from disk
// with os.DirFS instead of being embedded.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
}

// WatchTemplates starts watching dir and every directory below it, calling
// target.Reset after each write, create, remove or rename. Watching stops
// when ctx is done or Close is called.
func WatchTemplates(ctx context.Context, dir string, target Resetter) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating template watcher: %w", err)
	}
	err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		return fsw.Add(path)
	})
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("error watching %q: %w", dir, err)
	}
	w := &Watcher{
		fsw:  fsw,
		done: make(chan struct{}),
	}
	go w.run(ctx, target)
	return w, nil
}

func (w *Watcher) run(ctx context.Context, target Resetter) {
	defer close(w.done)
	log := Logger(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fsw.Add(event.Name); err != nil {
						log.WarnContext(ctx, "error watching new template directory", "path", event.Name, "error", err)
					}
				}
			}
			log.DebugContext(ctx, "template changed, resetting caches", "path", event.Name, "op", event.Op.String())
			target.Reset()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.WarnContext(ctx, "template watcher error", "error", err)
		}
	}
}

// Close stops the Watcher and waits for it to finish.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}
