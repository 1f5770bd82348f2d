package codegen

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch regenerates into root whenever a file under the handler roots
// changes. Changes are debounced. Generation errors are logged and watching
// continues; Watch returns when ctx is done or the watcher fails.
func (g *Generator) Watch(ctx context.Context, root string, debounce time.Duration) error {
	if debounce <= 0 {
		debounce = 300 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return buildErr(IoError, "starting watcher", err)
	}
	defer watcher.Close()

	g.addWatches(watcher, root)

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if strings.HasPrefix(filepath.Base(event.Name), ".") {
				continue
			}
			g.Logger.Debug("Handler tree changed", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			// New unit directories need their own watch.
			g.addWatches(watcher, root)
			g.regenerate(root)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			g.Logger.Error("Watcher error", "error", err)
		}
	}
}

func (g *Generator) addWatches(watcher *fsnotify.Watcher, root string) {
	for _, dir := range []string{g.Config.ActionsDir, g.Config.TriggersDir} {
		entries, err := fs.ReadDir(g.FS, dir)
		if err != nil {
			g.Logger.Debug("Not watching missing root", "dir", dir)
			continue
		}
		watchDirs := []string{dir}
		for _, e := range entries {
			if e.IsDir() && !ignoredDir(e.Name()) {
				watchDirs = append(watchDirs, path.Join(dir, e.Name()))
			}
		}
		for _, d := range watchDirs {
			if err := watcher.Add(filepath.Join(root, filepath.FromSlash(d))); err != nil {
				g.Logger.Warn("Failed to watch directory", "dir", d, "error", err)
			}
		}
	}
}

func (g *Generator) regenerate(root string) {
	if _, err := g.Generate(root); err != nil {
		g.Logger.Error("Generation failed", "error", err)
	}
}
