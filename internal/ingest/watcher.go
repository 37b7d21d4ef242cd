package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/franz/band-scout/internal/util"
)

// debounceWindow coalesces bursts of filesystem events into one reload
const debounceWindow = 500 * time.Millisecond

// Watch re-runs LoadAll whenever one of the dataset files changes,
// calling onReload after each successful ingest. Blocks until ctx is
// cancelled.
func (l *Loader) Watch(ctx context.Context, paths Paths, onReload func(*Result)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	files := map[string]bool{
		filepath.Clean(paths.Bands):     true,
		filepath.Clean(paths.Lyrics):    true,
		filepath.Clean(paths.Edges):     true,
		filepath.Clean(paths.Countries): true,
	}

	// Watch parent directories; editors often replace files wholesale,
	// which drops watches registered on the files themselves.
	dirs := make(map[string]bool)
	for f := range files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	util.InfoLog("Watching %d dataset files for changes", len(files))

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !files[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			util.DebugLog("dataset change detected: %s", event)
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.WarnLog("watch error: %v", err)

		case <-timerC:
			timer = nil
			timerC = nil
			util.InfoLog("Datasets changed, reloading")
			result, err := l.LoadAll(ctx, paths)
			if err != nil {
				util.ErrorLog("reload failed: %v", err)
				continue
			}
			if onReload != nil {
				onReload(result)
			}
		}
	}
}
