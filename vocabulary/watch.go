package vocabulary

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/harmonet/logging"
)

const reloadDelay = 250 * time.Millisecond

// Watch reloads the vocabulary at path whenever it changes on disk and hands
// every successfully parsed table to onReload. Bursts of events are
// collapsed into one reload. A file that fails to parse is logged and the
// previous table stays in use. Watching stops when ctx is done.
func Watch(ctx context.Context, path string, onReload func(*Table), log logging.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create watcher: %w", err)
	}
	target := filepath.Clean(path)
	// editors often replace the file, so watch its directory
	if err := w.Add(filepath.Dir(target)); err != nil {
		w.Close()
		return fmt.Errorf("could not watch %v: %w", path, err)
	}

	debounced := debounce.New(reloadDelay)
	reload := func() {
		t, err := Load(target)
		if err != nil {
			log.Error(err, "vocabulary reload failed", logging.Fields{"path": target})
			return
		}
		log.Info("vocabulary reloaded", logging.Fields{"path": target, "sets": t.Len()})
		onReload(t)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					debounced(reload)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Error(err, "vocabulary watcher error", logging.Fields{"path": target})
			}
		}
	}()
	return nil
}
