package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ruminaider/combosync/internal/logger"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Result is one reload of a watched dataset.
type Result struct {
	Data []any
	Err  error
}

// Watch reloads the dataset at path whenever it changes and streams the
// results until ctx is cancelled. The directory is watched rather than the
// file so atomic renames are seen. The channel is closed when watching stops.
func Watch(ctx context.Context, path string, debounce time.Duration) (<-chan Result, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving dataset path: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	out := make(chan Result, 1)
	go func() {
		var (
			timer *time.Timer
			wg    sync.WaitGroup
		)
		defer func() {
			if timer != nil && timer.Stop() {
				wg.Done()
			}
			wg.Wait()
			close(out)
		}()
		defer w.Close()

		send := func(r Result) {
			select {
			case out <- r:
			case <-ctx.Done():
			}
		}
		reload := func() {
			defer wg.Done()
			data, err := Load(abs)
			logger.L.Debug("dataset reloaded", "path", abs, "items", len(data), "err", err)
			send(Result{Data: data, Err: err})
		}

		target := filepath.Base(abs)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(ev.Name) != target {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				if timer != nil && timer.Stop() {
					wg.Done()
				}
				wg.Add(1)
				timer = time.AfterFunc(debounce, reload)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				send(Result{Err: fmt.Errorf("watching dataset: %w", err)})
			}
		}
	}()
	return out, nil
}
