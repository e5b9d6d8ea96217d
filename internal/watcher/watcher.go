// Package watcher monitors the transcript drop directory and feeds new
// recognizer result files into the captioning worker.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler processes one dropped transcript file.
type Handler func(ctx context.Context, path string) error

// settleDelay gives the producer time to finish writing before we read.
const settleDelay = 500 * time.Millisecond

// Watcher dispatches new .json files in a directory to a Handler, with at
// most maxConcurrent files in flight.
type Watcher struct {
	dir       string
	handler   Handler
	fsw       *fsnotify.Watcher
	semaphore chan struct{}
	wg        sync.WaitGroup
}

// New creates a Watcher over dir. maxConcurrent values below one fall back
// to two.
func New(dir string, handler Handler, maxConcurrent int) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &Watcher{
		dir:       dir,
		handler:   handler,
		fsw:       fsw,
		semaphore: make(chan struct{}, maxConcurrent),
	}, nil
}

// Run blocks dispatching events until ctx is cancelled, then waits for
// in-flight handlers to finish.
func (w *Watcher) Run(ctx context.Context) error {
	slog.Info("transcript watcher started", "dir", w.dir, "max_concurrent", cap(w.semaphore))

	for {
		select {
		case <-ctx.Done():
			slog.Info("waiting for in-flight transcripts")
			w.wg.Wait()
			slog.Info("transcript watcher stopped")
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) || !isTranscriptFile(event.Name) {
				continue
			}

			slog.Info("new transcript detected", "path", event.Name)
			time.Sleep(settleDelay)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(path string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, path); err != nil {
						slog.Error("transcript processing failed", "path", path, "error", err)
					}
				}(event.Name)
			case <-ctx.Done():
				return ctx.Err()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

// Close releases the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func isTranscriptFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.ToLower(filepath.Ext(name)) == ".json"
}
