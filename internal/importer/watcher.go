package importer

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lukia82-netizen/LALK-Stats/internal/export"
)

// FoundFunc receives every valid team document dropped into the watched
// directory, along with the path it came from.
type FoundFunc func(path string, doc export.TeamDocument)

// Watcher monitors a drop directory for team document files.
type Watcher struct {
	dir      string
	onFound  FoundFunc
	stopChan chan struct{}
}

// NewWatcher creates a watcher for the given directory.
func NewWatcher(dir string, onFound FoundFunc) *Watcher {
	return &Watcher{
		dir:      dir,
		onFound:  onFound,
		stopChan: make(chan struct{}),
	}
}

// Run watches the directory until the context is cancelled or Stop is
// called. Only .json files are considered; a file that fails validation
// is logged and skipped.
func (w *Watcher) Run(ctx context.Context) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch import directory: %w", err)
	}

	// A just-created file may still be mid-write; give the writer a
	// moment before reading.
	const settleDelay = 200 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stopChan:
			return nil
		case event := <-watcher.Events:
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
				continue
			}
			time.Sleep(settleDelay)
			doc, err := ImportTeam(event.Name)
			if err != nil {
				log.Printf("[Import] Skipping %s: %v", filepath.Base(event.Name), err)
				continue
			}
			w.onFound(event.Name, doc)
		case err := <-watcher.Errors:
			log.Printf("[Import] File watcher error: %v", err)
		}
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.stopChan)
}
