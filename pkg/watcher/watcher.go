package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/df07/go-raycaster/pkg/core"
)

// SceneWatcher reports changes to scene files. Bursts of events for the same
// file within the debounce window collapse into a single callback.
type SceneWatcher struct {
	watcher   *fsnotify.Watcher
	logger    core.Logger
	debounce  time.Duration
	mu        sync.Mutex
	callbacks map[string]func(string) // Keyed by absolute file path
	dirs      map[string]int          // Watched directory -> number of files in it
	timers    map[string]*time.Timer
	done      chan struct{}
}

// New creates a scene watcher. A nil logger discards watcher errors.
func New(debounce time.Duration, logger core.Logger) (*SceneWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	sw := &SceneWatcher{
		watcher:   w,
		logger:    logger,
		debounce:  debounce,
		callbacks: make(map[string]func(string)),
		dirs:      make(map[string]int),
		timers:    make(map[string]*time.Timer),
		done:      make(chan struct{}),
	}
	go sw.run()
	return sw, nil
}

// Watch calls callback with the file's absolute path whenever it is written,
// created or replaced. The parent directory is watched rather than the file
// so editors that save by renaming a temporary file are still seen.
func (sw *SceneWatcher) Watch(file string, callback func(string)) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}
	dir := filepath.Dir(absPath)

	sw.mu.Lock()
	defer sw.mu.Unlock()

	if _, exists := sw.callbacks[absPath]; !exists {
		if sw.dirs[dir] == 0 {
			if err := sw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
		sw.dirs[dir]++
	}
	sw.callbacks[absPath] = callback
	return nil
}

// Unwatch stops reporting changes to file
func (sw *SceneWatcher) Unwatch(file string) error {
	absPath, err := filepath.Abs(file)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", file, err)
	}
	dir := filepath.Dir(absPath)

	sw.mu.Lock()
	defer sw.mu.Unlock()

	if _, exists := sw.callbacks[absPath]; !exists {
		return nil
	}
	delete(sw.callbacks, absPath)
	if timer, exists := sw.timers[absPath]; exists {
		timer.Stop()
		delete(sw.timers, absPath)
	}

	sw.dirs[dir]--
	if sw.dirs[dir] == 0 {
		delete(sw.dirs, dir)
		return sw.watcher.Remove(dir)
	}
	return nil
}

// Close stops the watcher and cancels pending callbacks
func (sw *SceneWatcher) Close() error {
	err := sw.watcher.Close()
	<-sw.done

	sw.mu.Lock()
	defer sw.mu.Unlock()
	for _, timer := range sw.timers {
		timer.Stop()
	}
	return err
}

func (sw *SceneWatcher) run() {
	defer close(sw.done)
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				sw.handleFileChange(filepath.Clean(event.Name))
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Printf("Watcher error: %v\n", err)
		}
	}
}

// handleFileChange restarts the debounce timer for a watched file
func (sw *SceneWatcher) handleFileChange(filePath string) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	callback, exists := sw.callbacks[filePath]
	if !exists {
		return
	}

	if timer, exists := sw.timers[filePath]; exists {
		timer.Stop()
	}
	sw.timers[filePath] = time.AfterFunc(sw.debounce, func() {
		callback(filePath)
	})
}
