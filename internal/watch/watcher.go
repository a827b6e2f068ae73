// Package watch reports on-disk changes to the espanso files the
// editor has open, so a session can flag a conflict when the file is
// modified behind the user's back.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"espedit/internal/log"
)

// ChangeEvent is one document-relevant file event.
type ChangeEvent struct {
	Path      string
	Op        fsnotify.Op
	Timestamp time.Time
}

// Watcher monitors the config and match directories of an espanso
// workspace using fsnotify.
type Watcher struct {
	// Directories being watched
	directories []string

	// Channel delivering change events
	events chan ChangeEvent

	// Channel to signal stop
	stopChan chan struct{}

	// fsnotify watcher instance
	fsWatcher *fsnotify.Watcher

	// Guards running state and the directories list
	mutex sync.RWMutex

	// Whether the watcher is running
	running bool
}

// New creates a watcher. Directories are added with AddDirectory
// before Start.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		directories: []string{},
		events:      make(chan ChangeEvent, 16),
		stopChan:    make(chan struct{}),
		fsWatcher:   fsWatcher,
	}, nil
}

// AddDirectory starts watching a directory for document changes.
func (w *Watcher) AddDirectory(dir string) error {
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	w.mutex.Lock()
	found := false
	for _, existing := range w.directories {
		if existing == dir {
			found = true
			break
		}
	}
	if !found {
		w.directories = append(w.directories, dir)
	}
	w.mutex.Unlock()
	log.LogWithFields(log.F("directory", dir)).Info("Watching directory")
	return nil
}

// Events returns the channel delivering document change events.
func (w *Watcher) Events() <-chan ChangeEvent {
	return w.events
}

// Start begins delivering events.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	w.stopChan = make(chan struct{})

	go func() {
		// This goroutine is the only sender on w.events, so it owns
		// the close. Closing from Stop could race a pending send.
		defer close(w.events)
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if !isDocumentEvent(event) {
					continue
				}
				change := ChangeEvent{
					Path:      event.Name,
					Op:        event.Op,
					Timestamp: time.Now(),
				}
				// Non-blocking send so a stalled consumer cannot wedge
				// the fsnotify goroutine
				select {
				case w.events <- change:
				default:
					log.LogWithFields(log.F("file", event.Name)).Warn("Event channel is full, dropped event")
				}

			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				log.LogWithFields(log.F("error", err)).Error("fsnotify watcher error")

			case <-w.stopChan:
				return
			}
		}
	}()

	log.Info("Watcher started")
	return nil
}

// isDocumentEvent filters for events that can invalidate an open
// document: writes, creations, removals and renames of YAML files.
func isDocumentEvent(event fsnotify.Event) bool {
	relevant := event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
	if !relevant {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	return ext == ".yml" || ext == ".yaml"
}

// Stop halts event delivery. The forwarding goroutine closes the
// event channel on its way out.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	if !w.running {
		return
	}

	close(w.stopChan)

	if err := w.fsWatcher.Close(); err != nil {
		log.LogWithFields(log.F("error", err)).Error("Error closing fsnotify watcher")
	}

	w.running = false

	log.Info("Watcher stopped")
}

// IsRunning reports whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	return w.running
}

// Directories returns a copy of the watched directory list.
func (w *Watcher) Directories() []string {
	w.mutex.RLock()
	defer w.mutex.RUnlock()
	dirs := make([]string, len(w.directories))
	copy(dirs, w.directories)
	return dirs
}
