// Package watcher monitors staging folders and notifies a handler when
// media files land, so posts can be regenerated incrementally.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/xlordnoro/postar/internal/logging"
)

// EventType classifies a filesystem event.
type EventType string

const (
	EventCreate EventType = "create"
	EventWrite  EventType = "write"
	EventMove   EventType = "move"
	EventDelete EventType = "delete"
)

// FileEvent is one media-file change.
type FileEvent struct {
	Type EventType
	Path string
}

// Handler receives media-file events.
type Handler interface {
	HandleFileEvent(event FileEvent) error
}

// Watcher wraps fsnotify over one or more staging folders.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	handler   Handler
	log       *logging.Logger
	recursive bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithRecursive controls whether subfolders are watched (default true).
func WithRecursive(recursive bool) Option {
	return func(w *Watcher) { w.recursive = recursive }
}

// New creates a Watcher delivering events to handler.
func New(handler Handler, log *logging.Logger, opts ...Option) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("unable to create watcher: %w", err)
	}

	if log == nil {
		log = logging.Nop()
	}
	w := &Watcher{
		fsWatcher: fsWatcher,
		handler:   handler,
		log:       log,
		recursive: true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch registers the given folders.
func (w *Watcher) Watch(paths []string) error {
	for _, path := range paths {
		if w.recursive {
			if err := w.addRecursive(path); err != nil {
				return err
			}
			continue
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("unable to watch %s: %w", path, err)
		}
		w.log.Info("watcher", "watching", logging.F("path", path))
	}
	return nil
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(filepath.Base(path), ".") {
			return filepath.SkipDir
		}
		if err := w.fsWatcher.Add(path); err != nil {
			return fmt.Errorf("unable to watch %s: %w", path, err)
		}
		w.log.Info("watcher", "watching", logging.F("path", path))
		return nil
	})
}

// Start blocks, dispatching events until the watcher is closed.
func (w *Watcher) Start() error {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if w.recursive && !strings.HasPrefix(filepath.Base(event.Name), ".") {
						w.fsWatcher.Add(event.Name)
						w.log.Info("watcher", "watching new directory", logging.F("path", event.Name))
					}
					continue
				}
			}

			if err := w.handleEvent(event); err != nil {
				w.log.Error("watcher", "event handler failed", err, logging.F("path", event.Name))
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Error("watcher", "watch error", err)
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}

func (w *Watcher) handleEvent(event fsnotify.Event) error {
	if !isMediaFile(event.Name) {
		return nil
	}

	eventType := EventCreate
	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		eventType = EventWrite
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		eventType = EventMove
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		eventType = EventDelete
	}

	w.log.Debug("watcher", "event", logging.F("type", eventType), logging.F("file", filepath.Base(event.Name)))
	return w.handler.HandleFileEvent(FileEvent{Type: eventType, Path: event.Name})
}

func isMediaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mkv", ".rar", ".zip":
		return true
	}
	return false
}
