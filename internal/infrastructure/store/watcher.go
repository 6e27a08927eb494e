package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ChangeEvent is the cross-context notification: another process wrote
// (or removed) a watched key. NewValue is empty for a removal. The
// payload may race with writes that happen after the event fired, so
// consumers must re-read the authoritative collection instead of
// trusting it.
type ChangeEvent struct {
	Key      string
	OldValue string
	NewValue string
}

// SelfFilter identifies writes performed by this process so the
// watcher can drop them: change notifications fire only in contexts
// that did not perform the write.
type SelfFilter interface {
	IsOwnWrite(key, value string) bool
}

// Watcher turns filesystem notifications on the store directory into
// ChangeEvents. One watcher runs per process.
type Watcher struct {
	dir    string
	self   SelfFilter
	logger *zap.Logger

	watcher *fsnotify.Watcher
	events  chan ChangeEvent
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu       sync.Mutex
	running  bool
	lastSeen map[string]string // key -> last observed value
}

// NewWatcher creates a watcher over the given store directory. self
// may be nil when the process never writes the store.
func NewWatcher(dir string, self SelfFilter, logger *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		dir:      dir,
		self:     self,
		logger:   logger,
		watcher:  fsw,
		events:   make(chan ChangeEvent, 64),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		lastSeen: make(map[string]string),
	}, nil
}

// Events is the stream of cross-context change notifications.
func (w *Watcher) Events() <-chan ChangeEvent {
	return w.events
}

// Start snapshots the current store contents and begins watching.
// Non-blocking; the event loop runs until Stop or context cancel.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return err
	}
	w.snapshot()
	if err := w.watcher.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info("watching store directory", zap.String("dir", w.dir))

	go w.run(ctx)
	return nil
}

// Stop halts the event loop and closes the event stream.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("closing store watcher", zap.Error(err))
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("store watcher error", zap.Error(err))
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	name := filepath.Base(ev.Name)
	if strings.HasSuffix(name, tmpSuffix) {
		return
	}
	key, ok := keyForFilename(name)
	if !ok {
		return
	}

	switch {
	case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
		data, err := os.ReadFile(ev.Name)
		if err != nil {
			return
		}
		value := string(data)

		w.mu.Lock()
		old, seen := w.lastSeen[key]
		if seen && old == value {
			// Duplicate filesystem event for a value already observed.
			w.mu.Unlock()
			return
		}
		w.lastSeen[key] = value
		w.mu.Unlock()

		if w.self != nil && w.self.IsOwnWrite(key, value) {
			return
		}
		w.emit(ChangeEvent{Key: key, OldValue: old, NewValue: value})

	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		if _, err := os.Stat(ev.Name); err == nil {
			// Rename target still exists (atomic replace), the
			// Create event carries the change.
			return
		}
		w.mu.Lock()
		old, seen := w.lastSeen[key]
		delete(w.lastSeen, key)
		w.mu.Unlock()
		if !seen {
			return
		}
		w.emit(ChangeEvent{Key: key, OldValue: old})
	}
}

func (w *Watcher) emit(ev ChangeEvent) {
	select {
	case w.events <- ev:
	default:
		// Slow consumer; drop the payload but keep the signal by
		// logging. Consumers re-read the store, so a dropped event
		// costs freshness, not correctness, once the next one lands.
		w.logger.Warn("store change event dropped", zap.String("key", ev.Key))
	}
}

func (w *Watcher) snapshot() {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		key, ok := keyForFilename(e.Name())
		if !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(w.dir, e.Name()))
		if err != nil {
			continue
		}
		w.lastSeen[key] = string(data)
	}
}
