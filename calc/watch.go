package calc

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultSettle = 100 * time.Millisecond

// Watcher reloads a configuration file whenever it changes and hands the
// new configuration to a callback. Files that fail to load are reported
// and skipped; the callback only ever sees valid configurations.
type Watcher struct {
	path     string
	logger   *zap.Logger
	onReload func(Config)
	settle   time.Duration

	watcher *fsnotify.Watcher

	mu       sync.Mutex
	watching bool
	done     chan struct{}
}

// NewWatcher prepares a watcher for the configuration file at path.
func NewWatcher(path string, logger *zap.Logger, onReload func(Config)) (*Watcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     abs,
		logger:   logger,
		onReload: onReload,
		settle:   defaultSettle,
		watcher:  fw,
	}, nil
}

// Start begins watching. The directory holding the file is watched rather
// than the file itself, so editors that replace the file on save still
// trigger a reload.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watching {
		return errors.New("already watching")
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	w.watching = true
	w.done = make(chan struct{})
	go w.watchLoop(w.done)
	return nil
}

// Stop ends watching and releases the underlying watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.watching {
		w.mu.Unlock()
		return nil
	}
	w.watching = false
	close(w.done)
	w.mu.Unlock()
	return w.watcher.Close()
}

func (w *Watcher) watchLoop(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Error watching configuration", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	// let a burst of writes from one save settle into a single reload
	time.Sleep(w.settle)
	w.reload()
}

func (w *Watcher) reload() {
	config, err := LoadConfig(w.path)
	if err != nil {
		w.logger.Warn("Error reloading configuration", zap.String("path", w.path), zap.Error(err))
		return
	}
	if _, err := config.Options(); err != nil {
		w.logger.Warn("Rejected configuration", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("Configuration reloaded", zap.String("path", w.path), zap.Int("rules", len(config.Rules)))
	w.onReload(config)
}
