// Package watch reports changes to the task file using fsnotify.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when a zero delay is configured.
const DefaultDebounce = 200 * time.Millisecond

// FileWatcher monitors a single file and emits one notification per burst
// of writes. The parent directory is watched so that editors which replace
// the file (write to temp, rename) are still observed.
type FileWatcher struct {
	path      string
	dir       string
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	changes   chan struct{}
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFileWatcher creates a watcher for path. The file itself may not exist
// yet, but its directory is created if missing.
func NewFileWatcher(path string, debounce time.Duration, logger *slog.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create watch dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	w := &FileWatcher{
		path:    abs,
		dir:     dir,
		watcher: watcher,
		changes: make(chan struct{}, 1),
		logger:  logger,
	}
	w.debouncer = NewDebouncer(debounce, w.notify)
	return w, nil
}

// Changes delivers a value after each debounced burst of events. It is closed
// once the watcher stops.
func (w *FileWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Start runs the event loop until ctx is cancelled or Stop is called.
func (w *FileWatcher) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.eventLoop(ctx)
	w.logger.Debug("watching task file", "path", w.path)
}

// Stop ends the event loop and closes Changes.
func (w *FileWatcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	_ = w.watcher.Close()
	w.wg.Wait()
}

func (w *FileWatcher) eventLoop(ctx context.Context) {
	defer w.wg.Done()
	defer close(w.changes)
	defer w.debouncer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)

		case <-ctx.Done():
			return
		}
	}
}

func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	w.logger.Debug("task file changed", "op", event.Op.String())
	w.debouncer.Trigger()
}

// notify never blocks; a pending notification already covers this change.
func (w *FileWatcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// Debouncer collapses rapid triggers into a single call after a quiet delay.
type Debouncer struct {
	mu      sync.Mutex
	timer   *time.Timer
	delay   time.Duration
	onFlush func()
	stopped bool
}

func NewDebouncer(delay time.Duration, onFlush func()) *Debouncer {
	return &Debouncer{delay: delay, onFlush: onFlush}
}

// Trigger restarts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.flush)
}

// flush holds the lock so that Stop cannot return while onFlush runs.
func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.stopped && d.onFlush != nil {
		d.onFlush()
	}
}

// Stop cancels any pending flush.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
