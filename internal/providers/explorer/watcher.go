package explorer

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/dired/backend/internal/events"
	"github.com/GriffinCanCode/dired/backend/internal/logging"
)

// Watcher follows the currently browsed directory and reports external
// changes so stale snapshots are not committed against.
type Watcher struct {
	fsw      *fsnotify.Watcher
	hub      *events.Hub
	log      *logging.Logger
	onChange func(dir string)

	mu  sync.Mutex
	dir string
}

// NewWatcher creates a watcher and starts its event loop. onChange fires
// once per filesystem event in the watched directory.
func NewWatcher(hub *events.Hub, log *logging.Logger, onChange func(dir string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{fsw: fsw, hub: hub, log: log, onChange: onChange}
	go w.run()
	return w, nil
}

// Point re-targets the watcher at dir, dropping the previous watch.
func (w *Watcher) Point(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.dir == dir {
		return nil
	}
	if w.dir != "" {
		// Best effort; the old directory may already be gone.
		_ = w.fsw.Remove(w.dir)
	}
	if err := w.fsw.Add(dir); err != nil {
		w.dir = ""
		return err
	}
	w.dir = dir
	return nil
}

// Close stops the event loop.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.mu.Lock()
			dir := w.dir
			w.mu.Unlock()

			w.log.Debug("directory changed",
				zap.String("dir", dir),
				zap.String("event", ev.String()),
			)
			if w.onChange != nil {
				w.onChange(dir)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}
