package drives

import (
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"drivesync/pkg/logging"
)

// FsWatcher is the subset of fsnotify.Watcher used by Watcher.
type FsWatcher interface {
	Add(name string) error
	Close() error
	Events() <-chan fsnotify.Event
	Errors() <-chan error
}

type fsnotifyWatcher struct {
	w *fsnotify.Watcher
}

func (f fsnotifyWatcher) Add(name string) error         { return f.w.Add(name) }
func (f fsnotifyWatcher) Close() error                  { return f.w.Close() }
func (f fsnotifyWatcher) Events() <-chan fsnotify.Event { return f.w.Events }
func (f fsnotifyWatcher) Errors() <-chan error          { return f.w.Errors }

// Watcher reports when drives are mounted or unmounted below the mount roots.
// Bursts of events within the debounce window produce one change.
type Watcher struct {
	fs       FsWatcher
	debounce time.Duration
	changes  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// NewWatcher watches the existing mount roots and their direct subdirectories
// (per-user mount directories such as /media/<user>).
func NewWatcher(roots []string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return newWatcherWith(fsnotifyWatcher{w: fw}, roots, debounce), nil
}

func newWatcherWith(fs FsWatcher, roots []string, debounce time.Duration) *Watcher {
	w := &Watcher{
		fs:       fs,
		debounce: debounce,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	for _, root := range roots {
		w.addTree(root)
	}
	go w.run()
	return w
}

func (w *Watcher) addTree(root string) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return
	}
	if err := w.fs.Add(root); err != nil {
		logging.Debug("Watcher", "cannot watch %s: %v", root, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			_ = w.fs.Add(root + string(os.PathSeparator) + e.Name())
		}
	}
}

// Changes delivers one value per debounced burst. It is closed by Close.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.changes)

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case ev, ok := <-w.fs.Events():
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				// New per-user directory: watch it for the mounts that follow.
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = w.fs.Add(ev.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors():
			if !ok {
				return
			}
			logging.Warn("Watcher", "watch error: %v", err)
		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}
