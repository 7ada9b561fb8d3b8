package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watcher reports changes to a single file. The parent directory is watched
// so that editors replacing the file through a rename are still seen.
type Watcher struct {
	path      string
	fs        *fsnotify.Watcher
	debouncer *Debouncer
	onChange  func()

	mu          sync.Mutex
	ignoreUntil time.Time

	done chan struct{}
	wg   sync.WaitGroup
}

// New starts watching path. onChange runs on a timer goroutine after a burst
// of writes has settled.
func New(path string, debounce time.Duration, onChange func()) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:      abs,
		fs:        fs,
		debouncer: NewDebouncer(debounce),
		onChange:  onChange,
		done:      make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// IgnoreFor suppresses notifications for d, used around our own saves.
func (w *Watcher) IgnoreFor(d time.Duration) {
	w.mu.Lock()
	w.ignoreUntil = time.Now().Add(d)
	w.mu.Unlock()
}

func (w *Watcher) ignoring() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return time.Now().Before(w.ignoreUntil)
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if w.ignoring() {
				logrus.Debugf("Ignoring own change to %s", w.path)
				continue
			}
			w.debouncer.Trigger(w.onChange)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logrus.Warnf("File watcher error: %v", err)
		}
	}
}

// Close stops the watcher and drops any pending notification.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fs.Close()
	w.wg.Wait()
	w.debouncer.Cancel()
	return err
}
