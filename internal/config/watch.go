package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow collapses editor save bursts into one reload.
const debounceWindow = 100 * time.Millisecond

// Reload is delivered on Watcher.Events after the watched file changes.
// Err is set when the new contents failed to load; Config is then unusable.
type Reload struct {
	Path   string
	Config RunnerConfig
	Err    error
}

// Watcher reloads a configuration file whenever it changes on disk.
// The parent directory is watched so editors that replace the file are seen.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Events  chan Reload
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// Watch starts watching path. Close must be called to release the watcher.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		Events:  make(chan Reload, 4),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	// Reloads fire once the file has been quiet for debounceWindow, so a
	// truncate followed by a write is read as a single change.
	timer := time.NewTimer(debounceWindow)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(debounceWindow)
		case <-timer.C:
			cfg, err := LoadFile(w.path)
			select {
			case w.Events <- Reload{Path: w.path, Config: cfg, Err: err}:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
