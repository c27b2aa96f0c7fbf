package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher is a wrapper for watching changes to a set of input files.
type Watcher struct {
	watcher *fsnotify.Watcher
	dirs    map[string]bool
	paths   map[string]bool
}

// NewWatcher returns a new Watcher.
func NewWatcher() (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{watcher, map[string]bool{}, map[string]bool{}}, nil
}

// Close closes the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// AddPath adds a new file to watch. The containing directory is watched, as
// editors often replace a file rather than write to it.
func (w *Watcher) AddPath(file string) error {
	file = filepath.Clean(file)
	w.paths[file] = true

	dir := filepath.Dir(file)
	if w.dirs[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	w.dirs[dir] = true
	return nil
}

// Run watches for file changes.
func (w *Watcher) Run() chan string {
	files := make(chan string, 10)
	go func() {
		changetimes := map[string]time.Time{}
		for w.watcher.Events != nil && w.watcher.Errors != nil {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					w.watcher.Events = nil
					break
				}

				name := filepath.Clean(event.Name)
				if !w.paths[name] {
					break
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					break
				}
				if info, err := os.Lstat(name); err != nil || !info.Mode().IsRegular() {
					break
				}
				if t, ok := changetimes[name]; !ok || 100*time.Millisecond < time.Since(t) {
					time.Sleep(100 * time.Millisecond) // wait to make sure write is finished
					files <- name
					changetimes[name] = time.Now()
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					w.watcher.Errors = nil
					break
				}
				Error.Println(err)
			}
		}
		close(files)
	}()
	return files
}
