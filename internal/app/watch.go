package app

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/codeview/internal/codeview"
	"github.com/bethropolis/codeview/internal/logger"
	"github.com/bethropolis/codeview/internal/scheme"
)

// schemeReloadEvent asks the UI loop to reload a scheme file.
type schemeReloadEvent struct {
	tcell.EventTime
	path string
}

func newSchemeReloadEvent(path string) *schemeReloadEvent {
	ev := &schemeReloadEvent{path: path}
	ev.SetEventNow()
	return ev
}

// SchemeWatcher reports writes to one scheme file.
type SchemeWatcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	done      chan struct{}
}

// NewSchemeWatcher watches the directory holding path and calls notify on
// every write or create of path. notify runs on the watcher's goroutine.
func NewSchemeWatcher(path string, notify func(path string)) (*SchemeWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, err
	}
	dir := filepath.Dir(abs)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	w := &SchemeWatcher{fsWatcher: fsw, path: abs, done: make(chan struct{})}
	go w.loop(notify)
	return w, nil
}

func (w *SchemeWatcher) loop(notify func(string)) {
	for {
		select {
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 || filepath.Clean(ev.Name) != w.path {
				continue
			}
			logger.DebugTagf("watch", "scheme file changed: %s", ev.Name)
			notify(w.path)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("Scheme watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

// Close stops watching.
func (w *SchemeWatcher) Close() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// WatchScheme reloads the scheme file whenever it is written. It is an error
// when the active scheme did not come from a file.
func (a *App) WatchScheme() error {
	if a.schemeFile == "" {
		return fmt.Errorf("--watch needs --scheme to name a scheme file")
	}
	w, err := NewSchemeWatcher(a.schemeFile, func(path string) {
		if err := a.ui.PostEvent(newSchemeReloadEvent(path)); err != nil {
			logger.Debugf("dropping scheme reload: %v", err)
		}
	})
	if err != nil {
		return err
	}
	a.watcher = w
	logger.Infof("Watching scheme file %s", a.schemeFile)
	return nil
}

func (a *App) stopWatch() {
	if a.watcher != nil {
		a.watcher.Close()
		a.watcher = nil
	}
}

// reloadScheme re-reads a scheme file. A broken file keeps the current
// scheme.
func (a *App) reloadScheme(path string) error {
	s, err := scheme.LoadFile(path)
	if err != nil {
		return err
	}
	if err := a.view.Configure(codeview.Options{SchemeValue: s}); err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Reloaded scheme %s", s.Name)
	return nil
}
