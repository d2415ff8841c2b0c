package blur

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads an effect's shaders when their files change.
//
// Run watches the files on its own goroutine and only marks a reload as
// pending. Apply performs the reload and must be called from the render
// thread, typically once per frame before Draw.
type Watcher struct {
	effect  *Effect
	fsw     *fsnotify.Watcher
	files   map[string]struct{}
	pending atomic.Bool
}

// NewWatcher watches the shader files of e. It returns ErrNotFileBacked
// when e was configured with inline shader source.
func NewWatcher(e *Effect) (*Watcher, error) {
	src, ok := e.Source().(FileSource)
	if !ok {
		return nil, ErrNotFileBacked
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("blur: create watcher: %w", err)
	}

	w := &Watcher{
		effect: e,
		fsw:    fsw,
		files:  make(map[string]struct{}),
	}

	// Editors often save by renaming a temporary file over the original,
	// which drops a watch placed on the file itself. Watch directories.
	dirs := make(map[string]struct{})
	for _, p := range src.Paths() {
		abs, err := filepath.Abs(p)
		if err != nil {
			fsw.Close()
			return nil, fmt.Errorf("blur: watch %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("blur: watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run blocks until ctx is done or the watcher is closed, marking a reload
// as pending whenever a shader file is written, created or renamed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.pending.Store(true)
			w.effect.log().Debug("blur: shader changed", "path", event.Name, "op", event.Op.String())
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.effect.log().Warn("blur: watcher error", "err", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	_, ok := w.files[abs]
	return ok
}

// Pending reports whether a reload is waiting for Apply.
func (w *Watcher) Pending() bool { return w.pending.Load() }

// Apply reloads the shaders if a change was seen since the last call. It
// reports whether a reload was attempted. A failed reload keeps the
// previous programs.
func (w *Watcher) Apply() (bool, error) {
	if !w.pending.CompareAndSwap(true, false) {
		return false, nil
	}
	return true, w.effect.Reload()
}

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
