// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package hotreload watches texture files and reloads them into the texture
// slots they were first loaded into, so every render operation referring to
// the slot picks up the new image.
//
// File events are collected by a background goroutine. The GPU work happens
// in Apply, which must be called from the goroutine driving the
// RenderContext, typically once per frame.
package hotreload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gogpu/clockwork"
)

// ErrClosed is returned by operations on a closed Watcher.
var ErrClosed = errors.New("hotreload: watcher closed")

// TextureLoader is the part of a RenderContext a Watcher drives.
type TextureLoader interface {
	LoadTexture(encoded []byte) (clockwork.TextureID, error)
	ReloadTexture(id clockwork.TextureID, encoded []byte) error
}

var _ TextureLoader = (*clockwork.RenderContext)(nil)

// Watcher reloads textures whose files change on disk.
type Watcher struct {
	loader  TextureLoader
	watcher *fsnotify.Watcher
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	tracked map[string]clockwork.TextureID
	dirs    map[string]bool
	pending map[string]struct{}
	closed  bool
}

// New starts a watcher feeding loader.
func New(loader TextureLoader) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("hotreload: create watcher: %w", err)
	}
	w := &Watcher{
		loader:  loader,
		watcher: fw,
		done:    make(chan struct{}),
		tracked: make(map[string]clockwork.TextureID),
		dirs:    make(map[string]bool),
		pending: make(map[string]struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Load reads the texture file at path, loads it and watches it.
func (w *Watcher) Load(path string) (clockwork.TextureID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return clockwork.TextureID{}, err
	}
	id, err := w.loader.LoadTexture(data)
	if err != nil {
		return clockwork.TextureID{}, fmt.Errorf("load %s: %w", path, err)
	}
	if err := w.Track(path, id); err != nil {
		return clockwork.TextureID{}, err
	}
	return id, nil
}

// Track watches path and reloads it into id whenever it changes.
//
// The file's directory is watched rather than the file itself, so editors
// that save by renaming a temporary file over the original are picked up.
func (w *Watcher) Track(path string, id clockwork.TextureID) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if !w.dirs[dir] {
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("hotreload: watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.tracked[abs] = id
	clockwork.Logger().Debug("watching texture", "path", abs, "id", id)
	return nil
}

// Pending returns the number of changed files waiting for Apply.
func (w *Watcher) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Apply reloads every texture whose file changed since the last call and
// returns how many were reloaded. Files that fail to read or decode keep
// their current texture and their errors are joined into the returned error.
// When ctx is done the remaining files stay queued for the next call.
func (w *Watcher) Apply(ctx context.Context) (int, error) {
	w.mu.Lock()
	type job struct {
		path string
		id   clockwork.TextureID
	}
	jobs := make([]job, 0, len(w.pending))
	for path := range w.pending {
		jobs = append(jobs, job{path: path, id: w.tracked[path]})
	}
	clear(w.pending)
	w.mu.Unlock()

	var errs []error
	reloaded := 0
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			w.mu.Lock()
			for _, rest := range jobs[i:] {
				w.pending[rest.path] = struct{}{}
			}
			w.mu.Unlock()
			errs = append(errs, err)
			break
		}
		data, err := os.ReadFile(j.path)
		if err == nil {
			err = w.loader.ReloadTexture(j.id, data)
		}
		if err != nil {
			clockwork.Logger().Warn("texture reload failed", "path", j.path, "err", err)
			errs = append(errs, fmt.Errorf("reload %s: %w", j.path, err))
			continue
		}
		reloaded++
		clockwork.Logger().Info("texture reloaded", "path", j.path, "id", j.id)
	}
	return reloaded, errors.Join(errs...)
}

// markChanged queues path if it is tracked.
func (w *Watcher) markChanged(path string) {
	path = filepath.Clean(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.tracked[path]; ok {
		w.pending[path] = struct{}{}
	}
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.markChanged(e.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			clockwork.Logger().Warn("file watcher error", "err", err)
		case <-w.done:
			return
		}
	}
}

// Close stops watching. Pending changes are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
