// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hotreload

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gogpu/clockwork"
	"github.com/gogpu/clockwork/resource"
)

// fakeLoader records loads and reloads without touching a GPU.
type fakeLoader struct {
	loads     [][]byte
	reloads   map[clockwork.TextureID][]byte
	reloadErr error
}

func newFakeLoader() *fakeLoader {
	return &fakeLoader{reloads: make(map[clockwork.TextureID][]byte)}
}

func (f *fakeLoader) LoadTexture(encoded []byte) (clockwork.TextureID, error) {
	f.loads = append(f.loads, encoded)
	return resource.NewID[clockwork.Texture](len(f.loads)), nil
}

func (f *fakeLoader) ReloadTexture(id clockwork.TextureID, encoded []byte) error {
	if f.reloadErr != nil {
		return f.reloadErr
	}
	f.reloads[id] = encoded
	return nil
}

func newTestWatcher(t *testing.T, loader TextureLoader) *Watcher {
	t.Helper()
	w, err := New(loader)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

func TestLoadTracksFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.png")
	writeFile(t, path, "v1")

	loader := newFakeLoader()
	w := newTestWatcher(t, loader)

	id, err := w.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if id.Index() != 1 {
		t.Errorf("expected id 1, got %d", id.Index())
	}
	if len(loader.loads) != 1 || string(loader.loads[0]) != "v1" {
		t.Errorf("expected one load of v1, got %q", loader.loads)
	}

	abs, _ := filepath.Abs(path)
	if got, ok := w.tracked[abs]; !ok || got != id {
		t.Errorf("expected %s tracked as %v", abs, id)
	}
}

func TestLoadMissingFile(t *testing.T) {
	w := newTestWatcher(t, newFakeLoader())
	if _, err := w.Load(filepath.Join(t.TempDir(), "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestApplyReloadsChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.png")
	writeFile(t, path, "v1")

	loader := newFakeLoader()
	w := newTestWatcher(t, loader)
	id, err := w.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	writeFile(t, path, "v2")

	deadline := time.Now().Add(5 * time.Second)
	for w.Pending() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for file event")
		}
		time.Sleep(10 * time.Millisecond)
	}

	n, err := w.Apply(context.Background())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 reload, got %d", n)
	}
	if got := string(loader.reloads[id]); got != "v2" {
		t.Errorf("expected reload with v2, got %q", got)
	}
}

func TestUntrackedFilesIgnored(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.png")
	writeFile(t, path, "v1")

	w := newTestWatcher(t, newFakeLoader())
	if _, err := w.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	w.markChanged(filepath.Join(dir, "other.png"))
	if w.Pending() != 0 {
		t.Errorf("expected untracked file to be ignored, got %d pending", w.Pending())
	}
}

func TestApplyKeepsTextureOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.png")
	writeFile(t, path, "v1")

	loader := newFakeLoader()
	loader.reloadErr = &clockwork.DecodeError{Err: errors.New("bad png")}
	w := newTestWatcher(t, loader)
	if _, err := w.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	abs, _ := filepath.Abs(path)
	w.markChanged(abs)

	n, err := w.Apply(context.Background())
	if n != 0 {
		t.Errorf("expected 0 reloads, got %d", n)
	}
	if !errors.Is(err, clockwork.ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
	if len(loader.reloads) != 0 {
		t.Errorf("expected no reloads recorded, got %d", len(loader.reloads))
	}
}

func TestApplyCanceledKeepsPending(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.png")
	writeFile(t, path, "v1")

	loader := newFakeLoader()
	w := newTestWatcher(t, loader)
	if _, err := w.Load(path); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	abs, _ := filepath.Abs(path)
	w.markChanged(abs)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n, err := w.Apply(ctx)
	if n != 0 {
		t.Errorf("expected 0 reloads, got %d", n)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if w.Pending() != 1 {
		t.Errorf("expected the change to stay queued, got %d", w.Pending())
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	w, err := New(newFakeLoader())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if err := w.Track("x.png", clockwork.TextureID{}); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}
