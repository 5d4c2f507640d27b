package config

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/yanmxa/fsgate/internal/policy"
)

func newTestWatcher(t *testing.T, projectDir string, onReload func(error)) (*Watcher, *policy.Store) {
	t.Helper()
	loader := NewLoaderWithOptions(filepath.Join(t.TempDir(), "user"), projectDir, nil)
	s, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	p, err := s.Policy()
	if err != nil {
		t.Fatalf("Policy() error = %v", err)
	}
	store := policy.NewStore(p)

	w, err := NewWatcher(loader, store, WatcherOptions{Debounce: 20 * time.Millisecond, OnReload: onReload})
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	return w, store
}

func TestWatcherReload(t *testing.T) {
	projectDir := t.TempDir()
	settingsPath := filepath.Join(projectDir, "settings.json")
	writeFile(t, settingsPath, `{"maxFileSizeMB": 1}`)

	var mu sync.Mutex
	var outcomes []error
	w, store := newTestWatcher(t, projectDir, func(err error) {
		mu.Lock()
		outcomes = append(outcomes, err)
		mu.Unlock()
	})
	defer w.Stop()

	before := store.Current()
	if before.MaxFileSizeBytes() != 1024*1024 {
		t.Fatalf("initial max = %d", before.MaxFileSizeBytes())
	}

	writeFile(t, settingsPath, `{"maxFileSizeMB": 3}`)
	if err := w.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	after := store.Current()
	if after.MaxFileSizeBytes() != 3*1024*1024 {
		t.Errorf("reloaded max = %d, want %d", after.MaxFileSizeBytes(), 3*1024*1024)
	}
	if before.MaxFileSizeBytes() != 1024*1024 {
		t.Error("previous policy snapshot must not change")
	}

	// invalid settings keep the published policy
	writeFile(t, settingsPath, `{"maxFileSizeMB": -4}`)
	if err := w.Reload(); err == nil {
		t.Error("Reload() should fail for an invalid size")
	}
	if store.Current() != after {
		t.Error("failed reload replaced the policy")
	}

	writeFile(t, settingsPath, `{not json`)
	if err := w.Reload(); err == nil {
		t.Error("Reload() should fail for malformed settings")
	}
	if store.Current() != after {
		t.Error("failed reload replaced the policy")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(outcomes) != 3 || outcomes[0] != nil || outcomes[1] == nil || outcomes[2] == nil {
		t.Errorf("OnReload outcomes = %v", outcomes)
	}
}

func TestWatcherWatch(t *testing.T) {
	projectDir := t.TempDir()
	settingsPath := filepath.Join(projectDir, "settings.yaml")
	writeFile(t, settingsPath, "max_file_size_mb: 1\n")

	reloaded := make(chan error, 8)
	w, store := newTestWatcher(t, projectDir, func(err error) { reloaded <- err })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// Give the watcher a moment to register its directories.
	time.Sleep(50 * time.Millisecond)

	// unrelated files in the directory are ignored
	writeFile(t, filepath.Join(projectDir, "notes.txt"), "x")
	writeFile(t, settingsPath, "max_file_size_mb: 4\n")

	deadline := time.After(5 * time.Second)
	for store.Current().MaxFileSizeBytes() != 4*1024*1024 {
		select {
		case <-reloaded:
		case <-deadline:
			t.Fatal("settings change was not picked up")
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not return after cancel")
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}

func TestWatcherNoDirectories(t *testing.T) {
	w, _ := newTestWatcher(t, filepath.Join(t.TempDir(), "missing"), nil)
	// user dir is also missing
	if err := w.Watch(context.Background()); err == nil {
		t.Error("Watch() should fail with nothing to watch")
	}
	if err := w.Stop(); err != nil {
		t.Errorf("Stop() error = %v", err)
	}
}
