package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/yanmxa/fsgate/internal/log"
	"github.com/yanmxa/fsgate/internal/policy"
)

// DefaultDebounce is the quiet period after the last settings change before
// a reload runs.
const DefaultDebounce = 100 * time.Millisecond

// WatcherOptions configures a Watcher.
type WatcherOptions struct {
	// Debounce defaults to DefaultDebounce
	Debounce time.Duration

	// OnReload is called after every reload attempt with its outcome
	OnReload func(err error)
}

// Watcher reloads settings when a settings file changes and publishes the
// resulting policy. A reload that fails to load or validate keeps the
// previously published policy.
type Watcher struct {
	loader   *Loader
	store    *policy.Store
	opts     WatcherOptions
	sources  map[string]bool
	watcher  *fsnotify.Watcher
	debounce *debouncer

	mu      sync.Mutex
	running bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher over the loader's settings sources.
func NewWatcher(loader *Loader, store *policy.Store, opts WatcherOptions) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	sources := make(map[string]bool)
	for _, src := range loader.Sources() {
		if abs, err := filepath.Abs(src); err == nil {
			sources[abs] = true
		}
	}

	return &Watcher{
		loader:   loader,
		store:    store,
		opts:     opts,
		sources:  sources,
		watcher:  fw,
		debounce: newDebouncer(opts.Debounce),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Reload loads settings, builds a policy and publishes it.
func (w *Watcher) Reload() error {
	err := w.reload()
	log.LogPolicyReload("watch", err)
	if w.opts.OnReload != nil {
		w.opts.OnReload(err)
	}
	return err
}

func (w *Watcher) reload() error {
	settings, err := w.loader.Load()
	if err != nil {
		return err
	}
	p, err := settings.Policy()
	if err != nil {
		return fmt.Errorf("invalid policy: %w", err)
	}
	w.store.Publish(p)
	if log.IsEnabled() {
		log.Logger().Debug("[policy] published", log.PolicyField(p))
	}
	return nil
}

// Watch blocks until ctx is cancelled or Stop is called. Settings
// directories are watched rather than files so that editors replacing a
// file by rename are still noticed.
func (w *Watcher) Watch(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	defer close(w.doneCh)

	watched := 0
	seen := make(map[string]bool)
	for src := range w.sources {
		dir := filepath.Dir(src)
		if seen[dir] {
			continue
		}
		seen[dir] = true
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		if err := w.watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watched++
	}
	if watched == 0 {
		return fmt.Errorf("no settings directories to watch")
	}

	if log.IsEnabled() {
		log.Logger().Info("[policy] watching settings",
			zap.Int("dirs", watched),
			zap.Int64("debounce_ms", w.opts.Debounce.Milliseconds()))
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-w.stopCh:
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !w.shouldProcess(event) {
				continue
			}
			w.debounce.trigger(func() {
				_ = w.Reload()
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			log.LogError("settings watcher", err)
		}
	}
}

// Stop stops the watcher and cancels any pending reload.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	running := w.running
	w.mu.Unlock()

	close(w.stopCh)
	if running {
		<-w.doneCh
	}
	w.debounce.stop()

	if err := w.watcher.Close(); err != nil {
		return fmt.Errorf("failed to close watcher: %w", err)
	}
	return nil
}

// shouldProcess reports whether event touches a settings source.
func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.sources[abs]
}

// debouncer runs the latest callback once events have been quiet for the
// interval.
type debouncer struct {
	interval time.Duration
	timer    *time.Timer
	mu       sync.Mutex
	callback func()
	stopCh   chan struct{}
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (d *debouncer) trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, func() {
		select {
		case <-d.stopCh:
			return
		default:
		}
		d.mu.Lock()
		cb := d.callback
		d.mu.Unlock()
		if cb != nil {
			cb()
		}
	})
}

func (d *debouncer) stop() {
	close(d.stopCh)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
}
