// Package watch observes a set of paths by polling and reports the ones
// that disappear, so the visible result list can drop dead entries
// between scans.
package watch

import (
	"errors"
	"io/fs"
	"sync"
	"time"

	"github.com/sadopc/stray/internal/scanner"
)

// DefaultInterval is the polling cadence.
const DefaultInterval = 2 * time.Second

// Watcher polls a replaceable set of paths and emits each one on the
// events channel when it stops existing. Stat errors other than
// not-exist leave a path watched; transient unreadability is not a
// deletion.
type Watcher struct {
	src      scanner.Source
	interval time.Duration

	mu    sync.Mutex
	paths map[string]struct{}

	events   chan string
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher over src. A non-positive interval falls back to
// DefaultInterval.
func New(src scanner.Source, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		src:      src,
		interval: interval,
		paths:    make(map[string]struct{}),
		events:   make(chan string, 64),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// SetPaths replaces the watched set.
func (w *Watcher) SetPaths(paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.paths = make(map[string]struct{}, len(paths))
	for _, p := range paths {
		w.paths[p] = struct{}{}
	}
}

// Events returns the channel deletions are reported on.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Start launches the polling loop.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop terminates the loop and waits for it to exit.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}

func (w *Watcher) loop() {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

// check stats every watched path and emits the ones that no longer
// exist. An emitted path leaves the set so each deletion fires once.
func (w *Watcher) check() {
	w.mu.Lock()
	snapshot := make([]string, 0, len(w.paths))
	for p := range w.paths {
		snapshot = append(snapshot, p)
	}
	w.mu.Unlock()

	for _, p := range snapshot {
		_, err := w.src.Stat(p)
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			continue
		}
		w.mu.Lock()
		delete(w.paths, p)
		w.mu.Unlock()
		select {
		case w.events <- p:
		default:
			// Drop when nobody drains; the next scan reconciles.
		}
	}
}
