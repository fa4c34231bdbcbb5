package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sadopc/stray/internal/scanner"
)

func TestWatcher_EmitsDeletions(t *testing.T) {
	root := t.TempDir()
	keep := filepath.Join(root, "keep.ts")
	gone := filepath.Join(root, "gone.ts")
	for _, p := range []string{keep, gone} {
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	w := New(scanner.Local{}, 10*time.Millisecond)
	w.SetPaths([]string{keep, gone})
	w.Start()
	defer w.Stop()

	if err := os.Remove(gone); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-w.Events():
		if p != gone {
			t.Errorf("event path = %q, want %q", p, gone)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("deletion never reported")
	}

	// The surviving path stays quiet, and the deletion fires only once.
	select {
	case p := <-w.Events():
		t.Errorf("unexpected extra event for %q", p)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatcher_SetPathsReplaces(t *testing.T) {
	root := t.TempDir()
	old := filepath.Join(root, "old.ts")
	if err := os.WriteFile(old, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w := New(scanner.Local{}, 10*time.Millisecond)
	w.SetPaths([]string{old})
	w.SetPaths(nil)
	w.Start()
	defer w.Stop()

	if err := os.Remove(old); err != nil {
		t.Fatal(err)
	}

	select {
	case p := <-w.Events():
		t.Errorf("unwatched path %q reported", p)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_StopTerminatesLoop(t *testing.T) {
	w := New(scanner.Local{}, 5*time.Millisecond)
	w.Start()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}
