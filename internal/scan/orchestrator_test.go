package scan

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sadopc/stray/internal/override"
	"github.com/sadopc/stray/internal/scanner"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func abs(t *testing.T, root string, names ...string) []string {
	t.Helper()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = filepath.Join(root, n)
	}
	return out
}

func sorted(paths []string) []string {
	out := append([]string(nil), paths...)
	sort.Strings(out)
	return out
}

func TestScan_EndToEnd(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".strayrc.json": `{"fileTypes": [".ts"]}`,
		"a.ts":          "",
		"b.ts":          `import "./a"`,
		"c.ts":          "",
	})

	o := New(scanner.Local{}, override.NewStore(), DefaultOptions())
	res, err := o.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if res.Cancelled {
		t.Error("Cancelled = true on a completed scan")
	}
	// Result order is traversal order, so compare sorted.
	want := abs(t, root, "b.ts", "c.ts")
	if got := sorted(res.UnusedFiles); !reflect.DeepEqual(got, want) {
		t.Errorf("UnusedFiles = %v, want %v", got, want)
	}
	if got := o.State(); got != StateDone {
		t.Errorf("State() = %v, want StateDone", got)
	}
	if cur := o.Current(); !reflect.DeepEqual(sorted(cur.UnusedFiles), want) {
		t.Errorf("Current() = %v, want %v", cur.UnusedFiles, want)
	}
	if _, ok := o.LastConfig(); !ok {
		t.Error("LastConfig() not recorded after a scan")
	}
}

func TestScan_UntrackedFilesAreInvisible(t *testing.T) {
	root := t.TempDir()
	// notes.md references a.ts, but .md is not tracked: it is neither a
	// candidate nor evidence of use.
	writeTree(t, root, map[string]string{
		".strayrc.json": `{"fileTypes": [".ts"]}`,
		"a.ts":          "",
		"notes.md":      `see a.ts`,
	})

	o := New(scanner.Local{}, override.NewStore(), DefaultOptions())
	res, err := o.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	want := abs(t, root, "a.ts")
	if !reflect.DeepEqual(res.UnusedFiles, want) {
		t.Errorf("UnusedFiles = %v, want %v", res.UnusedFiles, want)
	}
}

func TestScan_VendorNeverEntersTheScan(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".strayrc.json": `{"fileTypes": [".ts"], "ignoreFolders": ["vendor"]}`,
		"vendor/x.ts":   "",
		"src/y.ts":      "",
	})

	o := New(scanner.Local{}, override.NewStore(), DefaultOptions())
	res, err := o.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	want := abs(t, root, "src/y.ts")
	if !reflect.DeepEqual(res.UnusedFiles, want) {
		t.Errorf("UnusedFiles = %v, want %v (vendor/x.ts must never enter)", res.UnusedFiles, want)
	}
}

func TestScan_MissingRootIsFatal(t *testing.T) {
	o := New(scanner.Local{}, override.NewStore(), DefaultOptions())
	res, err := o.Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if res != nil {
		t.Errorf("expected no partial result on fatal error, got %v", res)
	}
}

func TestScan_FileRootIsFatal(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"plain.ts": ""})

	o := New(scanner.Local{}, override.NewStore(), DefaultOptions())
	if _, err := o.Scan(context.Background(), filepath.Join(root, "plain.ts")); err == nil {
		t.Fatal("expected error for non-directory root")
	}
}

func TestScan_CancelledBeforeStart(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.ts": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := New(scanner.Local{}, override.NewStore(), DefaultOptions())
	res, err := o.Scan(ctx, root)
	if err != nil {
		t.Fatalf("cancellation must not be an error, got %v", err)
	}
	if !res.Cancelled {
		t.Error("Cancelled = false, want true")
	}
	if len(res.UnusedFiles) != 0 {
		t.Errorf("UnusedFiles = %v, want empty", res.UnusedFiles)
	}
	if got := o.State(); got != StateCancelled {
		t.Errorf("State() = %v, want StateCancelled", got)
	}
}

func TestScan_CancelMidBatchingKeepsCompletedBatches(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".strayrc.json": `{"fileTypes": [".ts"]}`,
		"a.ts":          "",
		"b.ts":          "",
		"c.ts":          "",
		"d.ts":          "",
	})

	ctx, cancel := context.WithCancel(context.Background())
	opts := DefaultOptions()
	opts.BatchSize = 2
	o := New(scanner.Local{}, override.NewStore(), opts)
	o.SetProgress(func(p Progress) {
		// Cancel right after the first batch completes.
		if strings.HasPrefix(p.Message, "checked ") && p.Processed == 2 {
			cancel()
		}
	})

	res, err := o.Scan(ctx, root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if !res.Cancelled {
		t.Fatal("Cancelled = false, want true")
	}
	// All four files are unused when judged, so the partial result is
	// exactly the one completed batch; the interrupted batch must not
	// leak any of its files.
	if len(res.UnusedFiles) != 2 {
		t.Errorf("UnusedFiles = %v, want exactly one batch of 2", res.UnusedFiles)
	}
	all := map[string]bool{}
	for _, p := range abs(t, root, "a.ts", "b.ts", "c.ts", "d.ts") {
		all[p] = true
	}
	for _, p := range res.UnusedFiles {
		if !all[p] {
			t.Errorf("unexpected path %q in partial result", p)
		}
	}
}

func TestScan_ProgressReachesTotal(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".strayrc.json": `{"fileTypes": [".ts"]}`,
		"a.ts":          "",
		"b.ts":          "",
		"c.ts":          "",
	})

	var mu sync.Mutex
	var batchReports []Progress
	opts := DefaultOptions()
	opts.BatchSize = 1
	o := New(scanner.Local{}, override.NewStore(), opts)
	o.SetProgress(func(p Progress) {
		if strings.HasPrefix(p.Message, "checked ") {
			mu.Lock()
			batchReports = append(batchReports, p)
			mu.Unlock()
		}
	})

	if _, err := o.Scan(context.Background(), root); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(batchReports) != 3 {
		t.Fatalf("got %d batch reports, want 3", len(batchReports))
	}
	for i, p := range batchReports {
		if p.Processed != i+1 || p.Total != 3 {
			t.Errorf("report %d = (%d, %d), want (%d, 3)", i, p.Processed, p.Total, i+1)
		}
	}
}

func TestOnDelete_RemovesListedPath(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".strayrc.json": `{"fileTypes": [".ts"]}`,
		"b.ts":          "",
		"c.ts":          "",
	})

	o := New(scanner.Local{}, override.NewStore(), DefaultOptions())
	if _, err := o.Scan(context.Background(), root); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	o.OnDelete(filepath.Join(root, "b.ts"))
	want := abs(t, root, "c.ts")
	if cur := o.Current(); !reflect.DeepEqual(cur.UnusedFiles, want) {
		t.Errorf("after OnDelete, Current() = %v, want %v", cur.UnusedFiles, want)
	}

	// Deleting a path that is not listed is a no-op.
	o.OnDelete(filepath.Join(root, "nope.ts"))
	if cur := o.Current(); !reflect.DeepEqual(cur.UnusedFiles, want) {
		t.Errorf("no-op delete changed the result: %v", cur.UnusedFiles)
	}
}

func TestToggle_PinsAndCoalescesRefresh(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".strayrc.json": `{"fileTypes": [".ts"]}`,
		"a.ts":          "",
		"b.ts":          `import "./a"`,
	})

	ov := override.NewStore()
	opts := DefaultOptions()
	opts.Settle = 20 * time.Millisecond
	o := New(scanner.Local{}, ov, opts)

	fired := make(chan struct{}, 8)
	o.SetRefresh(func() { fired <- struct{}{} })
	defer o.Close()

	if _, err := o.Scan(context.Background(), root); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	// b.ts is listed unused: toggling pins it used. a.ts is not listed:
	// toggling pins it unused.
	bPath := filepath.Join(root, "b.ts")
	aPath := filepath.Join(root, "a.ts")
	o.Toggle(bPath)
	o.Toggle(aPath)
	o.Toggle(aPath) // rapid re-toggle coalesces

	if v, ok := ov.Get(bPath); !ok || !v {
		t.Errorf("override for b.ts = (%v, %v), want pinned used", v, ok)
	}
	if v, ok := ov.Get(aPath); !ok || v {
		t.Errorf("override for a.ts = (%v, %v), want pinned unused", v, ok)
	}

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("refresh callback never fired")
	}
	select {
	case <-fired:
		t.Fatal("rapid toggles must coalesce into a single refresh")
	case <-time.After(100 * time.Millisecond):
	}

	// The next scan reflects both pins.
	res, err := o.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	want := abs(t, root, "a.ts")
	if !reflect.DeepEqual(res.UnusedFiles, want) {
		t.Errorf("after pins, UnusedFiles = %v, want %v", res.UnusedFiles, want)
	}
}

func TestReset_ReturnsPathToHeuristic(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".strayrc.json": `{"fileTypes": [".ts"]}`,
		"a.ts":          "",
		"b.ts":          `import "./a"`,
	})

	ov := override.NewStore()
	o := New(scanner.Local{}, ov, DefaultOptions())

	aPath := filepath.Join(root, "a.ts")
	ov.Set(aPath, false)
	o.Reset(aPath)

	res, err := o.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	for _, p := range res.UnusedFiles {
		if p == aPath {
			t.Error("after Reset, a.ts is referenced and must not be unused")
		}
	}
}

func TestState_String(t *testing.T) {
	if got := StateBatching.String(); got != "checking" {
		t.Errorf("StateBatching.String() = %q", got)
	}
	if got := State(99).String(); got != "idle" {
		t.Errorf("unknown state String() = %q", got)
	}
}
