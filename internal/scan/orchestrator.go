// Package scan drives a full unused-file scan end to end: resolve the
// configuration, walk the tree, index contents, classify candidates in
// bounded batches, and keep the result consistent with deletions and
// override edits between scans.
package scan

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sadopc/stray/internal/config"
	"github.com/sadopc/stray/internal/engine"
	"github.com/sadopc/stray/internal/model"
	"github.com/sadopc/stray/internal/override"
	"github.com/sadopc/stray/internal/scanner"
)

// State is the orchestrator's current phase.
type State int32

const (
	StateIdle State = iota
	StateConfiguring
	StateWalking
	StateIndexing
	StateBatching
	StateAggregating
	StateDone
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateConfiguring:
		return "configuring"
	case StateWalking:
		return "walking"
	case StateIndexing:
		return "indexing"
	case StateBatching:
		return "checking"
	case StateAggregating:
		return "aggregating"
	case StateDone:
		return "done"
	case StateCancelled:
		return "cancelled"
	default:
		return "idle"
	}
}

// Progress is a scan progress snapshot handed to the caller. Total is 0
// while it is not yet known.
type Progress struct {
	Processed int
	Total     int
	Message   string
}

// Result is a completed or cancelled scan. A cancelled result carries
// whatever fully completed batches accumulated before the cancellation.
type Result struct {
	UnusedFiles []string
	Cancelled   bool
}

// Options tunes a scan.
type Options struct {
	// BatchSize is the number of candidates classified per batch.
	BatchSize int
	// Workers bounds walk and read parallelism (0 = auto).
	Workers int
	// ExtraIgnoreFolders is pruned on top of the resolved config.
	ExtraIgnoreFolders []string
	// Settle is the quiet period before an override edit triggers the
	// refresh callback.
	Settle time.Duration
}

const (
	// DefaultBatchSize bounds per-batch heuristic cost; it is the main
	// scalability control for large trees.
	DefaultBatchSize = 100
	// DefaultSettle coalesces rapid toggles into a single refresh.
	DefaultSettle = 400 * time.Millisecond
)

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{BatchSize: DefaultBatchSize, Settle: DefaultSettle}
}

// Orchestrator runs scans over a source and owns the current result.
// Scans must be serialized by the caller; everything else (progress,
// deletion pruning, override edits, queries) is safe to call from other
// goroutines.
type Orchestrator struct {
	src  scanner.Source
	ov   *override.Store
	opts Options

	state atomic.Int32

	progressMu sync.Mutex
	progressFn func(Progress)

	mu      sync.Mutex
	refresh *Debounce
	result  *Result
	cfg     config.Config
	hasCfg  bool
	dups    []model.DupGroup
}

// New creates an orchestrator over src, consulting ov during
// classification.
func New(src scanner.Source, ov *override.Store, opts Options) *Orchestrator {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Settle <= 0 {
		opts.Settle = DefaultSettle
	}
	o := &Orchestrator{src: src, ov: ov, opts: opts}
	o.state.Store(int32(StateIdle))
	return o
}

// State returns the current phase.
func (o *Orchestrator) State() State {
	return State(o.state.Load())
}

func (o *Orchestrator) setState(s State) {
	o.state.Store(int32(s))
}

// SetProgress installs the progress callback. It is invoked from scan
// goroutines and must return quickly.
func (o *Orchestrator) SetProgress(fn func(Progress)) {
	o.progressMu.Lock()
	o.progressFn = fn
	o.progressMu.Unlock()
}

func (o *Orchestrator) report(p Progress) {
	o.progressMu.Lock()
	fn := o.progressFn
	o.progressMu.Unlock()
	if fn != nil {
		fn(p)
	}
}

// SetRefresh installs the callback fired after the settle delay when
// override edits require the visible list to be recomputed. Rapid edits
// coalesce into a single callback. A nil fn disables refreshes.
func (o *Orchestrator) SetRefresh(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.refresh != nil {
		o.refresh.Stop()
	}
	if fn == nil {
		o.refresh = nil
		return
	}
	o.refresh = NewDebounce(o.opts.Settle, fn)
}

// Close releases the orchestrator's timers.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.refresh != nil {
		o.refresh.Stop()
	}
}

// Scan walks root and classifies every tracked file. An unusable root
// is the only fatal error. Cancellation is not an error: the partial
// result is returned with Cancelled set.
func (o *Orchestrator) Scan(ctx context.Context, root string) (*Result, error) {
	o.setState(StateConfiguring)

	absRoot, err := o.src.Abs(root)
	if err != nil {
		o.setState(StateIdle)
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	info, err := o.src.Stat(absRoot)
	if err != nil {
		o.setState(StateIdle)
		return nil, fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		o.setState(StateIdle)
		return nil, &os.PathError{Op: "scan", Path: absRoot, Err: os.ErrInvalid}
	}

	// Config read failures of any kind fall back to the defaults.
	cfgData, _ := o.src.ReadFile(o.src.Join(absRoot, config.FileName))
	cfg := config.ResolveBytes(cfgData).WithIgnoredFolders(o.opts.ExtraIgnoreFolders)

	o.setState(StateWalking)
	o.report(Progress{Message: "collecting files"})

	progCh := make(chan scanner.Progress, 8)
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		for p := range progCh {
			o.report(Progress{Message: fmt.Sprintf("collecting files: %d found", p.FilesFound)})
		}
	}()
	walker := scanner.NewWalker(o.src)
	walker.Workers = o.opts.Workers
	files, err := walker.Walk(ctx, absRoot, cfg, progCh)
	close(progCh)
	<-relayDone
	if err != nil {
		if ctx.Err() != nil {
			return o.finishCancelled(nil, cfg, nil), nil
		}
		o.setState(StateIdle)
		return nil, fmt.Errorf("walk %s: %w", absRoot, err)
	}

	candidates := make([]model.Candidate, 0, len(files))
	for _, f := range files {
		if cfg.TracksFile(f) {
			candidates = append(candidates, model.NewCandidate(f))
		}
	}
	total := len(candidates)

	o.setState(StateIndexing)
	o.report(Progress{Total: total, Message: "reading file contents"})
	idx, err := engine.BuildIndex(ctx, o.src, candidates, o.opts.Workers, func(done, n int) {
		o.report(Progress{Processed: done, Total: n, Message: "reading file contents"})
	})
	if err != nil {
		if ctx.Err() != nil {
			return o.finishCancelled(nil, cfg, nil), nil
		}
		o.setState(StateIdle)
		return nil, err
	}
	eng := engine.New(idx)

	o.setState(StateBatching)
	var unused []string
	for start := 0; start < len(candidates); start += o.opts.BatchSize {
		if ctx.Err() != nil {
			return o.finishCancelled(unused, cfg, idx), nil
		}
		end := start + o.opts.BatchSize
		if end > len(candidates) {
			end = len(candidates)
		}
		subset, err := eng.FindUnused(ctx, candidates[start:end], o.ov)
		if err != nil {
			// The interrupted batch is discarded wholesale; only fully
			// completed batches contribute.
			return o.finishCancelled(unused, cfg, idx), nil
		}
		unused = append(unused, subset...)
		o.report(Progress{
			Processed: end,
			Total:     total,
			Message:   fmt.Sprintf("checked %d of %d files", end, total),
		})
	}

	o.setState(StateAggregating)
	o.mu.Lock()
	o.result = &Result{UnusedFiles: unused}
	o.cfg = cfg
	o.hasCfg = true
	o.dups = idx.DuplicateGroups()
	o.mu.Unlock()

	o.setState(StateDone)
	o.report(Progress{Processed: total, Total: total, Message: "scan complete"})
	return o.Current(), nil
}

func (o *Orchestrator) finishCancelled(partial []string, cfg config.Config, idx *engine.Index) *Result {
	o.mu.Lock()
	o.result = &Result{UnusedFiles: partial, Cancelled: true}
	o.cfg = cfg
	o.hasCfg = true
	if idx != nil {
		o.dups = idx.DuplicateGroups()
	}
	o.mu.Unlock()
	o.setState(StateCancelled)
	return o.Current()
}

// Current returns a copy of the last result, or nil before any scan.
func (o *Orchestrator) Current() *Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.result == nil {
		return nil
	}
	return &Result{
		UnusedFiles: append([]string(nil), o.result.UnusedFiles...),
		Cancelled:   o.result.Cancelled,
	}
}

// Duplicates returns the identical-content groups from the last scan.
func (o *Orchestrator) Duplicates() []model.DupGroup {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]model.DupGroup(nil), o.dups...)
}

// LastConfig returns the configuration the last scan resolved.
func (o *Orchestrator) LastConfig() (config.Config, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cfg, o.hasCfg
}

// OnDelete removes path from the current result in place. No rescan is
// triggered; deleting a path that is not listed is a no-op.
func (o *Orchestrator) OnDelete(path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.result == nil {
		return
	}
	files := o.result.UnusedFiles
	for i, p := range files {
		if p == path {
			o.result.UnusedFiles = append(files[:i], files[i+1:]...)
			return
		}
	}
}

// Toggle flips the effective classification of path: a file currently
// listed unused gets pinned used, anything else gets pinned unused.
// Fire-and-forget; the visible list reconciles on the debounced
// refresh or the next scan.
func (o *Orchestrator) Toggle(path string) {
	o.ov.Set(path, o.listedUnused(path))
	o.scheduleRefresh()
}

// Reset clears any pin from path so the heuristic decides again.
func (o *Orchestrator) Reset(path string) {
	o.ov.Clear(path)
	o.scheduleRefresh()
}

// Override reports the pin recorded for path, if any.
func (o *Orchestrator) Override(path string) (bool, bool) {
	return o.ov.Get(path)
}

func (o *Orchestrator) listedUnused(path string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.result == nil {
		return false
	}
	for _, p := range o.result.UnusedFiles {
		if p == path {
			return true
		}
	}
	return false
}

func (o *Orchestrator) scheduleRefresh() {
	o.mu.Lock()
	d := o.refresh
	o.mu.Unlock()
	if d != nil {
		d.Schedule()
	}
}
