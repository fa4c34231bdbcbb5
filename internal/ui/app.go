package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/stray/internal/model"
	"github.com/sadopc/stray/internal/ops"
	"github.com/sadopc/stray/internal/scan"
	"github.com/sadopc/stray/internal/scanner"
	"github.com/sadopc/stray/internal/ui/components"
	"github.com/sadopc/stray/internal/ui/style"
	"github.com/sadopc/stray/internal/watch"
)

// ViewMode represents the current view.
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewBreakdown
	ViewDuplicates
)

// AppState represents the application state.
type AppState int

const (
	StateScanning AppState = iota
	StateBrowsing
	StateConfirmDelete
	StateHelp
	StateExporting
)

// ScanDoneMsg is sent when a scan or report load completes.
type ScanDoneMsg struct {
	Root      string // set on report load, empty otherwise
	Entries   []model.Entry
	Dups      []model.DupGroup
	Cancelled bool
	Err       error
}

// RefreshDoneMsg is sent when a background refresh completes.
type RefreshDoneMsg struct {
	Entries   []model.Entry
	Dups      []model.DupGroup
	Cancelled bool
	Err       error
}

// DeleteDoneMsg is sent when deletion completes.
type DeleteDoneMsg struct {
	Deleted []string
	Errors  []error
}

// ExportDoneMsg is sent when export completes.
type ExportDoneMsg struct {
	Path string
	Err  error
}

// WatchDeleteMsg is sent when a listed file disappears from disk.
type WatchDeleteMsg struct {
	Path string
}

// refreshQueuedMsg fires after override edits settle.
type refreshQueuedMsg struct{}

type tickMsg time.Time

// App is the root Bubble Tea model.
type App struct {
	Root       string
	Source     scanner.Source
	Orc        *scan.Orchestrator
	Watcher    *watch.Watcher
	LoadPath   string
	ExportPath string
	Version    string
	Remote     string // user@host when scanning over SSH

	state    AppState
	viewMode ViewMode
	width    int
	height   int

	entries    []model.Entry
	dups       []model.DupGroup
	sortConfig model.SortConfig

	cursor int
	offset int

	marked      map[string]bool
	markedItems []components.ConfirmItem

	imported bool
	partial  bool

	scanStart      time.Time
	scanProgress   scan.Progress
	progressMu     sync.Mutex
	latestProgress scan.Progress
	scanCancel     context.CancelFunc
	scanCancelMu   sync.Mutex

	refreshCh      chan struct{}
	refreshing     bool
	refreshPending bool

	theme  style.Theme
	keys   KeyMap
	layout style.Layout

	statusMsg string
	fatalErr  error
}

func (a *App) setScanCancel(cancel context.CancelFunc) {
	a.scanCancelMu.Lock()
	a.scanCancel = cancel
	a.scanCancelMu.Unlock()
}

func (a *App) callScanCancel() {
	a.scanCancelMu.Lock()
	if a.scanCancel != nil {
		a.scanCancel()
	}
	a.scanCancelMu.Unlock()
}

// NewApp creates a new App model scanning root through src.
func NewApp(root string, src scanner.Source, orc *scan.Orchestrator) *App {
	a := &App{
		Root:       root,
		Source:     src,
		Orc:        orc,
		state:      StateScanning,
		viewMode:   ViewList,
		sortConfig: model.DefaultSort(),
		marked:     make(map[string]bool),
		refreshCh:  make(chan struct{}, 1),
		scanStart:  time.Now(),
		theme:      style.DefaultTheme(),
		keys:       DefaultKeyMap(),
	}
	orc.SetProgress(func(p scan.Progress) {
		a.progressMu.Lock()
		a.latestProgress = p
		a.progressMu.Unlock()
	})
	orc.SetRefresh(func() {
		select {
		case a.refreshCh <- struct{}{}:
		default:
		}
	})
	return a
}

// NewAppFromReport creates an App that browses a saved report.
func NewAppFromReport(path string) *App {
	return &App{
		LoadPath:   path,
		state:      StateScanning,
		viewMode:   ViewList,
		sortConfig: model.DefaultSort(),
		marked:     make(map[string]bool),
		imported:   true,
		scanStart:  time.Now(),
		theme:      style.DefaultTheme(),
		keys:       DefaultKeyMap(),
	}
}

func (a *App) Init() tea.Cmd {
	if a.LoadPath != "" {
		return a.loadCmd()
	}
	// Start the scan AND the progress ticker simultaneously
	cmds := []tea.Cmd{a.scanCmd(), a.tickCmd(), a.waitRefresh()}
	if a.Watcher != nil {
		a.Watcher.Start()
		cmds = append(cmds, a.waitWatch())
	}
	return tea.Batch(cmds...)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout = style.NewLayout(msg.Width, msg.Height)
		return a, nil

	case ScanDoneMsg:
		if msg.Err != nil {
			a.fatalErr = msg.Err
			return a, tea.Quit
		}
		a.fatalErr = nil
		if msg.Root != "" {
			a.Root = msg.Root
		}
		a.entries = msg.Entries
		a.dups = msg.Dups
		a.partial = msg.Cancelled
		a.cursor = 0
		a.offset = 0
		a.state = StateBrowsing
		a.refreshSorted()
		a.syncWatcher()
		if msg.Cancelled {
			a.statusMsg = "Scan cancelled - showing partial results"
		}
		return a, tea.ClearScreen

	case tickMsg:
		if a.state == StateScanning {
			// Read latest progress snapshot
			a.progressMu.Lock()
			a.scanProgress = a.latestProgress
			a.progressMu.Unlock()
			// Keep ticking while scanning
			return a, a.tickCmd()
		}
		return a, nil

	case refreshQueuedMsg:
		cmds := []tea.Cmd{a.waitRefresh()}
		if a.refreshing {
			a.refreshPending = true
		} else if a.state != StateScanning {
			// A full scan in flight recomputes everything anyway.
			a.refreshing = true
			cmds = append(cmds, a.refreshCmd())
		}
		return a, tea.Batch(cmds...)

	case RefreshDoneMsg:
		a.refreshing = false
		if msg.Err != nil {
			a.statusMsg = fmt.Sprintf("Refresh failed: %v", msg.Err)
			return a, nil
		}
		a.entries = msg.Entries
		a.dups = msg.Dups
		a.partial = msg.Cancelled
		a.pruneMarks()
		a.refreshSorted()
		a.clampCursor()
		a.syncWatcher()
		if a.refreshPending {
			a.refreshPending = false
			a.refreshing = true
			return a, a.refreshCmd()
		}
		return a, nil

	case DeleteDoneMsg:
		for _, p := range msg.Deleted {
			if a.Orc != nil {
				a.Orc.OnDelete(p)
			}
			a.removeEntry(p)
		}
		a.state = StateBrowsing
		a.clearMarks()
		a.refreshSorted()
		a.clampCursor()
		a.syncWatcher()
		if len(msg.Errors) > 0 {
			a.statusMsg = fmt.Sprintf("Delete: %d failed (%v)", len(msg.Errors), msg.Errors[0])
		} else if len(msg.Deleted) > 0 {
			a.statusMsg = fmt.Sprintf("Deleted %d file(s)", len(msg.Deleted))
		}
		return a, tea.ClearScreen

	case WatchDeleteMsg:
		if a.Orc != nil {
			a.Orc.OnDelete(msg.Path)
		}
		a.removeEntry(msg.Path)
		delete(a.marked, msg.Path)
		a.refreshSorted()
		a.clampCursor()
		a.syncWatcher()
		a.statusMsg = fmt.Sprintf("Removed (deleted on disk): %s", filepath.Base(msg.Path))
		return a, a.waitWatch()

	case ExportDoneMsg:
		a.state = StateBrowsing
		if msg.Err != nil {
			a.statusMsg = fmt.Sprintf("Export failed: %v", msg.Err)
		} else {
			a.statusMsg = fmt.Sprintf("Exported to %s", msg.Path)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.ForceQuit) {
		a.callScanCancel()
		return a, tea.Quit
	}

	switch a.state {
	case StateScanning:
		if key.Matches(msg, a.keys.Quit) {
			a.callScanCancel()
			return a, tea.Quit
		}
		return a, nil

	case StateHelp:
		if key.Matches(msg, a.keys.Help) || msg.String() == "esc" {
			a.state = StateBrowsing
			return a, tea.ClearScreen
		}
		return a, nil

	case StateConfirmDelete:
		if key.Matches(msg, a.keys.ConfirmYes) {
			return a, a.executeDelete()
		}
		if key.Matches(msg, a.keys.ConfirmNo) {
			a.state = StateBrowsing
			return a, tea.ClearScreen
		}
		return a, nil

	case StateBrowsing:
		return a.handleBrowsingKey(msg)
	}

	return a, nil
}

func (a *App) handleBrowsingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.statusMsg = ""
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.state = StateHelp
		return a, tea.ClearScreen

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)
	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, a.keys.ViewList):
		a.viewMode = ViewList
		return a, tea.ClearScreen
	case key.Matches(msg, a.keys.ViewBreakdown):
		a.viewMode = ViewBreakdown
		return a, tea.ClearScreen
	case key.Matches(msg, a.keys.ViewDuplicates):
		a.viewMode = ViewDuplicates
		return a, tea.ClearScreen

	case key.Matches(msg, a.keys.SortSize):
		a.toggleSort(model.SortBySize)
	case key.Matches(msg, a.keys.SortName):
		a.toggleSort(model.SortByName)
	case key.Matches(msg, a.keys.SortMtime):
		a.toggleSort(model.SortByMtime)

	case key.Matches(msg, a.keys.Mark):
		if a.viewMode == ViewList {
			a.toggleMark()
		}

	case key.Matches(msg, a.keys.Pin):
		if a.viewMode == ViewList {
			a.pinCurrent()
		}
	case key.Matches(msg, a.keys.Unpin):
		if a.viewMode == ViewList {
			a.unpinCurrent()
		}

	case key.Matches(msg, a.keys.Delete):
		if a.viewMode == ViewList {
			cmd := a.prepareDelete()
			if a.state == StateConfirmDelete {
				return a, tea.Batch(cmd, tea.ClearScreen)
			}
			return a, cmd
		}

	case key.Matches(msg, a.keys.Export):
		return a, a.exportCmd()

	case key.Matches(msg, a.keys.Rescan):
		return a, a.rescan()
	}

	return a, nil
}

func (a *App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	switch a.state {
	case StateScanning:
		return components.RenderScanProgress(a.theme, a.scanProgress, time.Since(a.scanStart), a.width, a.height)

	case StateHelp:
		return components.RenderHelp(a.theme, a.width, a.height)

	case StateConfirmDelete:
		return components.RenderConfirmDialog(a.theme, a.markedItems, a.width, a.height)

	case StateBrowsing, StateExporting:
		return a.renderBrowsing()
	}

	return ""
}

func (a *App) renderBrowsing() string {
	totalSize, maxSize := a.sizeStats()
	pins := a.pinStates()

	header := components.RenderHeader(a.theme, a.Root, a.Remote, len(a.entries), totalSize, a.width)
	tabBar := components.RenderTabBar(a.theme, int(a.viewMode), a.sortConfig.Field, a.width)

	var content string
	switch a.viewMode {
	case ViewList:
		lv := &components.ListView{
			Theme:     a.theme,
			Layout:    a.layout,
			Root:      a.Root,
			Items:     a.entries,
			Cursor:    a.cursor,
			Offset:    a.offset,
			Marked:    a.marked,
			Pins:      pins,
			TotalSize: totalSize,
			MaxSize:   maxSize,
		}
		lv.EnsureVisible()
		a.offset = lv.Offset
		content = lv.Render()

	case ViewBreakdown:
		content = components.RenderBreakdown(a.theme, a.entries, a.layout.ContentWidth(), a.layout.ContentHeight())

	case ViewDuplicates:
		content = components.RenderDuplicates(a.theme, a.dups, a.Root, a.layout.ContentWidth(), a.layout.ContentHeight())
	}

	info := components.StatusInfo{
		ItemCount:   len(a.entries),
		TotalSize:   totalSize,
		MarkedCount: len(a.marked),
		MarkedSize:  a.markedSize(),
		PinnedCount: len(pins),
		SortField:   a.sortConfig.Field,
		ViewMode:    int(a.viewMode),
		Partial:     a.partial,
		ReadOnly:    a.imported,
		ErrorMsg:    a.statusMsg,
	}
	statusBar := components.RenderStatusBar(a.theme, info, a.width)

	return header + "\n" + tabBar + "\n" + content + "\n" + statusBar
}

func (a *App) moveCursor(delta int) {
	a.cursor += delta
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.cursor >= len(a.entries) {
		a.cursor = len(a.entries) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) clampCursor() {
	if a.cursor >= len(a.entries) {
		a.cursor = len(a.entries) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) toggleSort(field model.SortField) {
	if a.sortConfig.Field == field {
		if a.sortConfig.Order == model.SortDesc {
			a.sortConfig.Order = model.SortAsc
		} else {
			a.sortConfig.Order = model.SortDesc
		}
	} else {
		a.sortConfig.Field = field
		a.sortConfig.Order = model.SortDesc
	}
	a.refreshSorted()
}

func (a *App) toggleMark() {
	if a.cursor >= len(a.entries) {
		return
	}
	p := a.entries[a.cursor].Path
	if a.marked[p] {
		delete(a.marked, p)
	} else {
		a.marked[p] = true
	}
	a.moveCursor(1)
}

func (a *App) pinCurrent() {
	if a.Orc == nil {
		a.statusMsg = "Pinning is disabled in import mode"
		return
	}
	if a.cursor >= len(a.entries) {
		return
	}
	e := a.entries[a.cursor]
	a.Orc.Toggle(e.Path)
	a.statusMsg = fmt.Sprintf("Keeping %s", filepath.Base(e.Path))
}

func (a *App) unpinCurrent() {
	if a.Orc == nil {
		a.statusMsg = "Pinning is disabled in import mode"
		return
	}
	if a.cursor >= len(a.entries) {
		return
	}
	e := a.entries[a.cursor]
	a.Orc.Reset(e.Path)
	a.statusMsg = fmt.Sprintf("Unpinned %s", filepath.Base(e.Path))
}

func (a *App) clearMarks() {
	a.marked = make(map[string]bool)
}

func (a *App) pruneMarks() {
	listed := make(map[string]bool, len(a.entries))
	for _, e := range a.entries {
		listed[e.Path] = true
	}
	for p := range a.marked {
		if !listed[p] {
			delete(a.marked, p)
		}
	}
}

func (a *App) removeEntry(path string) {
	for i, e := range a.entries {
		if e.Path == path {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			return
		}
	}
}

func (a *App) refreshSorted() {
	model.SortEntries(a.entries, a.sortConfig)
}

func (a *App) sizeStats() (total, largest int64) {
	for _, e := range a.entries {
		total += e.Size
		if e.Size > largest {
			largest = e.Size
		}
	}
	return total, largest
}

func (a *App) markedSize() int64 {
	var total int64
	for _, e := range a.entries {
		if a.marked[e.Path] {
			total += e.Size
		}
	}
	return total
}

// pinStates collects the override pin for every listed entry. Entries
// loaded from a report carry their pin in the report itself.
func (a *App) pinStates() map[string]bool {
	pins := make(map[string]bool)
	for _, e := range a.entries {
		if e.Pinned {
			pins[e.Path] = false
		}
	}
	if a.Orc != nil {
		for _, e := range a.entries {
			if pin, ok := a.Orc.Override(e.Path); ok {
				pins[e.Path] = pin
			}
		}
	}
	return pins
}

// scanCmd runs the full scan in a background goroutine.
// Progress is communicated via a.latestProgress (mutex-protected).
func (a *App) scanCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		a.setScanCancel(cancel)

		res, err := a.Orc.Scan(ctx, a.Root)
		if err != nil {
			return ScanDoneMsg{Err: err}
		}
		return ScanDoneMsg{
			Entries:   a.buildEntries(res.UnusedFiles),
			Dups:      a.Orc.Duplicates(),
			Cancelled: res.Cancelled,
		}
	}
}

// refreshCmd re-runs the scan without leaving the browsing state.
func (a *App) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		a.setScanCancel(cancel)

		res, err := a.Orc.Scan(ctx, a.Root)
		if err != nil {
			return RefreshDoneMsg{Err: err}
		}
		return RefreshDoneMsg{
			Entries:   a.buildEntries(res.UnusedFiles),
			Dups:      a.Orc.Duplicates(),
			Cancelled: res.Cancelled,
		}
	}
}

func (a *App) buildEntries(paths []string) []model.Entry {
	entries := ops.CollectEntries(a.Source, paths)
	for i := range entries {
		if pin, ok := a.Orc.Override(entries[i].Path); ok && !pin {
			entries[i].Pinned = true
		}
	}
	return entries
}

func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		rep, err := ops.ReadReport(a.LoadPath)
		if err != nil {
			return ScanDoneMsg{Err: err}
		}
		entries := rep.Unused
		for i := range entries {
			entries[i].Category = model.ClassifyFile(entries[i].Path)
		}
		return ScanDoneMsg{Root: rep.Root, Entries: entries, Dups: rep.Duplicates}
	}
}

func (a *App) tickCmd() tea.Cmd {
	return tea.Tick(60*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) waitRefresh() tea.Cmd {
	return func() tea.Msg {
		<-a.refreshCh
		return refreshQueuedMsg{}
	}
}

func (a *App) waitWatch() tea.Cmd {
	return func() tea.Msg {
		p, ok := <-a.Watcher.Events()
		if !ok {
			return nil
		}
		return WatchDeleteMsg{Path: p}
	}
}

func (a *App) rescan() tea.Cmd {
	if a.Orc == nil {
		a.statusMsg = "Rescan is disabled in import mode"
		return nil
	}
	if a.refreshing {
		// The refresh already running recomputes the same list.
		return nil
	}
	a.clearMarks()
	a.cursor = 0
	a.offset = 0
	a.partial = false
	a.state = StateScanning
	a.scanStart = time.Now()
	a.progressMu.Lock()
	a.latestProgress = scan.Progress{}
	a.progressMu.Unlock()
	return tea.Batch(tea.ClearScreen, a.scanCmd(), a.tickCmd())
}

func (a *App) prepareDelete() tea.Cmd {
	if a.imported {
		a.statusMsg = "Delete is disabled in import mode"
		return nil
	}
	if a.Remote != "" {
		a.statusMsg = "Delete is disabled for remote scans"
		return nil
	}

	var items []components.ConfirmItem

	if len(a.marked) > 0 {
		for _, e := range a.entries {
			if a.marked[e.Path] {
				items = append(items, components.ConfirmItem{
					Name: filepath.Base(e.Path),
					Path: e.Path,
					Size: e.Size,
				})
			}
		}
	} else if a.cursor < len(a.entries) {
		e := a.entries[a.cursor]
		items = append(items, components.ConfirmItem{
			Name: filepath.Base(e.Path),
			Path: e.Path,
			Size: e.Size,
		})
	}

	if len(items) == 0 {
		return nil
	}

	a.markedItems = items
	a.state = StateConfirmDelete
	return nil
}

func (a *App) executeDelete() tea.Cmd {
	items := a.markedItems
	rootPath := a.Root

	return func() tea.Msg {
		var deleted []string
		var errors []error

		for _, item := range items {
			err := ops.Delete(item.Path, rootPath)
			if err != nil {
				errors = append(errors, err)
			} else {
				deleted = append(deleted, item.Path)
			}
		}

		return DeleteDoneMsg{Deleted: deleted, Errors: errors}
	}
}

func (a *App) exportCmd() tea.Cmd {
	if a.Root == "" {
		return nil
	}

	exportPath := a.ExportPath
	if exportPath == "" {
		exportPath = "stray-report.json"
	}

	a.state = StateExporting
	rep := a.buildReport()

	return func() tea.Msg {
		err := ops.WriteReport(rep, exportPath)
		return ExportDoneMsg{Path: exportPath, Err: err}
	}
}

func (a *App) buildReport() *model.Report {
	rep := &model.Report{
		Version:     model.ReportVersion,
		Root:        a.Root,
		GeneratedAt: time.Now(),
		Unused:      append([]model.Entry(nil), a.entries...),
		Duplicates:  append([]model.DupGroup(nil), a.dups...),
	}
	if a.Orc != nil {
		if cfg, ok := a.Orc.LastConfig(); ok {
			rep.FileTypes = cfg.FileTypes
		}
		// Pins may have changed since the entries were built.
		for i := range rep.Unused {
			pin, ok := a.Orc.Override(rep.Unused[i].Path)
			rep.Unused[i].Pinned = ok && !pin
		}
	}
	return rep
}

func (a *App) syncWatcher() {
	if a.Watcher == nil {
		return
	}
	paths := make([]string, len(a.entries))
	for i, e := range a.entries {
		paths[i] = e.Path
	}
	a.Watcher.SetPaths(paths)
}

// FatalError returns a fatal scan/load error, if any.
func (a *App) FatalError() error { return a.fatalErr }
