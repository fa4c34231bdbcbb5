package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sadopc/stray/internal/model"
	"github.com/sadopc/stray/internal/ui/style"
	"github.com/sadopc/stray/internal/util"
)

// ListView renders the main unused-file list.
type ListView struct {
	Theme  style.Theme
	Layout style.Layout
	Root   string
	Items  []model.Entry
	Cursor int
	Offset int
	Marked map[string]bool
	// Pins maps paths to their pinned classification (true keeps the
	// file as used, false keeps it as unused) for rows that have one.
	Pins map[string]bool
	// TotalSize is the combined size of all listed files; MaxSize is
	// the largest single file.
	TotalSize int64
	MaxSize   int64
}

// Render renders the list view.
func (lv *ListView) Render() string {
	width := lv.Layout.ContentWidth()

	if len(lv.Items) == 0 {
		empty := lipgloss.NewStyle().Foreground(lv.Theme.TextMuted).Render("  (no unused files)")
		return style.FullWidth(empty, width)
	}

	contentHeight := lv.Layout.ContentHeight()
	barWidth := lv.Layout.BarWidth()
	nameWidth := lv.Layout.NameWidth()

	start := lv.Offset
	end := start + contentHeight
	if end > len(lv.Items) {
		end = len(lv.Items)
	}

	var lines []string
	for i := start; i < end; i++ {
		item := lv.Items[i]
		selected := i == lv.Cursor
		marked := lv.Marked[item.Path]
		line := lv.renderRow(item, selected, marked, barWidth, nameWidth, width)
		lines = append(lines, line)
	}

	// Pad remaining height
	for len(lines) < contentHeight {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

func (lv *ListView) renderRow(e model.Entry, selected, marked bool, barWidth, nameWidth, totalWidth int) string {
	// Percentage of all unused bytes
	pct := util.Percent(e.Size, lv.TotalSize)
	pctStr := fmt.Sprintf("%5.1f%%", pct)

	// Gradient bar, scaled to the largest listed file so small files
	// still register.
	var ratio float64
	if lv.MaxSize > 0 {
		ratio = float64(e.Size) / float64(lv.MaxSize)
	}
	bar := lv.Theme.BarGradient(barWidth, ratio)

	// Icon + path relative to the scan root (truncated to fit)
	name := util.FileIcon(e.Path) + " " + relToRoot(lv.Root, e.Path)
	name = ansi.Truncate(name, nameWidth, "…")

	// Cursor / mark indicator (2 chars)
	indicator := "  "
	if selected && marked {
		indicator = lv.Theme.MarkedIndicator.Render("*") + lv.Theme.CursorIndicator.Render(">")
	} else if selected {
		indicator = lv.Theme.CursorIndicator.Render(" >")
	} else if marked {
		indicator = lv.Theme.MarkedIndicator.Render("* ")
	}

	nameStyled := lv.Theme.FileName.Render(name)

	// Pin markers (appended to name but counted in nameWidth)
	if pin, ok := lv.Pins[e.Path]; ok {
		if pin {
			nameStyled += lv.Theme.KeptMarker.Render(" ✓")
		} else {
			nameStyled += lv.Theme.PinnedMarker.Render(" ●")
		}
	}

	ageStyled := lv.Theme.AgeText.Width(4).Render(util.FormatAge(e.ModTime))
	sizeStyled := lv.Theme.SizeText.Width(10).Render(util.FormatSize(e.Size))
	pctStyled := lv.Theme.PercentText.Render(pctStr)

	// Build the row: each segment is a known visual width
	row := fmt.Sprintf("%s%s [%s] %s %s %s",
		indicator, pctStyled, bar, nameStyled, ageStyled, sizeStyled,
	)

	// Ensure exactly totalWidth visual chars (pad or don't exceed)
	row = style.FullWidth(row, totalWidth)

	if selected {
		return lv.Theme.SelectedRow.Width(totalWidth).Render(row)
	}
	return row
}

// relToRoot strips the scan root prefix for display. Paths outside the
// root (or the root itself) come back unchanged.
func relToRoot(root, p string) string {
	if root == "" || !strings.HasPrefix(p, root) {
		return p
	}
	rel := p[len(root):]
	if rel == "" {
		return p
	}
	switch {
	case root[len(root)-1] == '/' || root[len(root)-1] == '\\':
		// root already ends in a separator
	case rel[0] == '/' || rel[0] == '\\':
		rel = rel[1:]
	default:
		// sibling path that merely shares a prefix
		return p
	}
	if rel == "" {
		return p
	}
	return rel
}

// EnsureVisible adjusts offset to keep cursor visible.
func (lv *ListView) EnsureVisible() {
	contentHeight := lv.Layout.ContentHeight()
	if lv.Cursor < lv.Offset {
		lv.Offset = lv.Cursor
	}
	if lv.Cursor >= lv.Offset+contentHeight {
		lv.Offset = lv.Cursor - contentHeight + 1
	}
	if lv.Offset < 0 {
		lv.Offset = 0
	}
}
