package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sadopc/stray/internal/model"
	"github.com/sadopc/stray/internal/ui/style"
	"github.com/sadopc/stray/internal/util"
)

// RenderDuplicates renders the identical-content groups view.
func RenderDuplicates(theme style.Theme, groups []model.DupGroup, root string, width, height int) string {
	if height <= 0 || width <= 0 {
		return ""
	}
	if len(groups) == 0 {
		return lipgloss.NewStyle().
			Foreground(theme.TextMuted).
			Render("  (no duplicate files)")
	}

	// Largest reclaimable savings first
	sorted := make([]model.DupGroup, len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return wastedBytes(sorted[i]) > wastedBytes(sorted[j])
	})

	var fileCount int
	var totalWasted int64
	for _, g := range sorted {
		fileCount += len(g.Paths)
		totalWasted += wastedBytes(g)
	}

	var lines []string
	summary := fmt.Sprintf("  %d duplicate sets  %s files  %s reclaimable",
		len(sorted), util.FormatCount(int64(fileCount)), util.FormatSize(totalWasted))
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(theme.TextPrimary).Render(summary))
	lines = append(lines, "")

	shown := 0
	for _, g := range sorted {
		// header + members + trailing blank, leaving one line for the
		// "and N more" footer
		need := 1 + len(g.Paths) + 1
		if len(lines)+need > height-1 {
			break
		}

		head := fmt.Sprintf("  %s each  %d copies  %s wasted",
			util.FormatSize(g.Size), len(g.Paths), util.FormatSize(wastedBytes(g)))
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(head))

		for _, p := range g.Paths {
			row := "    " + util.FileIcon(p) + " " + relToRoot(root, p)
			row = ansi.Truncate(row, max(width-2, 1), "…")
			lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextSecondary).Render(row))
		}
		lines = append(lines, "")
		shown++
	}

	if shown < len(sorted) {
		more := fmt.Sprintf("  ... and %d more sets", len(sorted)-shown)
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextMuted).Render(more))
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func wastedBytes(g model.DupGroup) int64 {
	if len(g.Paths) < 2 {
		return 0
	}
	return g.Size * int64(len(g.Paths)-1)
}
