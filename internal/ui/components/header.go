package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/sadopc/stray/internal/ui/style"
	"github.com/sadopc/stray/internal/util"
)

// RenderHeader renders the top header bar.
func RenderHeader(theme style.Theme, root, remote string, count int, totalSize int64, width int) string {
	if width < 10 {
		return ""
	}

	titleStr := " stray"
	titleStyled := lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Render(titleStr)

	stats := fmt.Sprintf("%s unused  %s ",
		util.FormatCount(int64(count)),
		util.FormatSize(totalSize),
	)
	statsStyled := lipgloss.NewStyle().Foreground(theme.TextMuted).Render(stats)

	titleW := lipgloss.Width(titleStyled)
	statsW := lipgloss.Width(statsStyled)

	pathStr := root
	if remote != "" {
		pathStr = remote + ":" + root
	}

	// Path gets whatever space remains
	pathMaxW := width - titleW - statsW - 3 // 3 for "  " separator + safety
	if pathMaxW > 5 {
		pathStr = ansi.Truncate(pathStr, pathMaxW, "…")
	} else {
		pathStr = ""
	}

	pathStyled := lipgloss.NewStyle().Foreground(theme.TextPrimary).Render("  " + pathStr)
	pathW := lipgloss.Width(pathStyled)

	gap := width - titleW - pathW - statsW
	if gap < 1 {
		gap = 1
	}

	line := titleStyled + pathStyled + strings.Repeat(" ", gap) + statsStyled
	return theme.HeaderStyle.Width(width).Render(line)
}
