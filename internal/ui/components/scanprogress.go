package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/stray/internal/scan"
	"github.com/sadopc/stray/internal/ui/style"
	"github.com/sadopc/stray/internal/util"
)

// RenderScanProgress renders the scanning progress overlay.
func RenderScanProgress(theme style.Theme, progress scan.Progress, elapsed time.Duration, width, height int) string {
	boxWidth := 50
	if boxWidth > width-4 {
		boxWidth = width - 4
	}

	var lines []string

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.Primary).
		Render("  Scanning...")

	lines = append(lines, title)
	lines = append(lines, "")

	msg := progress.Message
	if msg == "" {
		msg = "starting"
	}
	statStyle := lipgloss.NewStyle().Foreground(theme.TextSecondary)
	lines = append(lines, statStyle.Render("  "+msg))

	// The bar appears once the walk is done and the total is known.
	if progress.Total > 0 {
		ratio := float64(progress.Processed) / float64(progress.Total)
		barW := boxWidth - 14
		if barW < 5 {
			barW = 5
		}
		bar := theme.BarGradient(barW, ratio)
		pctStr := lipgloss.NewStyle().Foreground(theme.TextMuted).
			Render(fmt.Sprintf(" %3.0f%%", ratio*100))
		lines = append(lines, "")
		lines = append(lines, "  "+bar+pctStr)
		countLine := fmt.Sprintf("  %s of %s files",
			util.FormatCount(int64(progress.Processed)),
			util.FormatCount(int64(progress.Total)),
		)
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextMuted).Render(countLine))
	}

	lines = append(lines, "")

	elapsedLine := fmt.Sprintf("  Elapsed: %.1fs", elapsed.Seconds())
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextMuted).Render(elapsedLine))

	content := strings.Join(lines, "\n")

	box := theme.ModalStyle.
		Width(boxWidth).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
