package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"timer/internal/ui/theme"
)

// StatusBar renders left and right aligned text across width columns.
func StatusBar(width int, left, right string) string {
	right = theme.Muted.Render(right)
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().Background(theme.Mantle).Width(width).Render(bar)
}

// Header renders the top line of the dashboard.
func Header(width int, title, detail string) string {
	bar := theme.Hot.Render(" "+title+" ") + theme.Muted.Render("  "+detail)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(width).Render(bar)
}
