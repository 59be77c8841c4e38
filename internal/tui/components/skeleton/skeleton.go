package skeleton

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/commish/internal/tui/theme"
)

var style = lipgloss.NewStyle().Foreground(theme.ColorBgLight)

// Render draws a placeholder block of lines rows for a panel still loading.
// Rows get shorter toward the bottom so the block reads as text.
func Render(width, lines int) string {
	if width <= 0 || lines <= 0 {
		return ""
	}

	rows := make([]string, lines)
	for i := range lines {
		w := width - i*width/(lines*2)
		rows[i] = style.Render(strings.Repeat("▒", max(w, 1)))
	}
	return strings.Join(rows, "\n")
}
