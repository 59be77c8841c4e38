package table

import (
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/garrettladley/commish/internal/tui/theme"
)

// Render draws rows under headers. Columns listed in numeric are right aligned.
func Render(headers []string, rows [][]string, numeric ...int) string {
	right := make(map[int]bool, len(numeric))
	for _, col := range numeric {
		right[col] = true
	}

	header := lipgloss.NewStyle().Foreground(theme.ColorAccent).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(theme.ColorWhite).Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBgLight)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := cell
			if row == table.HeaderRow {
				s = header
			}
			if right[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})

	return t.Render()
}
