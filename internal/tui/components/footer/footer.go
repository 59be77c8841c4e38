package footer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/commish/internal/tui/theme"
)

var hintStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)

type Footer struct {
	hints        string
	rightContent string
	width        int
	padding      int
}

// New builds a footer with key hints on the left and rightContent flush right.
func New(hints string, rightContent string, width int) Footer {
	return Footer{
		hints:        hints,
		rightContent: rightContent,
		width:        width,
		padding:      2,
	}
}

func (f Footer) Render() string {
	leftContent := f.leftContent()
	if f.hints != "" {
		if leftContent != "" {
			leftContent += "  "
		}
		leftContent += hintStyle.Render(f.hints)
	}

	leftWidth := lipgloss.Width(leftContent)
	rightWidth := lipgloss.Width(f.rightContent)
	spacerWidth := max(f.width-leftWidth-rightWidth-(f.padding*2), 1)

	return lipgloss.NewStyle().
		PaddingLeft(f.padding).
		PaddingRight(f.padding).
		Render(leftContent + strings.Repeat(" ", spacerWidth) + f.rightContent)
}
