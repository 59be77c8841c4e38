package auth

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/commish/internal/auth"
	"github.com/garrettladley/commish/internal/tui/theme"
)

const statusDot = "●"

// Indicator shows the session state in the footer.
type Indicator struct {
	Status auth.Status
}

func (a Indicator) Render() string {
	switch a.Status.State {
	case auth.Bootstrapping, auth.Verifying:
		return lipgloss.NewStyle().
			Foreground(theme.ColorBgLight).
			Render(statusDot + " checking...")
	case auth.Authenticated:
		label := "signed in"
		if u := a.Status.User; u != nil && u.Name != "" {
			label += " as " + u.Name
		}
		return lipgloss.NewStyle().
			Foreground(theme.ColorPositive).
			Render(statusDot + " " + label)
	default:
		return lipgloss.NewStyle().
			Foreground(theme.ColorNegative).
			Render(statusDot + " signed out")
	}
}
