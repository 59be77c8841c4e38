package signedout

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/commish/internal/tui/page/splash"
	"github.com/garrettladley/commish/internal/tui/theme"
)

// State carries the reason the user ended up signed out, if there is one
// worth showing (a rejected stored session, a failed logout).
type State struct {
	ErrorMsg string
}

func View(t theme.Theme, state State, width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.ColorAccent).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(theme.ColorWhite)

	commandStyle := lipgloss.NewStyle().
		Foreground(theme.ColorBgDark).
		Background(theme.ColorAccent).
		Padding(0, 2).
		Bold(true)

	hintStyle := lipgloss.NewStyle().
		Foreground(theme.ColorDim)

	parts := []string{
		splash.LogoView(t),
		"",
		"",
		titleStyle.Render("You are signed out"),
		"",
		subtitleStyle.Render("Sign in from your shell, then reopen the dashboard"),
		"",
		commandStyle.Render("commish login"),
	}

	if state.ErrorMsg != "" {
		parts = append(parts, "", t.Error().Render(state.ErrorMsg))
	}

	parts = append(parts, "", "", hintStyle.Render("Press q to quit"))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, parts...),
	)
}
