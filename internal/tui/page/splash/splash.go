package splash

import (
	"time"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/commish/internal/tui/theme"
)

const Duration = 1500 * time.Millisecond

const Logo = `
  ▄▄▄▄▄    ▄▄▄▄    ▄▄   ▄▄  ▄▄   ▄▄  ▄▄▄▄▄▄   ▄▄▄▄▄   ▄▄   ▄▄
 ██▀▀▀▀   ██▀▀██   ███ ███  ███ ███    ██    ██▀▀▀▀   ██   ██
 ██      ██    ██  ██▀█▀██  ██▀█▀██    ██    ▀████▄   ███████
 ██      ██    ██  ██   ██  ██   ██    ██        ▀██  ██   ██
 ▀█▄▄▄▄   ██▄▄██   ██   ██  ██   ██  ▄▄██▄▄  ▄▄▄▄▄█▀  ██   ██
  ▀▀▀▀▀    ▀▀▀▀    ▀▀   ▀▀  ▀▀   ▀▀  ▀▀▀▀▀▀   ▀▀▀▀    ▀▀   ▀▀`

type TickMsg struct{}

func LogoView(t theme.Theme) string {
	return t.TextAccent().Render(Logo)
}

// View centers the logo. A non-empty status is shown under it; the route
// guard uses that while the session is still being verified.
func View(t theme.Theme, status string, width, height int) string {
	content := LogoView(t)
	if status != "" {
		content = lipgloss.JoinVertical(
			lipgloss.Center,
			content,
			"",
			t.Muted().Render(status),
		)
	}
	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}
