package live

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/commish/internal/client/hub"
	"github.com/garrettladley/commish/internal/tui/theme"
)

// Indicator shows the push connection state.
type Indicator struct {
	State hub.State
}

func (i Indicator) Render() string {
	var c = theme.ColorDim
	switch i.State {
	case hub.Connected:
		c = theme.ColorPositive
	case hub.Connecting, hub.Reconnecting:
		c = theme.ColorWarning
	}
	return lipgloss.NewStyle().Foreground(c).Render("⇅ live: " + i.State.String())
}
