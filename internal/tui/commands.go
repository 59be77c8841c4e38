package tui

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/commish/internal/auth"
	"github.com/garrettladley/commish/internal/client/hub"
	dashdata "github.com/garrettladley/commish/internal/dashboard"
	"github.com/garrettladley/commish/internal/tui/page/splash"
)

func splashTickCmd() tea.Cmd {
	return tea.Tick(splash.Duration, func(time.Time) tea.Msg {
		return splash.TickMsg{}
	})
}

func bootstrapCmd(ctx context.Context, session *auth.Controller) tea.Cmd {
	return func() tea.Msg {
		return SessionMsg{Status: session.Bootstrap(ctx)}
	}
}

func logoutCmd(ctx context.Context, session *auth.Controller) tea.Cmd {
	return func() tea.Msg {
		err := session.Logout(ctx)
		return SessionMsg{Status: session.Status(), Err: err}
	}
}

// startPageCmd connects and triggers generation. Failures come back through
// the page's own message channel, so the command itself yields nothing.
func startPageCmd(ctx context.Context, p *dashdata.Page) tea.Cmd {
	return func() tea.Msg {
		p.Start(ctx)
		return nil
	}
}

// listenPageCmd waits for the next message from p. It should be re-issued
// after each FragmentMsg to keep listening.
func listenPageCmd(p *dashdata.Page) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-p.Messages()
		if !ok {
			return PageClosedMsg{Page: p}
		}
		return FragmentMsg{Page: p, Msg: msg}
	}
}

func pollHubCmd(m *hub.Manager) tea.Cmd {
	return tea.Tick(hubPollInterval, func(time.Time) tea.Msg {
		return HubStateMsg{State: m.State()}
	})
}
