package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/commish/internal/auth"
	"github.com/garrettladley/commish/internal/client/hub"
	dashdata "github.com/garrettladley/commish/internal/dashboard"
	authind "github.com/garrettladley/commish/internal/tui/components/auth"
	"github.com/garrettladley/commish/internal/tui/components/footer"
	"github.com/garrettladley/commish/internal/tui/components/live"
	"github.com/garrettladley/commish/internal/tui/page/dashboard"
	"github.com/garrettladley/commish/internal/tui/page/signedout"
	"github.com/garrettladley/commish/internal/tui/page/splash"
	"github.com/garrettladley/commish/internal/tui/theme"
	"github.com/garrettladley/commish/internal/xslog"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	signedOutPage
	dashboardPage
)

const (
	dashboardHints = "r reload · l logout · q quit"
	signedOutHints = "q quit"
)

type state struct {
	signedOut signedout.State
	dashboard dashboard.State
}

type Model struct {
	ready          bool
	splashDone     bool
	page           page
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	state          state
	deps           Deps

	session  auth.Status
	hubState hub.State
	handle   *hub.Handle
	current  *dashdata.Page
}

func New(deps Deps) Model {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	if deps.Logger == nil {
		deps.Logger = xslog.Nop()
	}
	return Model{
		page:    splashPage,
		theme:   theme.New(),
		deps:    deps,
		session: deps.Session.Status(),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		splashTickCmd(),
		bootstrapCmd(m.deps.Ctx, m.deps.Session),
		pollHubCmd(m.deps.Hub),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.shutdown()
			return m, tea.Quit
		case "r":
			if m.page == dashboardPage {
				m.unmountDashboard()
				return m, m.mountDashboard()
			}
		case "l":
			if m.page == dashboardPage {
				return m, logoutCmd(m.deps.Ctx, m.deps.Session)
			}
		}

	case splash.TickMsg:
		m.splashDone = true
		return m, m.route()

	case SessionMsg:
		m.session = msg.Status
		m.state.signedOut.ErrorMsg = ""
		if msg.Err != nil {
			m.deps.Logger.Error("session update failed", xslog.Error(msg.Err))
			m.state.signedOut.ErrorMsg = msg.Err.Error()
		}
		return m, m.route()

	case FragmentMsg:
		if msg.Page != m.current {
			return m, nil
		}
		m.state.dashboard.VM = dashdata.Reduce(m.state.dashboard.VM, msg.Msg)
		return m, listenPageCmd(msg.Page)

	case PageClosedMsg:
		// nothing to do; a closed page is already unmounted

	case HubStateMsg:
		m.hubState = msg.State
		return m, pollHubCmd(m.deps.Hub)
	}

	return m, nil
}

// route applies the guard once the splash has run: a session still being
// verified keeps the splash up, an anonymous one lands on the signed-out page.
func (m *Model) route() tea.Cmd {
	if !m.splashDone {
		return nil
	}

	switch auth.Guard(m.session) {
	case auth.Allow:
		if m.page == dashboardPage {
			return nil
		}
		m.page = dashboardPage
		return m.mountDashboard()
	case auth.RedirectLogin:
		// drop the hub reference too so the push channel closes with the session
		m.shutdown()
		m.page = signedOutPage
	default:
		m.page = splashPage
	}
	return nil
}

func (m *Model) mountDashboard() tea.Cmd {
	if m.handle == nil {
		m.handle = m.deps.Hub.Attach()
	}

	p := dashdata.NewPage(m.handle, m.deps.Dashboard, m.deps.Logger)
	p.Mount()

	m.current = p
	m.state.dashboard.VM = dashdata.ViewModel{}

	return tea.Batch(
		startPageCmd(m.deps.Ctx, p),
		listenPageCmd(p),
	)
}

func (m *Model) unmountDashboard() {
	if m.current == nil {
		return
	}
	m.current.Unmount()
	m.current = nil
}

func (m *Model) shutdown() {
	m.unmountDashboard()
	if m.handle != nil {
		m.handle.Release()
		m.handle = nil
	}
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true

	// splash uses pure black BG, everything else uses default dark
	if m.page == splashPage {
		view.BackgroundColor = theme.ColorBlack
	} else {
		view.BackgroundColor = m.theme.Background()
	}

	if !m.ready {
		return view
	}

	var content string
	switch m.page {
	case splashPage:
		status := ""
		if m.splashDone {
			status = "verifying session..."
		}
		content = splash.View(m.theme, status, m.viewportWidth, m.viewportHeight)
	case signedOutPage:
		content = m.withFooter(signedOutHints, func(height int) string {
			return signedout.View(m.theme, m.state.signedOut, m.viewportWidth, height)
		})
	case dashboardPage:
		content = m.withFooter(dashboardHints, func(height int) string {
			return dashboard.View(m.theme, m.state.dashboard, m.viewportWidth, height)
		})
	}

	view.SetContent(content)
	return view
}

func (m *Model) withFooter(hints string, body func(height int) string) string {
	right := lipgloss.JoinHorizontal(
		lipgloss.Top,
		live.Indicator{State: m.hubState}.Render(),
		"   ",
		authind.Indicator{Status: m.session}.Render(),
	)
	f := footer.New(hints, right, m.viewportWidth).Render()

	height := max(m.viewportHeight-lipgloss.Height(f), 0)
	return lipgloss.JoinVertical(lipgloss.Left, body(height), f)
}
