package tui

import (
	"time"

	"github.com/garrettladley/commish/internal/auth"
	"github.com/garrettladley/commish/internal/client/hub"
	dashdata "github.com/garrettladley/commish/internal/dashboard"
)

const hubPollInterval = time.Second

type SessionMsg struct {
	Status auth.Status
	Err    error
}

// FragmentMsg carries one dashboard message from the page that produced it.
// Messages from a page that is no longer current are dropped.
type FragmentMsg struct {
	Page *dashdata.Page
	Msg  dashdata.Message
}

type PageClosedMsg struct {
	Page *dashdata.Page
}

type HubStateMsg struct {
	State hub.State
}
