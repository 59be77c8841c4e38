package tui

import (
	"context"
	"log/slog"

	"github.com/garrettladley/commish/internal/auth"
	"github.com/garrettladley/commish/internal/client/commission"
	"github.com/garrettladley/commish/internal/client/hub"
)

// Deps is everything the program needs, passed in explicitly.
type Deps struct {
	Ctx       context.Context
	Logger    *slog.Logger
	Session   *auth.Controller
	Hub       *hub.Manager
	Dashboard commission.DashboardService
}
