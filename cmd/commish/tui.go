package main

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/commish/internal/auth"
	"github.com/garrettladley/commish/internal/client/hub"
	"github.com/garrettladley/commish/internal/tokenstore"
	"github.com/garrettladley/commish/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	ctx := cmd.Context()

	hubClient := hub.New(a.cfg.HubURL,
		tokenstore.NewSlotSource(a.store, tokenstore.Consultant),
		hub.WithLogger(a.logger),
		hub.WithSessionID(a.sessionID),
	)
	manager := hub.NewManager(hubClient, a.logger)
	defer manager.Close()

	deps := tui.Deps{
		Ctx:       ctx,
		Logger:    a.logger,
		Session:   auth.NewController(a.store, a.client.Auth, a.client.Profile, a.logger),
		Hub:       manager,
		Dashboard: a.client.Dashboard,
	}
	model := tui.New(deps)

	p := tea.NewProgram(&model)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}
