//go:build !release

package main

import (
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/garrettladley/commish/internal/client/hub"
	"github.com/garrettladley/commish/internal/dashboard"
	"github.com/garrettladley/commish/internal/tokenstore"
)

func listenCmd() *cobra.Command {
	var (
		duration time.Duration
		trigger  bool
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Print dashboard push events as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			client := hub.New(a.cfg.HubURL,
				tokenstore.NewSlotSource(a.store, tokenstore.Consultant),
				hub.WithLogger(a.logger),
				hub.WithSessionID(a.sessionID),
			)
			defer client.Close()

			for _, event := range dashboard.Events() {
				client.On(event, func(args []go_json.RawMessage) {
					msg, err := dashboard.Decode(event, args)
					if err != nil {
						fmt.Printf("%s %s: decode error: %v\n", time.Now().Format(time.TimeOnly), event, err)
						return
					}
					fmt.Printf("%s %s: %+v\n", time.Now().Format(time.TimeOnly), event, msg)
				})
			}

			if err := client.Connect(ctx); err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			fmt.Printf("state: %s\n", client.State())

			if trigger {
				msg, err := a.client.Dashboard.StartGeneration(ctx)
				if err != nil {
					return fmt.Errorf("failed to start generation: %w", err)
				}
				fmt.Println(msg.Message)
			}

			select {
			case <-ctx.Done():
			case <-time.After(duration):
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&duration, "for", time.Minute, "how long to listen")
	cmd.Flags().BoolVar(&trigger, "trigger", true, "ask the server to start generating data")

	return cmd
}
