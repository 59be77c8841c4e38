//go:build !release

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/garrettladley/commish/internal/tokenstore"
)

func tokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Show the stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			for _, owner := range tokenstore.Owners() {
				fmt.Printf("[%s]\n", owner)

				token, err := a.store.Get(ctx, owner)
				if errors.Is(err, tokenstore.ErrNoToken) {
					fmt.Println("  (empty)")
					continue
				}
				if err != nil {
					return fmt.Errorf("failed to get %s token: %w", owner, err)
				}

				fmt.Printf("  Access Token:  %s\n", token.AccessToken)
				if token.RefreshToken != "" {
					fmt.Printf("  Refresh Token: %s\n", token.RefreshToken)
				}
				if info, err := inspectToken(token.AccessToken); err == nil && !info.ExpiresAt.IsZero() {
					if info.Expired(time.Now()) {
						fmt.Printf("  Status:        EXPIRED\n")
					} else {
						fmt.Printf("  Status:        Valid (expires in %s)\n", time.Until(info.ExpiresAt).Round(time.Second))
					}
				}
			}

			active, _, err := tokenstore.Resolve(ctx, a.store, tokenstore.DefaultPriority)
			if err == nil {
				fmt.Printf("\nActive: %s\n", active)
			}
			return nil
		},
	}
}
