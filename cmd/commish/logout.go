package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garrettladley/commish/internal/auth"
)

func logoutCmd() *cobra.Command {
	var admin, all bool

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			if all {
				if err := a.store.ClearAll(ctx); err != nil {
					return fmt.Errorf("failed to clear tokens: %w", err)
				}
				fmt.Println("Logged out of every session.")
				return nil
			}

			if admin {
				if err := auth.NewAdminSession(a.store, a.client.Auth, a.logger).Logout(ctx); err != nil {
					return fmt.Errorf("failed to log out: %w", err)
				}
				fmt.Println("Logged out of the admin area.")
				return nil
			}

			if err := auth.NewController(a.store, a.client.Auth, a.client.Profile, a.logger).Logout(ctx); err != nil {
				return fmt.Errorf("failed to log out: %w", err)
			}
			fmt.Println("Logged out.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&admin, "admin", false, "clear the admin session instead")
	cmd.Flags().BoolVar(&all, "all", false, "clear every stored session")

	return cmd
}
