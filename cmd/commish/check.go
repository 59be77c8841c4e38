//go:build !release

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/garrettladley/commish/internal/client/commission"
)

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Exercise the consultant endpoints",
		Long:  "Fetches your profile and the first page of every list to verify the client works.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			first := &commission.ListParams{Page: 1, PageSize: 3}
			var failures int

			fmt.Println("\n[Profile.Me]")
			profile, err := a.client.Profile.Me(ctx)
			if err != nil {
				fmt.Printf("  ERROR: %v\n", err)
				failures++
			} else {
				fmt.Printf("  OK: %s (%s) role=%s\n", profile.Name, profile.Email, profile.Role)
			}

			fmt.Println("\n[Clients.List]")
			clients, err := a.client.Clients.List(ctx, first)
			if err != nil {
				fmt.Printf("  ERROR: %v\n", err)
				failures++
			} else {
				fmt.Printf("  OK: %d of %d clients\n", len(clients.Items), clients.Total)
				for _, c := range clients.Items {
					fmt.Printf("    - id=%s, name=%s, platform=%s\n", c.ID, c.Name, c.Platform)
				}
			}

			if clients != nil && len(clients.Items) > 0 {
				id := clients.Items[0].ID
				fmt.Printf("\n[Clients.Get] id=%s\n", id)
				c, err := a.client.Clients.Get(ctx, id)
				if err != nil {
					fmt.Printf("  ERROR: %v\n", err)
					failures++
				} else {
					fmt.Printf("  OK: %s, total=%.2f\n", c.Name, c.TotalSales)
				}
			}

			fmt.Println("\n[Sales.List]")
			sales, err := a.client.Sales.List(ctx, first)
			if err != nil {
				fmt.Printf("  ERROR: %v\n", err)
				failures++
			} else {
				fmt.Printf("  OK: %d of %d sales\n", len(sales.Items), sales.Total)
				for _, s := range sales.Items {
					fmt.Printf("    - %s, amount=%.2f, status=%s\n", s.Date.Format(time.DateOnly), s.Amount, s.Status)
				}
			}

			fmt.Println("\n[Withdrawals.List]")
			withdrawals, err := a.client.Withdrawals.List(ctx, first)
			if err != nil {
				fmt.Printf("  ERROR: %v\n", err)
				failures++
			} else {
				fmt.Printf("  OK: %d of %d withdrawals\n", len(withdrawals.Items), withdrawals.Total)
			}

			fmt.Println("\n[Statements.Get]")
			st, err := a.client.Statements.Get(ctx, nil)
			if err != nil {
				fmt.Printf("  ERROR: %v\n", err)
				failures++
			} else {
				fmt.Printf("  OK: balance=%.2f, %d entries\n", st.Balance, len(st.Entries))
			}

			fmt.Println()
			if failures > 0 {
				return fmt.Errorf("%d checks failed", failures)
			}
			fmt.Println("All checks passed.")
			return nil
		},
	}
}
