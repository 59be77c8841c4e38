package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/garrettladley/commish/internal/client/commission"
	"github.com/garrettladley/commish/internal/tui/components/table"
	dashpage "github.com/garrettladley/commish/internal/tui/page/dashboard"
)

func clientsCmd() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "clients [id]",
		Short: "List your clients, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			if len(args) == 1 {
				c, err := a.client.Clients.Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get client: %w", err)
				}
				_, _ = lipgloss.Println(table.Render(customerHeaders, [][]string{customerRow(*c)}, 5))
				return nil
			}

			params, err := f.params()
			if err != nil {
				return err
			}
			page, err := a.client.Clients.List(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}
			printPage(page, customerHeaders, customerRow, 5)
			return nil
		},
	}

	f.register(cmd, false)
	return cmd
}

func salesCmd() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "sales",
		Short: "List your sales",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := f.params()
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			page, err := a.client.Sales.List(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list sales: %w", err)
			}
			printPage(page, saleHeaders, saleRow, 3, 4)
			return nil
		},
	}

	f.register(cmd, true)
	return cmd
}

func withdrawalsCmd() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "withdrawals",
		Short: "List your withdrawal requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := f.params()
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			page, err := a.client.Withdrawals.List(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list withdrawals: %w", err)
			}
			printPage(page, withdrawalHeaders, withdrawalRow, 1)
			return nil
		},
	}

	f.register(cmd, true)
	return cmd
}

func withdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <amount>",
		Short: "Request a withdrawal from your available balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			w, err := a.client.Withdrawals.Request(ctx, amount)
			if err != nil {
				if apiErr := commission.AsAPIError(err); apiErr != nil && apiErr.Message != "" {
					return errors.New(apiErr.Message)
				}
				return fmt.Errorf("failed to request withdrawal: %w", err)
			}
			fmt.Printf("Requested %s (id %s, %s).\n", dashpage.Money(w.Amount), w.ID, w.Status)
			return nil
		},
	}
}

func statementCmd() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "statement",
		Short: "Show your commission statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := f.params()
			if err != nil {
				return err
			}

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			st, err := a.client.Statements.Get(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to get statement: %w", err)
			}

			rows := make([][]string, 0, len(st.Entries))
			for _, e := range st.Entries {
				rows = append(rows, statementRow(e))
			}
			_, _ = lipgloss.Println(table.Render([]string{"Date", "Description", "Amount", "Balance"}, rows, 2, 3))
			fmt.Printf("earned %s · withdrawn %s · balance %s\n",
				dashpage.Money(st.TotalEarned), dashpage.Money(st.TotalWithdrawn), dashpage.Money(st.Balance))
			return nil
		},
	}

	f.register(cmd, false)
	return cmd
}

func printPage[T any](p *commission.Page[T], headers []string, row func(T) []string, numeric ...int) {
	rows := make([][]string, 0, len(p.Items))
	for _, item := range p.Items {
		rows = append(rows, row(item))
	}
	_, _ = lipgloss.Println(table.Render(headers, rows, numeric...))
	fmt.Println(pageFooter(p))
}

var customerHeaders = []string{"ID", "Name", "Email", "Document", "Platform", "Total sales"}

func customerRow(c commission.Customer) []string {
	return []string{c.ID, c.Name, c.Email, c.Document, c.Platform, dashpage.Money(c.TotalSales)}
}

var saleHeaders = []string{"Date", "Client", "Platform", "Amount", "Commission", "Status"}

func saleRow(s commission.Sale) []string {
	return []string{s.Date.Local().Format(time.DateOnly), s.ClientName, s.Platform, dashpage.Money(s.Amount), dashpage.Money(s.Commission), string(s.Status)}
}

var withdrawalHeaders = []string{"Requested", "Amount", "Status", "Processed", "Note"}

func withdrawalRow(w commission.Withdrawal) []string {
	processed := "-"
	if w.ProcessedAt != nil {
		processed = w.ProcessedAt.Local().Format(time.DateOnly)
	}
	return []string{w.RequestedAt.Local().Format(time.DateOnly), dashpage.Money(w.Amount), string(w.Status), processed, w.Note}
}

func statementRow(e commission.StatementEntry) []string {
	amount := dashpage.Money(e.Amount)
	if e.Kind == commission.EntryKindDebit {
		amount = "-" + amount
	}
	return []string{e.Date.Local().Format(time.DateOnly), e.Description, amount, dashpage.Money(e.Balance)}
}

var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// parseAmount accepts a positive decimal amount with at most two decimals.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid amount %q: want digits with at most two decimals", s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %s", s)
	}
	return v, nil
}
