package main

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/garrettladley/commish/internal/auth"
	"github.com/garrettladley/commish/internal/client/commission"
	"github.com/garrettladley/commish/internal/tui/components/table"
	dashpage "github.com/garrettladley/commish/internal/tui/page/dashboard"
)

var errNotAdmin = errors.New("not logged in as admin, run \"commish login --admin\"")

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administer consultants and commission metas",
	}

	cmd.AddCommand(adminConsultantsCmd())
	cmd.AddCommand(adminConsultantClientsCmd())
	cmd.AddCommand(adminMetaCmd())
	cmd.AddCommand(adminOverviewCmd())
	cmd.AddCommand(adminGenerateCmd())

	return cmd
}

// openAdmin opens the app and fails early when the admin slot is empty. Admin
// commands send only the admin token, whatever the consultant slot holds.
func openAdmin(cmd *cobra.Command) (*app, error) {
	a, err := openApp(cmd)
	if err != nil {
		return nil, err
	}

	ok, err := auth.NewAdminSession(a.store, a.client.Auth, a.logger).Active(cmd.Context())
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to read admin session: %w", err)
	}
	if !ok {
		_ = a.Close()
		return nil, errNotAdmin
	}
	a.useAdminToken()
	return a, nil
}

func adminConsultantsCmd() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "consultants [id]",
		Short: "List consultants, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAdmin(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			if len(args) == 1 {
				c, err := a.client.Consultants.Get(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to get consultant: %w", err)
				}
				_, _ = lipgloss.Println(table.Render(consultantHeaders, [][]string{consultantRow(*c)}))
				return nil
			}

			params, err := f.params()
			if err != nil {
				return err
			}
			page, err := a.client.Consultants.List(ctx, params)
			if err != nil {
				return fmt.Errorf("failed to list consultants: %w", err)
			}
			printPage(page, consultantHeaders, consultantRow)
			return nil
		},
	}

	f.register(cmd, false)
	return cmd
}

func adminConsultantClientsCmd() *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "consultant-clients <consultant-id>",
		Short: "List the clients of one consultant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := f.params()
			if err != nil {
				return err
			}

			a, err := openAdmin(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			page, err := a.client.Consultants.Clients(ctx, args[0], params)
			if err != nil {
				return fmt.Errorf("failed to list consultant clients: %w", err)
			}
			printPage(page, customerHeaders, customerRow, 5)
			return nil
		},
	}

	f.register(cmd, false)
	return cmd
}

func adminMetaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "meta",
		Aliases: []string{"metas"},
		Short:   "Manage commission metas",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAdmin(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			metas, err := a.client.Metas.List(ctx)
			if err != nil {
				return fmt.Errorf("failed to list metas: %w", err)
			}
			rows := make([][]string, 0, len(metas))
			for _, m := range metas {
				rows = append(rows, metaRow(m))
			}
			_, _ = lipgloss.Println(table.Render([]string{"ID", "Name", "Tiers"}, rows))
			return nil
		},
	}

	cmd.AddCommand(adminMetaCreateCmd())
	cmd.AddCommand(adminMetaAssignCmd())

	return cmd
}

func adminMetaCreateCmd() *cobra.Command {
	var (
		name  string
		tiers []string
	)

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a meta from tiers",
		Example: "  commish admin meta create --name Gold --tier 0:5 --tier 10000:7.5",
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := buildMeta(name, tiers)
			if err != nil {
				return err
			}

			a, err := openAdmin(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			created, err := a.client.Metas.Create(ctx, meta)
			if err != nil {
				return fmt.Errorf("failed to create meta: %w", err)
			}
			fmt.Printf("Created meta %s (%s).\n", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "meta name")
	cmd.Flags().StringArrayVar(&tiers, "tier", nil, "tier as min-value:percentage, repeatable")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("tier")

	return cmd
}

func adminMetaAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <consultant-id> <meta-id>",
		Short: "Assign a meta to a consultant",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAdmin(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			if err := a.client.Metas.Assign(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("failed to assign meta: %w", err)
			}
			fmt.Println("Meta assigned.")
			return nil
		},
	}
}

func adminOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Summarize consultants and their metas",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAdmin(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			var (
				consultants *commission.Page[commission.Consultant]
				metas       []commission.Meta
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				var err error
				consultants, err = a.client.Consultants.List(ctx, &commission.ListParams{Page: 1, PageSize: 100})
				if err != nil {
					return fmt.Errorf("failed to list consultants: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				var err error
				metas, err = a.client.Metas.List(ctx)
				if err != nil {
					return fmt.Errorf("failed to list metas: %w", err)
				}
				return nil
			})
			if err := g.Wait(); err != nil {
				return err
			}

			_, _ = lipgloss.Println(table.Render([]string{"Consultant", "Email", "Active", "Meta"}, overviewRows(consultants.Items, metas)))
			fmt.Println(pageFooter(consultants))
			return nil
		},
	}
}

func adminGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate-data",
		Short: "Ask the server to push fresh dashboard data",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openAdmin(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			ctx := cmd.Context()

			msg, err := a.client.Dashboard.StartGeneration(ctx)
			if err != nil {
				return fmt.Errorf("failed to start generation: %w", err)
			}
			fmt.Println(msg.Message)
			return nil
		},
	}
}

var consultantHeaders = []string{"ID", "Name", "Email", "Phone", "Active", "Meta"}

func consultantRow(c commission.Consultant) []string {
	meta := "-"
	if c.MetaID != nil {
		meta = *c.MetaID
	}
	return []string{c.ID, c.Name, c.Email, c.Phone, yesNo(c.Active), meta}
}

func metaRow(m commission.Meta) []string {
	tiers := make([]string, 0, len(m.Tiers))
	for _, t := range m.Tiers {
		tiers = append(tiers, fmt.Sprintf("%s→%s", dashpage.Money(t.MinValue), dashpage.Percent(t.Percentage)))
	}
	return []string{m.ID, m.Name, strings.Join(tiers, ", ")}
}

// overviewRows resolves each consultant's meta id to its name. Unknown ids are
// shown as-is.
func overviewRows(consultants []commission.Consultant, metas []commission.Meta) [][]string {
	names := make(map[string]string, len(metas))
	for _, m := range metas {
		names[m.ID] = m.Name
	}

	rows := make([][]string, 0, len(consultants))
	for _, c := range consultants {
		meta := "-"
		if c.MetaID != nil {
			meta = *c.MetaID
			if n, ok := names[meta]; ok {
				meta = n
			}
		}
		rows = append(rows, []string{c.Name, c.Email, yesNo(c.Active), meta})
	}
	return rows
}

// buildMeta parses "min:percentage" tiers. Tiers must be given in ascending
// order of min value.
func buildMeta(name string, raw []string) (commission.Meta, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return commission.Meta{}, errors.New("meta name is required")
	}
	if len(raw) == 0 {
		return commission.Meta{}, errors.New("at least one tier is required")
	}

	meta := commission.Meta{Name: name, Tiers: make([]commission.MetaTier, 0, len(raw))}
	for i, t := range raw {
		minStr, pctStr, ok := strings.Cut(t, ":")
		if !ok {
			return commission.Meta{}, fmt.Errorf("tier %q: want min-value:percentage", t)
		}
		minValue, err := strconv.ParseFloat(strings.TrimSpace(minStr), 64)
		if err != nil || !finite(minValue) || minValue < 0 {
			return commission.Meta{}, fmt.Errorf("tier %q: invalid min value", t)
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(pctStr), 64)
		if err != nil || !finite(pct) || pct < 0 || pct > 100 {
			return commission.Meta{}, fmt.Errorf("tier %q: percentage must be between 0 and 100", t)
		}
		if i > 0 && minValue <= meta.Tiers[i-1].MinValue {
			return commission.Meta{}, fmt.Errorf("tier %q: min value must exceed the previous tier", t)
		}
		meta.Tiers = append(meta.Tiers, commission.MetaTier{MinValue: minValue, Percentage: pct})
	}
	return meta, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
