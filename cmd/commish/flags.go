package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/garrettladley/commish/internal/client/commission"
)

type listFlags struct {
	page     int
	pageSize int
	search   string
	status   string
	from     string
	to       string
}

func (f *listFlags) register(cmd *cobra.Command, withStatus bool) {
	cmd.Flags().IntVar(&f.page, "page", 1, "page number")
	cmd.Flags().IntVar(&f.pageSize, "page-size", 20, "items per page")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "free-text filter")
	if withStatus {
		cmd.Flags().StringVar(&f.status, "status", "", "status filter")
	}
	cmd.Flags().StringVar(&f.from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "end date (YYYY-MM-DD)")
}

func (f *listFlags) params() (*commission.ListParams, error) {
	if f.page < 1 {
		return nil, fmt.Errorf("page must be at least 1, got %d", f.page)
	}
	if f.pageSize < 1 {
		return nil, fmt.Errorf("page size must be at least 1, got %d", f.pageSize)
	}

	p := &commission.ListParams{
		Page:     f.page,
		PageSize: f.pageSize,
		Search:   f.search,
		Status:   f.status,
	}

	var err error
	if p.From, err = parseDate("from", f.from); err != nil {
		return nil, err
	}
	if p.To, err = parseDate("to", f.to); err != nil {
		return nil, err
	}
	if p.From != nil && p.To != nil && p.To.Before(*p.From) {
		return nil, fmt.Errorf("--to %s is before --from %s", f.to, f.from)
	}
	return p, nil
}

func parseDate(name, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s date %q: want YYYY-MM-DD", name, s)
	}
	return &t, nil
}

func pageFooter[T any](p *commission.Page[T]) string {
	s := fmt.Sprintf("page %d · %d of %d", p.Page, len(p.Items), p.Total)
	if p.HasMore() {
		s += fmt.Sprintf(" · next: --page %d", p.Page+1)
	}
	return s
}
