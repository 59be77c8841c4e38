package dashboard

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/garrettladley/commish/internal/client/commission"
	dashdata "github.com/garrettladley/commish/internal/dashboard"
	"github.com/garrettladley/commish/internal/tui/theme"
)

func TestMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0.00"},
		{in: 5.5, want: "5.50"},
		{in: 999.999, want: "1,000.00"},
		{in: 1234567.891, want: "1,234,567.89"},
		{in: -42.1, want: "-42.10"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "cut latin", in: "Maria Aparecida", n: 6, want: "Maria…"},
		{name: "fits", in: "Ana", n: 6, want: "Ana"},
		{name: "wide runes count two cells", in: "田中太郎商事", n: 6, want: "田中…"},
		{name: "wide runes that fit", in: "田中太", n: 6, want: "田中太"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := truncate(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if w := ansi.StringWidth(got); w > tt.n {
				t.Errorf("truncate(%q, %d) width = %d", tt.in, tt.n, w)
			}
		})
	}
}

func TestSharesAlignWideLabels(t *testing.T) {
	t.Parallel()

	shares := []dashdata.Share{
		{Platform: "東京ストア", Value: 1, Percent: 50},
		{Platform: "Shop", Value: 1, Percent: 50},
	}
	lines := strings.Split(ansi.Strip(sharesBody(shares, 40, Money)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if a, b := ansi.StringWidth(lines[0]), ansi.StringWidth(lines[1]); a != b {
		t.Errorf("line widths = %d and %d, want equal", a, b)
	}
}

func TestViewRendersSlotsIndependently(t *testing.T) {
	t.Parallel()

	vm := dashdata.Reduce(dashdata.ViewModel{}, dashdata.TotalClientsMsg{Data: commission.TotalClients{Total: 42}})
	out := ansi.Strip(View(theme.New(), State{VM: vm}, 120, 40))

	if !strings.Contains(out, "42") {
		t.Error("client count is not rendered")
	}
	if !strings.Contains(out, "▒") {
		t.Error("pending slots do not render skeletons")
	}
	if strings.Contains(out, "unavailable") {
		t.Error("pending slots render as failed")
	}
}

func TestViewShowsLoadError(t *testing.T) {
	t.Parallel()

	vm := dashdata.Reduce(dashdata.ViewModel{}, dashdata.TopClientsMsg{Items: []commission.TopClient{{Name: "Ana", TotalSales: 10}}})
	vm = dashdata.Reduce(vm, dashdata.LoadErrorMsg{Err: "generation failed"})
	out := ansi.Strip(View(theme.New(), State{VM: vm}, 120, 40))

	if !strings.Contains(out, "generation failed") {
		t.Error("page error is not rendered")
	}
	if !strings.Contains(out, "1. Ana") {
		t.Error("a loaded slot was hidden by the page error")
	}
	if strings.Contains(out, "▒") {
		t.Error("skeletons still shown after a load error")
	}
}
