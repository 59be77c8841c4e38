package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/commish/internal/client/commission"
	dashdata "github.com/garrettladley/commish/internal/dashboard"
	"github.com/garrettladley/commish/internal/tui/components/chart"
	"github.com/garrettladley/commish/internal/tui/components/skeleton"
	"github.com/garrettladley/commish/internal/tui/theme"
)

const (
	minWidth       = 60
	topClientCount = 5
	chartHeight    = 6
)

type State struct {
	VM dashdata.ViewModel
}

// View lays the six panels out in three rows. Each panel depends only on its
// own slot.
func View(t theme.Theme, state State, width, height int) string {
	var (
		vm    = state.VM
		w     = max(width-2, minWidth)
		half  = w / 2
		third = w / 3
	)

	topRow := lipgloss.JoinHorizontal(
		lipgloss.Top,
		panel(t, "COMMISSION", half, slotBody(t, vm, dashdata.SlotCommission, half, 5, func(inner int) string {
			return commissionBody(t, vm.Commission, inner)
		})),
		panel(t, "CLIENTS", w-half, slotBody(t, vm, dashdata.SlotClientCount, w-half, 5, func(int) string {
			return clientCountBody(vm.ClientCount)
		})),
	)

	historyRow := panel(t, "COMMISSION HISTORY", w, slotBody(t, vm, dashdata.SlotHistory, w, chartHeight+1, func(inner int) string {
		return historyBody(t, vm.HistorySeries(), inner)
	}))

	bottomRow := lipgloss.JoinHorizontal(
		lipgloss.Top,
		panel(t, "CLIENTS BY PLATFORM", third, slotBody(t, vm, dashdata.SlotClientsByPlatform, third, topClientCount, func(inner int) string {
			return sharesBody(vm.ClientShares(), inner, func(v float64) string { return strconv.Itoa(int(v)) })
		})),
		panel(t, "TOP CLIENTS", third, slotBody(t, vm, dashdata.SlotTopClients, third, topClientCount, func(inner int) string {
			return topClientsBody(t, vm.RankedTopClients(topClientCount), inner)
		})),
		panel(t, "SALES BY PLATFORM", w-2*third, slotBody(t, vm, dashdata.SlotSalesByPlatform, w-2*third, topClientCount, func(inner int) string {
			return sharesBody(vm.PlatformShares(), inner, Money)
		})),
	)

	content := lipgloss.JoinVertical(lipgloss.Left, topRow, historyRow, bottomRow)
	if vm.Failed() {
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			t.Error().Bold(true).Render("✕ "+vm.Err),
			content,
		)
	}

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// innerWidth is what is left of a panel after its border and padding.
func innerWidth(width int) int {
	return max(width-4, 1)
}

func panel(t theme.Theme, title string, width int, body string) string {
	return t.Panel(width).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		t.Title().Render(title),
		body,
	))
}

func slotBody(t theme.Theme, vm dashdata.ViewModel, slot dashdata.Slot, width, lines int, render func(inner int) string) string {
	inner := innerWidth(width)
	switch vm.State(slot) {
	case dashdata.Loaded:
		return render(inner)
	case dashdata.Failed:
		return t.Error().Render("unavailable")
	default:
		return skeleton.Render(inner, lines)
	}
}

func row(label, value string, width int) string {
	gap := max(width-lipgloss.Width(label)-lipgloss.Width(value), 1)
	return label + strings.Repeat(" ", gap) + value
}

func commissionBody(t theme.Theme, d commission.CommissionData, inner int) string {
	var (
		accent  = lipgloss.NewStyle().Foreground(theme.ColorAccent).Bold(true)
		pending = lipgloss.NewStyle().Foreground(theme.ColorWarning)
	)

	lines := []string{
		row("Total commission", accent.Render(Money(d.TotalCommission)), inner),
		row("Available", Money(d.AvailableBalance), inner),
		row("Pending withdrawals", pending.Render(Money(d.PendingWithdrawals)), inner),
		row("Sales this month", Money(d.MonthSales), inner),
	}

	if tier := d.CurrentTier; tier != nil {
		label := fmt.Sprintf("%s · %s", tier.MetaName, Percent(tier.Percentage))
		lines = append(lines,
			"",
			row(label, t.Muted().Render("next at "+Money(tier.NextThreshold)), inner),
			chart.Bar(tier.Progress, inner, theme.ColorAccent),
		)
	}

	return strings.Join(lines, "\n")
}

func clientCountBody(c commission.TotalClients) string {
	return lipgloss.NewStyle().
		Foreground(theme.ColorInfo).
		Bold(true).
		Render(strconv.Itoa(c.Total)) + "\nactive clients"
}

func historyBody(t theme.Theme, series []commission.HistoricalCommission, inner int) string {
	if len(series) == 0 {
		return t.Muted().Render("no commission history yet")
	}

	values := make([]float64, len(series))
	for i, h := range series {
		values[i] = h.Amount
	}

	plot := chart.Line{
		Values: values,
		Width:  inner,
		Height: chartHeight,
		Color:  theme.ColorChart,
	}.Render()

	first, last := series[0], series[len(series)-1]
	axis := row(first.Month, last.Month+"  "+Money(last.Amount), inner)

	return lipgloss.JoinVertical(lipgloss.Left, plot, t.Muted().Render(axis))
}

func topClientsBody(t theme.Theme, clients []commission.TopClient, inner int) string {
	if len(clients) == 0 {
		return t.Muted().Render("no sales yet")
	}

	lines := make([]string, len(clients))
	for i, c := range clients {
		amount := Money(c.TotalSales)
		name := truncate(fmt.Sprintf("%d. %s", i+1, c.Name), max(inner-len(amount)-1, 1))
		lines[i] = row(name, amount, inner)
	}
	return strings.Join(lines, "\n")
}

func sharesBody(shares []dashdata.Share, inner int, format func(float64) string) string {
	if len(shares) == 0 {
		return lipgloss.NewStyle().Foreground(theme.ColorDim).Render("no data")
	}

	const labelWidth = 10
	lines := make([]string, 0, len(shares))
	for _, s := range shares {
		label := padRight(truncate(s.Platform, labelWidth), labelWidth)
		value := format(s.Value) + " " + Percent(s.Percent)
		barWidth := max(inner-labelWidth-lipgloss.Width(value)-2, 1)
		lines = append(lines, label+" "+chart.Bar(s.Percent/100, barWidth, theme.ColorInfo)+" "+value)
	}
	return strings.Join(lines, "\n")
}
