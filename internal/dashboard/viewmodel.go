package dashboard

import (
	"cmp"
	"slices"

	"github.com/garrettladley/commish/internal/client/commission"
)

type Slot uint8

const (
	SlotCommission Slot = iota
	SlotHistory
	SlotClientCount
	SlotClientsByPlatform
	SlotTopClients
	SlotSalesByPlatform
)

func Slots() []Slot {
	return []Slot{
		SlotCommission,
		SlotHistory,
		SlotClientCount,
		SlotClientsByPlatform,
		SlotTopClients,
		SlotSalesByPlatform,
	}
}

func (s Slot) String() string {
	switch s {
	case SlotCommission:
		return "commission"
	case SlotHistory:
		return "history"
	case SlotClientCount:
		return "client count"
	case SlotClientsByPlatform:
		return "clients by platform"
	case SlotTopClients:
		return "top clients"
	case SlotSalesByPlatform:
		return "sales by platform"
	default:
		return "unknown"
	}
}

// SlotState is how a slot should be rendered.
type SlotState int

const (
	Pending SlotState = iota
	Failed
	Loaded
)

// ViewModel accumulates dashboard fragments. The zero value has every slot
// pending.
type ViewModel struct {
	Commission        commission.CommissionData
	History           []commission.HistoricalCommission
	ClientCount       commission.TotalClients
	ClientsByPlatform []commission.PlatformCount
	TopClients        []commission.TopClient
	SalesByPlatform   []commission.PlatformSales
	Err               string

	loaded uint8
}

// Reduce folds msg into vm. Each fragment replaces only its own slot; vm is
// not modified.
func Reduce(vm ViewModel, msg Message) ViewModel {
	switch m := msg.(type) {
	case CommissionDataMsg:
		vm.Commission = m.Data
		vm.mark(SlotCommission)
	case HistoricalCommissionsMsg:
		vm.History = m.Items
		vm.mark(SlotHistory)
	case TotalClientsMsg:
		vm.ClientCount = m.Data
		vm.mark(SlotClientCount)
	case ClientsByPlatformMsg:
		vm.ClientsByPlatform = m.Items
		vm.mark(SlotClientsByPlatform)
	case TopClientsMsg:
		vm.TopClients = m.Items
		vm.mark(SlotTopClients)
	case SalesByPlatformMsg:
		vm.SalesByPlatform = m.Items
		vm.mark(SlotSalesByPlatform)
	case LoadErrorMsg:
		vm.Err = m.Err
		if vm.Err == "" {
			vm.Err = defaultLoadError
		}
	}
	return vm
}

func (vm *ViewModel) mark(s Slot) {
	vm.loaded |= 1 << s
}

func (vm ViewModel) Loading(s Slot) bool {
	return vm.loaded&(1<<s) == 0
}

// Ready reports whether every slot has arrived.
func (vm ViewModel) Ready() bool {
	for _, s := range Slots() {
		if vm.Loading(s) {
			return false
		}
	}
	return true
}

func (vm ViewModel) Failed() bool {
	return vm.Err != ""
}

func (vm ViewModel) State(s Slot) SlotState {
	switch {
	case !vm.Loading(s):
		return Loaded
	case vm.Failed():
		return Failed
	default:
		return Pending
	}
}

// HistorySeries returns the history ordered by month, oldest first.
func (vm ViewModel) HistorySeries() []commission.HistoricalCommission {
	series := slices.Clone(vm.History)
	slices.SortStableFunc(series, func(a, b commission.HistoricalCommission) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return series
}

// RankedTopClients returns at most n clients by descending sales. Ties keep
// the server's order. n <= 0 returns all of them.
func (vm ViewModel) RankedTopClients(n int) []commission.TopClient {
	ranked := slices.Clone(vm.TopClients)
	slices.SortStableFunc(ranked, func(a, b commission.TopClient) int {
		return cmp.Compare(b.TotalSales, a.TotalSales)
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

type Share struct {
	Platform string
	Value    float64
	Percent  float64
}

// PlatformShares splits sales by platform into percentages of the total,
// largest first.
func (vm ViewModel) PlatformShares() []Share {
	shares := make([]Share, 0, len(vm.SalesByPlatform))
	for _, p := range vm.SalesByPlatform {
		shares = append(shares, Share{Platform: p.Platform, Value: p.TotalSales})
	}
	return withPercents(shares)
}

// ClientShares does the same for client counts.
func (vm ViewModel) ClientShares() []Share {
	shares := make([]Share, 0, len(vm.ClientsByPlatform))
	for _, p := range vm.ClientsByPlatform {
		shares = append(shares, Share{Platform: p.Platform, Value: float64(p.Count)})
	}
	return withPercents(shares)
}

func withPercents(shares []Share) []Share {
	var total float64
	for _, s := range shares {
		total += s.Value
	}
	if total > 0 {
		for i := range shares {
			shares[i].Percent = shares[i].Value / total * 100
		}
	}
	slices.SortStableFunc(shares, func(a, b Share) int {
		return cmp.Compare(b.Value, a.Value)
	})
	return shares
}
