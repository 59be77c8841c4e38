package dashboard

import (
	"testing"

	go_json "github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/commish/internal/client/commission"
)

func TestReduceUpdatesOnlyItsSlot(t *testing.T) {
	t.Parallel()

	vm := Reduce(ViewModel{}, TotalClientsMsg{Data: commission.TotalClients{Total: 12}})

	if vm.ClientCount.Total != 12 {
		t.Errorf("ClientCount = %d, want 12", vm.ClientCount.Total)
	}
	for _, s := range Slots() {
		want := s != SlotClientCount
		if got := vm.Loading(s); got != want {
			t.Errorf("Loading(%s) = %v, want %v", s, got, want)
		}
	}
	if vm.Ready() {
		t.Error("Ready() = true with one slot loaded")
	}
	if vm.Failed() {
		t.Error("Failed() = true without an error")
	}
}

func TestReduceIsPure(t *testing.T) {
	t.Parallel()

	before := ViewModel{}
	_ = Reduce(before, CommissionDataMsg{Data: commission.CommissionData{TotalCommission: 5}})

	if !before.Loading(SlotCommission) || before.Commission.TotalCommission != 0 {
		t.Error("Reduce modified its input")
	}
}

func TestReduceAllSlots(t *testing.T) {
	t.Parallel()

	msgs := []Message{
		SalesByPlatformMsg{Items: []commission.PlatformSales{{Platform: "web", TotalSales: 10}}},
		TopClientsMsg{Items: nil},
		HistoricalCommissionsMsg{Items: []commission.HistoricalCommission{{Month: "2025-01", Amount: 1}}},
		ClientsByPlatformMsg{Items: []commission.PlatformCount{{Platform: "web", Count: 2}}},
		CommissionDataMsg{Data: commission.CommissionData{AvailableBalance: 3}},
		TotalClientsMsg{Data: commission.TotalClients{Total: 2}},
	}

	var vm ViewModel
	for _, m := range msgs {
		vm = Reduce(vm, m)
	}

	if !vm.Ready() {
		t.Fatal("Ready() = false after every fragment")
	}
	// an empty list still counts as arrived
	if vm.State(SlotTopClients) != Loaded {
		t.Errorf("State(top clients) = %v, want Loaded", vm.State(SlotTopClients))
	}

	// a later fragment replaces, it does not merge
	vm = Reduce(vm, SalesByPlatformMsg{Items: []commission.PlatformSales{{Platform: "store", TotalSales: 4}}})
	if diff := cmp.Diff([]commission.PlatformSales{{Platform: "store", TotalSales: 4}}, vm.SalesByPlatform); diff != "" {
		t.Errorf("SalesByPlatform mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrorReplacesPendingSlots(t *testing.T) {
	t.Parallel()

	vm := Reduce(ViewModel{}, TotalClientsMsg{Data: commission.TotalClients{Total: 1}})
	vm = Reduce(vm, LoadErrorMsg{Err: "generation failed"})

	if !vm.Failed() || vm.Err != "generation failed" {
		t.Fatalf("Err = %q", vm.Err)
	}
	if got := vm.State(SlotClientCount); got != Loaded {
		t.Errorf("State(client count) = %v, want Loaded", got)
	}
	if got := vm.State(SlotHistory); got != Failed {
		t.Errorf("State(history) = %v, want Failed", got)
	}

	empty := Reduce(ViewModel{}, LoadErrorMsg{})
	if empty.Err != defaultLoadError {
		t.Errorf("Err = %q, want default", empty.Err)
	}
}

func TestHistorySeries(t *testing.T) {
	t.Parallel()

	vm := Reduce(ViewModel{}, HistoricalCommissionsMsg{Items: []commission.HistoricalCommission{
		{Month: "2025-03", Amount: 30},
		{Month: "2024-12", Amount: 5},
		{Month: "2025-01", Amount: 10},
	}})

	want := []commission.HistoricalCommission{
		{Month: "2024-12", Amount: 5},
		{Month: "2025-01", Amount: 10},
		{Month: "2025-03", Amount: 30},
	}
	if diff := cmp.Diff(want, vm.HistorySeries()); diff != "" {
		t.Errorf("HistorySeries() mismatch (-want +got):\n%s", diff)
	}
	if vm.History[0].Month != "2025-03" {
		t.Error("HistorySeries() reordered the view model")
	}
}

func TestRankedTopClients(t *testing.T) {
	t.Parallel()

	vm := Reduce(ViewModel{}, TopClientsMsg{Items: []commission.TopClient{
		{ClientID: "a", TotalSales: 10},
		{ClientID: "b", TotalSales: 50},
		{ClientID: "c", TotalSales: 10},
		{ClientID: "d", TotalSales: 70},
	}})

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "all", n: 0, want: []string{"d", "b", "a", "c"}},
		{name: "top two", n: 2, want: []string{"d", "b"}},
		{name: "more than available", n: 10, want: []string{"d", "b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var got []string
			for _, c := range vm.RankedTopClients(tt.n) {
				got = append(got, c.ClientID)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RankedTopClients(%d) mismatch (-want +got):\n%s", tt.n, diff)
			}
		})
	}
}

func TestPlatformShares(t *testing.T) {
	t.Parallel()

	vm := Reduce(ViewModel{}, SalesByPlatformMsg{Items: []commission.PlatformSales{
		{Platform: "web", TotalSales: 25},
		{Platform: "store", TotalSales: 75},
	}})

	want := []Share{
		{Platform: "store", Value: 75, Percent: 75},
		{Platform: "web", Value: 25, Percent: 25},
	}
	if diff := cmp.Diff(want, vm.PlatformShares()); diff != "" {
		t.Errorf("PlatformShares() mismatch (-want +got):\n%s", diff)
	}

	zero := Reduce(ViewModel{}, ClientsByPlatformMsg{Items: []commission.PlatformCount{{Platform: "web"}}})
	if diff := cmp.Diff([]Share{{Platform: "web"}}, zero.ClientShares()); diff != "" {
		t.Errorf("ClientShares() with zero total mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	raw := func(s string) []go_json.RawMessage { return []go_json.RawMessage{go_json.RawMessage(s)} }

	tests := []struct {
		name    string
		event   string
		args    []go_json.RawMessage
		want    Message
		wantErr bool
	}{
		{
			name:  "commission data",
			event: EventCommissionData,
			args:  raw(`{"totalCommission":120.5,"availableBalance":80,"currentTier":{"metaName":"Gold","percentage":7,"nextThreshold":10000,"progress":0.4}}`),
			want: CommissionDataMsg{Data: commission.CommissionData{
				TotalCommission:  120.5,
				AvailableBalance: 80,
				CurrentTier:      &commission.TierProgress{MetaName: "Gold", Percentage: 7, NextThreshold: 10000, Progress: 0.4},
			}},
		},
		{
			name:  "total clients",
			event: EventTotalClients,
			args:  raw(`{"total":7}`),
			want:  TotalClientsMsg{Data: commission.TotalClients{Total: 7}},
		},
		{
			name:  "top clients",
			event: EventTopClients,
			args:  raw(`[{"clientId":"1","name":"Bo","totalSales":9}]`),
			want:  TopClientsMsg{Items: []commission.TopClient{{ClientID: "1", Name: "Bo", TotalSales: 9}}},
		},
		{
			name:  "load error string",
			event: EventLoadError,
			args:  raw(`"database unavailable"`),
			want:  LoadErrorMsg{Err: "database unavailable"},
		},
		{
			name:  "load error object",
			event: EventLoadError,
			args:  raw(`{"message":"timeout"}`),
			want:  LoadErrorMsg{Err: "timeout"},
		},
		{
			name:  "load error without arguments",
			event: EventLoadError,
			want:  LoadErrorMsg{Err: defaultLoadError},
		},
		{
			name:    "fragment without arguments",
			event:   EventSalesByPlatform,
			wantErr: true,
		},
		{
			name:    "malformed payload",
			event:   EventHistoricalCommissions,
			args:    raw(`{"month":1}`),
			wantErr: true,
		},
		{
			name:    "unknown event",
			event:   "ReceiveSomethingElse",
			args:    raw(`{}`),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Decode(tt.event, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
