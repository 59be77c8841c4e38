package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/commish/internal/client/commission"
)

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "100", want: 100},
		{in: " 12.5 ", want: 12.5},
		{in: "0.01", want: 0.01},
		{in: "0", wantErr: true},
		{in: "-5", wantErr: true},
		{in: "1.234", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "NaN", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "1e-5", wantErr: true},
		{in: "1E2", wantErr: true},
		{in: "0x1p-8", wantErr: true},
		{in: "+5", wantErr: true},
		{in: "5.", wantErr: true},
		{in: ".5", wantErr: true},
		{in: "1_000", wantErr: true},
		{in: "0.00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := parseAmount(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseAmount(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAmount(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRows(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		got  []string
		want []string
	}{
		{
			name: "sale",
			got:  saleRow(commission.Sale{ClientName: "Ana", Platform: "web", Amount: 1500, Commission: 75, Status: commission.SaleStatusConfirmed, Date: day}),
			want: []string{"2025-03-14", "Ana", "web", "1,500.00", "75.00", "confirmed"},
		},
		{
			name: "pending withdrawal",
			got:  withdrawalRow(commission.Withdrawal{Amount: 20, Status: commission.WithdrawalStatusPending, RequestedAt: day}),
			want: []string{"2025-03-14", "20.00", "pending", "-", ""},
		},
		{
			name: "processed withdrawal",
			got:  withdrawalRow(commission.Withdrawal{Amount: 20, Status: commission.WithdrawalStatusPaid, RequestedAt: day, ProcessedAt: &day, Note: "pix"}),
			want: []string{"2025-03-14", "20.00", "paid", "2025-03-14", "pix"},
		},
		{
			name: "debit entry",
			got:  statementRow(commission.StatementEntry{Date: day, Description: "withdrawal", Kind: commission.EntryKindDebit, Amount: 20, Balance: 80}),
			want: []string{"2025-03-14", "withdrawal", "-20.00", "80.00"},
		},
		{
			name: "credit entry",
			got:  statementRow(commission.StatementEntry{Date: day, Description: "sale", Kind: commission.EntryKindCredit, Amount: 100, Balance: 100}),
			want: []string{"2025-03-14", "sale", "100.00", "100.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, tt.got); diff != "" {
				t.Errorf("row mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
