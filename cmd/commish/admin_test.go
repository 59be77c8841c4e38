package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/commish/internal/client/commission"
)

func TestBuildMeta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		meta    string
		tiers   []string
		want    commission.Meta
		wantErr bool
	}{
		{
			name:  "ascending tiers",
			meta:  " Gold ",
			tiers: []string{"0:5", "10000:7.5"},
			want: commission.Meta{Name: "Gold", Tiers: []commission.MetaTier{
				{MinValue: 0, Percentage: 5},
				{MinValue: 10000, Percentage: 7.5},
			}},
		},
		{name: "missing name", meta: "", tiers: []string{"0:5"}, wantErr: true},
		{name: "no tiers", meta: "Gold", wantErr: true},
		{name: "no separator", meta: "Gold", tiers: []string{"05"}, wantErr: true},
		{name: "bad percentage", meta: "Gold", tiers: []string{"0:150"}, wantErr: true},
		{name: "negative min", meta: "Gold", tiers: []string{"-1:5"}, wantErr: true},
		{name: "NaN min", meta: "Gold", tiers: []string{"NaN:5"}, wantErr: true},
		{name: "infinite min", meta: "Gold", tiers: []string{"0:5", "Inf:6"}, wantErr: true},
		{name: "NaN percentage", meta: "Gold", tiers: []string{"0:NaN"}, wantErr: true},
		{name: "NaN after first tier", meta: "Gold", tiers: []string{"0:5", "nan:6"}, wantErr: true},
		{name: "not ascending", meta: "Gold", tiers: []string{"100:5", "100:6"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildMeta(tt.meta, tt.tiers)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("buildMeta() = %+v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("buildMeta(): %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("buildMeta() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestOverviewRows(t *testing.T) {
	t.Parallel()

	gold, orphan := "m1", "m9"
	consultants := []commission.Consultant{
		{Name: "Ana", Email: "ana@x.com", Active: true, MetaID: &gold},
		{Name: "Bruno", Email: "bruno@x.com", Active: false},
		{Name: "Caio", Email: "caio@x.com", Active: true, MetaID: &orphan},
	}
	metas := []commission.Meta{{ID: "m1", Name: "Gold"}}

	want := [][]string{
		{"Ana", "ana@x.com", "yes", "Gold"},
		{"Bruno", "bruno@x.com", "no", "-"},
		{"Caio", "caio@x.com", "yes", "m9"},
	}
	if diff := cmp.Diff(want, overviewRows(consultants, metas)); diff != "" {
		t.Errorf("overviewRows() mismatch (-want +got):\n%s", diff)
	}
}

func TestMetaRow(t *testing.T) {
	t.Parallel()

	got := metaRow(commission.Meta{ID: "m1", Name: "Gold", Tiers: []commission.MetaTier{{MinValue: 0, Percentage: 5}, {MinValue: 1000, Percentage: 7.5}}})
	want := []string{"m1", "Gold", "0.00→5.0%, 1,000.00→7.5%"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("metaRow() mismatch (-want +got):\n%s", diff)
	}
}
