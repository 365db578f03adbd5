package positions

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name string
		lots []Lot
		want Totals
	}{
		{
			name: "sample",
			lots: sampleLots(),
			want: Totals{
				Invested:         USD(6075),
				DaysGain:         USD(50),
				TotalGain:        USD(155),
				TotalGainPercent: P(2.55),
				Value:            USD(6375),
			},
		},
		{
			name: "empty",
			lots: nil,
			want: Totals{},
		},
		{
			name: "nothing invested",
			lots: []Lot{{Symbol: "FREE", Quantity: Q(10), TotalGain: USD(12), Value: USD(12)}},
			want: Totals{TotalGain: USD(12), Value: USD(12)},
		},
		{
			name: "rounded after summation",
			lots: []Lot{
				{Symbol: "A", Quantity: Q(1), PricePaid: USD(1), DaysGain: USD(0.004)},
				{Symbol: "B", Quantity: Q(1), PricePaid: USD(1), DaysGain: USD(0.004)},
			},
			// per lot rounding would give 0.00
			want: Totals{Invested: USD(2), DaysGain: USD(0.01)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.lots)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ComputeTotals() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeTotals_WeightedPercent(t *testing.T) {
	// the naive mean of lot percentages would be (10+100)/2 = 55
	lots := []Lot{
		{Symbol: "BIG", Quantity: Q(100), PricePaid: USD(10), TotalGain: USD(100), TotalGainPercent: P(10)},
		{Symbol: "SMALL", Quantity: Q(1), PricePaid: USD(10), TotalGain: USD(10), TotalGainPercent: P(100)},
	}
	got := ComputeTotals(lots).TotalGainPercent
	// 100 × 110 / 1010
	if want := P(10.89); !got.Equal(want) {
		t.Errorf("TotalGainPercent = %v, want %v", got, want)
	}
}

func TestComputeTotals_FilterConsistency(t *testing.T) {
	lots := sampleLots()
	for _, text := range []string{"", "a", "g", "zz"} {
		filtered := FilterLots(lots, text)
		totals := ComputeTotals(filtered)

		var value Money
		for _, r := range FilterRows(Aggregate(lots), text) {
			value = value.Add(r.Value)
		}
		if !totals.Value.Equal(value) {
			t.Errorf("filter %q: totals value %v, rows value %v", text, totals.Value, value)
		}
	}
}
