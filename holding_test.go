package positions

import (
	"testing"
	"time"

	"github.com/etnz/positions/date"
	"github.com/google/go-cmp/cmp"
)

func TestNewLot(t *testing.T) {
	bought := date.New(2024, time.January, 15)
	tests := []struct {
		name    string
		holding Holding
		quote   Quote
		want    Lot
	}{
		{
			name:    "gain",
			holding: Holding{Symbol: "AAPL", Quantity: Q(10), BuyPrice: USD(185), BuyDate: bought},
			quote:   Quote{Symbol: "AAPL", Price: USD(190.5), PreviousClose: USD(189)},
			want: Lot{
				Symbol:           "AAPL",
				LastPrice:        USD(190.5),
				Change:           USD(1.5),
				ChangePercent:    P(0.79),
				Quantity:         Q(10),
				PricePaid:        USD(185),
				DaysGain:         USD(15),
				TotalGain:        USD(55),
				TotalGainPercent: P(2.97),
				Value:            USD(1905),
				Date:             bought,
			},
		},
		{
			name:    "loss",
			holding: Holding{Symbol: "GOOG", Quantity: Q(4), BuyPrice: USD(150), BuyDate: bought},
			quote:   Quote{Symbol: "GOOG", Price: USD(120), PreviousClose: USD(125)},
			want: Lot{
				Symbol:           "GOOG",
				LastPrice:        USD(120),
				Change:           USD(-5),
				ChangePercent:    P(-4),
				Quantity:         Q(4),
				PricePaid:        USD(150),
				DaysGain:         USD(-20),
				TotalGain:        USD(-120),
				TotalGainPercent: P(-20),
				Value:            USD(480),
				Date:             bought,
			},
		},
		{
			name:    "no previous close nor cost",
			holding: Holding{Symbol: "GIFT", Quantity: Q(2), BuyDate: bought},
			quote:   Quote{Symbol: "GIFT", Price: USD(10)},
			want: Lot{
				Symbol:    "GIFT",
				LastPrice: USD(10),
				Quantity:  Q(2),
				TotalGain: USD(20),
				Value:     USD(20),
				Date:      bought,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLot(tt.holding, tt.quote)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NewLot() mismatch (-want +got):\n%s", diff)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestNewLots(t *testing.T) {
	holdings := []Holding{
		{Symbol: "AAPL", Quantity: Q(10), BuyPrice: USD(185)},
		{Symbol: "XXX", Quantity: Q(1), BuyPrice: USD(1)},
		{Symbol: "AAPL", Quantity: Q(20), BuyPrice: USD(180)},
		{Symbol: "XXX", Quantity: Q(2), BuyPrice: USD(1)},
	}
	quotes := map[string]Quote{
		"AAPL": {Symbol: "AAPL", Price: USD(191), PreviousClose: USD(189)},
	}
	lots, missing := NewLots(holdings, quotes)
	if len(lots) != 2 {
		t.Fatalf("got %d lots, want 2", len(lots))
	}
	if want := USD(220); !lots[1].TotalGain.Equal(want) {
		t.Errorf("second lot TotalGain = %v, want %v", lots[1].TotalGain, want)
	}
	if diff := cmp.Diff([]string{"XXX"}, missing); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}
}

func TestLot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		lot     Lot
		wantErr bool
	}{
		{"valid", sampleLots()[0], false},
		{"no symbol", Lot{Quantity: Q(1)}, true},
		{"lowercase", Lot{Symbol: "aapl", Quantity: Q(1)}, true},
		{"zero quantity", Lot{Symbol: "AAPL"}, true},
		{"fractional quantity", Lot{Symbol: "AAPL", Quantity: Q(1.5)}, true},
		{"negative price", Lot{Symbol: "AAPL", Quantity: Q(1), LastPrice: USD(-1)}, true},
		{"negative cost", Lot{Symbol: "AAPL", Quantity: Q(1), PricePaid: USD(-1)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.lot.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
