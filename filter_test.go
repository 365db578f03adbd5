package positions

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		symbol, text string
		want         bool
	}{
		{"AAPL", "", true},
		{"AAPL", "aa", true},
		{"AAPL", "AaP", true},
		{"AAPL", "pl", true},
		{"AAPL", "AAPL", true},
		{"AAPL", "AAPLX", false},
		{"GOOG", "aa", false},
		{"", "", true},
		{"", "a", false},
	}
	for _, tt := range tests {
		if got := Match(tt.symbol, tt.text); got != tt.want {
			t.Errorf("Match(%q, %q) = %v, want %v", tt.symbol, tt.text, got, tt.want)
		}
	}
}

func TestFilterLots(t *testing.T) {
	lots := sampleLots()
	tests := []struct {
		text string
		want []Lot
	}{
		{"", lots},
		{"a", lots[:2]},
		{"OO", lots[2:]},
		{"msft", []Lot{}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := FilterLots(lots, tt.text)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FilterLots(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestFilterRows(t *testing.T) {
	rows := Aggregate(sampleLots())
	got := FilterRows(rows, "goo")
	if len(got) != 1 || got[0].Symbol != "GOOG" {
		t.Errorf("FilterRows(goo) = %v, want the GOOG row", got)
	}
}

func TestFilter_Generic(t *testing.T) {
	symbols := []string{"AAPL", "GOOG", "GOOGL", "MSFT"}
	got := Filter(symbols, "goog", func(s string) string { return s })
	if diff := cmp.Diff([]string{"GOOG", "GOOGL"}, got); diff != "" {
		t.Errorf("Filter() mismatch (-want +got):\n%s", diff)
	}
}
