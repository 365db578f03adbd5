package positions

import "github.com/shopspring/decimal"

// Totals is the grand total line of the pivot.
type Totals struct {
	// Invested is Σ PricePaid × Quantity, the capital spent. It is shown in the "Price Paid" column.
	Invested  Money `json:"pricePaid"`
	DaysGain  Money `json:"daysGain"`
	TotalGain Money `json:"totalGain"`
	// TotalGainPercent is weighted by invested capital: 100 × TotalGain / Invested.
	TotalGainPercent Percent `json:"totalGainPercent"`
	Value            Money   `json:"value"`
}

// ComputeTotals sums lots into a Totals line.
//
// Rounding to cents happens once, after summation. The gain percentage is computed
// from the unrounded sums and is 0 when nothing was invested.
func ComputeTotals(lots []Lot) Totals {
	var invested, daysGain, totalGain, value decimal.Decimal
	for _, l := range lots {
		invested = invested.Add(l.PricePaid.value.Mul(l.Quantity.value))
		daysGain = daysGain.Add(l.DaysGain.value)
		totalGain = totalGain.Add(l.TotalGain.value)
		value = value.Add(l.Value.value)
	}
	return Totals{
		Invested:         Money{round2(invested)},
		DaysGain:         Money{round2(daysGain)},
		TotalGain:        Money{round2(totalGain)},
		TotalGainPercent: Money{totalGain}.Ratio(Money{invested}),
		Value:            Money{round2(value)},
	}
}
