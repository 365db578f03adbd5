package positions

import "github.com/etnz/positions/date"

// Holding is one buy lot as recorded by the portfolio service, before valuation.
type Holding struct {
	ID       int64     `json:"id"`
	Symbol   string    `json:"ticker"`
	Quantity Quantity  `json:"quantity"`
	BuyPrice Money     `json:"buyPrice"`
	BuyDate  date.Date `json:"buyDate"`
}

// Quote is the latest market data for a symbol.
type Quote struct {
	Symbol        string
	Price         Money
	PreviousClose Money
}

// NewLot values a holding at quote q.
//
// Percentages are 0 when their base (previous close or buy price) is 0.
func NewLot(h Holding, q Quote) Lot {
	change := q.Price.Sub(q.PreviousClose)
	if q.PreviousClose.IsZero() {
		change = Money{}
	}
	gain := q.Price.Sub(h.BuyPrice)
	return Lot{
		Symbol:           h.Symbol,
		LastPrice:        q.Price,
		Change:           change,
		ChangePercent:    change.Ratio(q.PreviousClose),
		Quantity:         h.Quantity,
		PricePaid:        h.BuyPrice,
		DaysGain:         change.Mul(h.Quantity).Round2(),
		TotalGain:        gain.Mul(h.Quantity).Round2(),
		TotalGainPercent: gain.Ratio(h.BuyPrice),
		Value:            q.Price.Mul(h.Quantity).Round2(),
		Date:             h.BuyDate,
	}
}

// NewLots values every holding that has a quote, in order.
// It returns the symbols of the holdings that were skipped, without duplicates.
func NewLots(holdings []Holding, quotes map[string]Quote) (lots []Lot, missing []string) {
	lots = make([]Lot, 0, len(holdings))
	seen := make(map[string]bool)
	for _, h := range holdings {
		q, ok := quotes[h.Symbol]
		if !ok {
			if !seen[h.Symbol] {
				seen[h.Symbol] = true
				missing = append(missing, h.Symbol)
			}
			continue
		}
		lots = append(lots, NewLot(h, q))
	}
	return lots, missing
}
