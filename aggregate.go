package positions

import "github.com/shopspring/decimal"

// Row is the aggregated view of all the lots of one symbol.
//
// Price and percentage columns are plain arithmetic means over the lots,
// Quantity, TotalGain and Value are sums.
type Row struct {
	Symbol           string   `json:"symbol" csv:"symbol"`
	LastPrice        Money    `json:"lastPrice" csv:"lastPrice"`
	Change           Money    `json:"change" csv:"change"`
	ChangePercent    Percent  `json:"changePercent" csv:"changePercent"`
	Quantity         Quantity `json:"quantity" csv:"quantity"`
	PricePaid        Money    `json:"pricePaid" csv:"pricePaid"`
	DaysGain         Money    `json:"daysGain" csv:"daysGain"`
	TotalGain        Money    `json:"totalGain" csv:"totalGain"`
	TotalGainPercent Percent  `json:"totalGainPercent" csv:"totalGainPercent"`
	Value            Money    `json:"value" csv:"value"`
	// Lots is the number of lots folded into this row.
	Lots int `json:"lots" csv:"lots"`
}

// accumulator sums the lots of one symbol.
type accumulator struct {
	count            int
	lastPrice        decimal.Decimal
	change           decimal.Decimal
	changePercent    decimal.Decimal
	quantity         decimal.Decimal
	pricePaid        decimal.Decimal
	daysGain         decimal.Decimal
	totalGain        decimal.Decimal
	totalGainPercent decimal.Decimal
	value            decimal.Decimal
}

func (a *accumulator) add(l Lot) {
	a.count++
	a.lastPrice = a.lastPrice.Add(l.LastPrice.value)
	a.change = a.change.Add(l.Change.value)
	a.changePercent = a.changePercent.Add(l.ChangePercent.value)
	a.quantity = a.quantity.Add(l.Quantity.value)
	a.pricePaid = a.pricePaid.Add(l.PricePaid.value)
	a.daysGain = a.daysGain.Add(l.DaysGain.value)
	a.totalGain = a.totalGain.Add(l.TotalGain.value)
	a.totalGainPercent = a.totalGainPercent.Add(l.TotalGainPercent.value)
	a.value = a.value.Add(l.Value.value)
}

func (a *accumulator) row(symbol string) Row {
	return Row{
		Symbol:           symbol,
		LastPrice:        Money{mean(a.lastPrice, a.count)},
		Change:           Money{mean(a.change, a.count)},
		ChangePercent:    Percent{mean(a.changePercent, a.count)},
		Quantity:         Quantity{a.quantity},
		PricePaid:        Money{mean(a.pricePaid, a.count)},
		DaysGain:         Money{mean(a.daysGain, a.count)},
		TotalGain:        Money{round2(a.totalGain)},
		TotalGainPercent: Percent{mean(a.totalGainPercent, a.count)},
		Value:            Money{round2(a.value)},
		Lots:             a.count,
	}
}

// Aggregate groups lots by Symbol (exact match) and returns one Row per symbol,
// in the order symbols first appear in lots.
//
// lots is not modified. An empty input returns an empty, non nil, slice.
func Aggregate(lots []Lot) []Row {
	order := make([]string, 0)
	groups := make(map[string]*accumulator)
	for _, l := range lots {
		acc, ok := groups[l.Symbol]
		if !ok {
			acc = new(accumulator)
			groups[l.Symbol] = acc
			order = append(order, l.Symbol)
		}
		acc.add(l)
	}

	rows := make([]Row, 0, len(order))
	for _, symbol := range order {
		rows = append(rows, groups[symbol].row(symbol))
	}
	return rows
}

// GroupBySymbol returns the lots of each symbol, in input order.
// It is the lookup used to expand an aggregated Row into its lots.
func GroupBySymbol(lots []Lot) map[string][]Lot {
	bySymbol := make(map[string][]Lot)
	for _, l := range lots {
		bySymbol[l.Symbol] = append(bySymbol[l.Symbol], l)
	}
	return bySymbol
}
