package positions

import (
	"fmt"
	"strings"

	"github.com/etnz/positions/date"
)

// Lot is one purchase of one ticker, valued at the current market price.
//
// Several lots may share the same Symbol: they are never merged, aggregation
// happens at query time only (see Aggregate).
type Lot struct {
	Symbol           string    `json:"symbol" csv:"symbol"`
	LastPrice        Money     `json:"lastPrice" csv:"lastPrice"`
	Change           Money     `json:"change" csv:"change"`
	ChangePercent    Percent   `json:"changePercent" csv:"changePercent"`
	Quantity         Quantity  `json:"quantity" csv:"quantity"`
	PricePaid        Money     `json:"pricePaid" csv:"pricePaid"`
	DaysGain         Money     `json:"daysGain" csv:"daysGain"`
	TotalGain        Money     `json:"totalGain" csv:"totalGain"`
	TotalGainPercent Percent   `json:"totalGainPercent" csv:"totalGainPercent"`
	Value            Money     `json:"value" csv:"value"`
	Date             date.Date `json:"date" csv:"date"`
}

// Invested returns the capital spent on this lot: PricePaid × Quantity.
func (l Lot) Invested() Money { return l.PricePaid.Mul(l.Quantity) }

// Validate checks the invariants a lot must hold before being aggregated.
func (l Lot) Validate() error {
	if l.Symbol == "" {
		return fmt.Errorf("lot has no symbol")
	}
	if l.Symbol != strings.ToUpper(l.Symbol) {
		return fmt.Errorf("lot symbol %q must be uppercase", l.Symbol)
	}
	if !l.Quantity.IsPositive() {
		return fmt.Errorf("lot %s: quantity must be positive, got %s", l.Symbol, l.Quantity)
	}
	if !l.Quantity.IsWhole() {
		return fmt.Errorf("lot %s: quantity must be a whole number of shares, got %s", l.Symbol, l.Quantity)
	}
	if l.LastPrice.IsNegative() {
		return fmt.Errorf("lot %s: negative last price %s", l.Symbol, l.LastPrice)
	}
	if l.PricePaid.IsNegative() {
		return fmt.Errorf("lot %s: negative price paid %s", l.Symbol, l.PricePaid)
	}
	if l.Value.IsNegative() {
		return fmt.Errorf("lot %s: negative value %s", l.Symbol, l.Value)
	}
	return nil
}
