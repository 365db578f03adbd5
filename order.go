package positions

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSymbol      = errors.New("invalid symbol")
	ErrInvalidQuantity    = errors.New("quantity must be a positive whole number of shares")
	ErrUnknownSymbol      = errors.New("symbol not held")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrNoPrice            = errors.New("no market price")
)

// Estimate is the expected amount of an order at the last known price.
type Estimate struct {
	Symbol    string   `json:"symbol"`
	Quantity  Quantity `json:"quantity"`
	LastPrice Money    `json:"lastPrice"`
	Total     Money    `json:"total"`
	// Held is the number of shares held before the order, for sell orders.
	Held Quantity `json:"held"`
}

func checkQuantity(q Quantity) error {
	if !q.IsPositive() || !q.IsWhole() {
		return fmt.Errorf("%w: got %s", ErrInvalidQuantity, q)
	}
	return nil
}

// SellTicket is a sell order being prepared.
type SellTicket struct {
	Symbol   string   `json:"symbol"`
	Quantity Quantity `json:"quantity"`
}

// Check validates the ticket against the aggregated positions and estimates its proceeds.
func (t SellTicket) Check(rows []Row) (Estimate, error) {
	if t.Symbol == "" {
		return Estimate{}, ErrInvalidSymbol
	}
	if err := checkQuantity(t.Quantity); err != nil {
		return Estimate{}, err
	}
	i := -1
	for j, r := range rows {
		if r.Symbol == t.Symbol {
			i = j
			break
		}
	}
	if i < 0 {
		return Estimate{}, fmt.Errorf("%w: %s", ErrUnknownSymbol, t.Symbol)
	}
	held := rows[i]
	if t.Quantity.GreaterThan(held.Quantity) {
		return Estimate{}, fmt.Errorf("%w: selling %s %s, holding %s", ErrInsufficientShares, t.Quantity, t.Symbol, held.Quantity)
	}
	return Estimate{
		Symbol:    t.Symbol,
		Quantity:  t.Quantity,
		LastPrice: held.LastPrice,
		Total:     held.LastPrice.Mul(t.Quantity).Round2(),
		Held:      held.Quantity,
	}, nil
}

// BuyTicket is a buy order being prepared.
type BuyTicket struct {
	Symbol   string   `json:"symbol"`
	Quantity Quantity `json:"quantity"`
}

// Check validates the ticket against quote q and estimates its cost.
func (t BuyTicket) Check(q Quote) (Estimate, error) {
	if t.Symbol == "" {
		return Estimate{}, ErrInvalidSymbol
	}
	if err := checkQuantity(t.Quantity); err != nil {
		return Estimate{}, err
	}
	if q.Symbol != "" && q.Symbol != t.Symbol {
		return Estimate{}, fmt.Errorf("%w: quote is for %s, not %s", ErrInvalidSymbol, q.Symbol, t.Symbol)
	}
	if !q.Price.IsPositive() {
		return Estimate{}, fmt.Errorf("%w for %s", ErrNoPrice, t.Symbol)
	}
	return Estimate{
		Symbol:    t.Symbol,
		Quantity:  t.Quantity,
		LastPrice: q.Price,
		Total:     q.Price.Mul(t.Quantity).Round2(),
	}, nil
}
