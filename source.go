package positions

import (
	"context"
	"fmt"
	"log"

	"github.com/rs/zerolog"
)

// Source provides the lots to aggregate and the cash balance.
type Source interface {
	Lots(ctx context.Context) ([]Lot, error)
	Cash(ctx context.Context) (Money, error)
}

// FileSource reads already valued lots from a JSONL file.
type FileSource struct {
	Path string
	// Balance is the cash balance, files hold lots only.
	Balance Money
}

func (s FileSource) Lots(ctx context.Context) ([]Lot, error) { return LoadLots(s.Path) }

func (s FileSource) Cash(ctx context.Context) (Money, error) { return s.Balance, nil }

// HoldingsProvider is the portfolio service: holdings and cash, without market prices.
type HoldingsProvider interface {
	Holdings(ctx context.Context) ([]Holding, error)
	Cash(ctx context.Context) (Money, error)
}

// QuoteProvider returns the latest quote of a symbol.
type QuoteProvider interface {
	Quote(ctx context.Context, symbol string) (Quote, error)
}

// RemoteSource values the holdings of a portfolio service with live quotes.
type RemoteSource struct {
	Holdings HoldingsProvider
	Quotes   QuoteProvider
	// Log receives the quote failures, the standard logger is used when nil.
	Log *zerolog.Logger
}

func (s RemoteSource) warn(format string, args ...any) {
	if s.Log == nil {
		log.Printf(format, args...)
		return
	}
	s.Log.Warn().Msgf(format, args...)
}

// Lots fetches holdings, then one quote per distinct symbol.
//
// Holdings whose quote cannot be fetched are left out and logged, the other lots
// are still returned.
func (s RemoteSource) Lots(ctx context.Context) ([]Lot, error) {
	holdings, err := s.Holdings.Holdings(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch holdings: %w", err)
	}
	quotes := make(map[string]Quote)
	failed := make(map[string]bool)
	for _, h := range holdings {
		if _, done := quotes[h.Symbol]; done || failed[h.Symbol] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		q, err := s.Quotes.Quote(ctx, h.Symbol)
		if err != nil {
			s.warn("cannot fetch quote for %s (ignored): %v", h.Symbol, err)
			failed[h.Symbol] = true
			continue
		}
		quotes[h.Symbol] = q
	}
	lots, missing := NewLots(holdings, quotes)
	if len(missing) > 0 {
		s.warn("%d symbol(s) without quote: %v", len(missing), missing)
	}
	return lots, nil
}

func (s RemoteSource) Cash(ctx context.Context) (Money, error) {
	cash, err := s.Holdings.Cash(ctx)
	if err != nil {
		return Money{}, fmt.Errorf("cannot fetch cash balance: %w", err)
	}
	return cash, nil
}
