package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/positions"
	"github.com/etnz/positions/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	symbol   string
	quantity string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "check a sell order and estimate its proceeds" }
func (*sellCmd) Usage() string {
	return `pos sell -s <symbol> -n <quantity>

  Checks that the shares are held and estimates the proceeds at the last price.
  No order is sent.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "symbol to sell")
	f.StringVar(&c.quantity, "n", "", "number of shares")
}

func (c *sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q, err := parseQuantity(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	lots, err := loadLots(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading lots: %v\n", err)
		return subcommands.ExitFailure
	}

	ticket := positions.SellTicket{Symbol: strings.ToUpper(strings.TrimSpace(c.symbol)), Quantity: q}
	estimate, err := ticket.Check(positions.Aggregate(lots))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid sell order: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.EstimateMarkdown("Sell", estimate, displayCurrency()))
	return subcommands.ExitSuccess
}

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	symbol   string
	quantity string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "check a buy order and estimate its cost" }
func (*buyCmd) Usage() string {
	return `pos buy -s <symbol> -n <quantity>

  Fetches the latest quote of the symbol and estimates the cost of the order.
  No order is sent.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "symbol to buy")
	f.StringVar(&c.quantity, "n", "", "number of shares")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q, err := parseQuantity(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	ticket := positions.BuyTicket{Symbol: strings.ToUpper(strings.TrimSpace(c.symbol)), Quantity: q}
	if ticket.Symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s is required")
		return subcommands.ExitUsageError
	}

	quotes, err := newQuoteProvider(newLogger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	quote, err := quotes.Quote(ctx, ticket.Symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching quote: %v\n", err)
		return subcommands.ExitFailure
	}
	estimate, err := ticket.Check(quote)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid buy order: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.EstimateMarkdown("Buy", estimate, displayCurrency()))
	return subcommands.ExitSuccess
}

func parseQuantity(str string) (positions.Quantity, error) {
	if str == "" {
		return positions.Quantity{}, fmt.Errorf("-n is required")
	}
	d, err := decimal.NewFromString(str)
	if err != nil {
		return positions.Quantity{}, fmt.Errorf("invalid quantity %q: %w", str, err)
	}
	return positions.Q(d), nil
}
