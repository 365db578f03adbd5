package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/positions"
	"github.com/etnz/positions/renderer"
	"github.com/google/subcommands"
)

type statsCmd struct{}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "display total assets, investments, day's gain and cash" }
func (*statsCmd) Usage() string {
	return `pos stats

  Displays the headline figures of the portfolio and the market status.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lots, balance, err := loadPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	stats := positions.ComputeStats(lots, balance)
	printMarkdown(renderer.StatsMarkdown(stats, positions.MarketStatusAt(time.Now()), displayCurrency()))
	return subcommands.ExitSuccess
}
