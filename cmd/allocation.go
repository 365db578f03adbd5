package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/positions"
	"github.com/etnz/positions/renderer"
	"github.com/google/subcommands"
)

type allocationCmd struct{}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display the equities and asset class allocation" }
func (*allocationCmd) Usage() string {
	return `pos allocation

  Displays the share of each symbol in the equities, largest first, and the
  split between cash and equities.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {}

func (c *allocationCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lots, balance, err := loadPortfolio(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	var palette positions.Palette
	equities := positions.EquityAllocation(positions.Aggregate(lots), &palette)
	assets := positions.AssetAllocation(balance, positions.ComputeTotals(lots).Value)

	printMarkdown(renderer.AllocationMarkdown(equities, assets, displayCurrency()))
	return subcommands.ExitSuccess
}
