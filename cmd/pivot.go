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
)

// pivotCmd holds the flags for the 'pivot' subcommand.
type pivotCmd struct {
	query     string
	expand    string
	all       bool
	skipLots  bool
	noCaption bool
}

func (*pivotCmd) Name() string     { return "pivot" }
func (*pivotCmd) Synopsis() string { return "display positions aggregated by symbol" }
func (*pivotCmd) Usage() string {
	return `pos pivot [-q <text>] [-x <SYM,SYM>] [-all]

  Displays one line per symbol with averaged prices and summed gains, the
  portfolio totals, and the lots of the expanded symbols.
`
}

func (c *pivotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "filter symbols containing this text, case insensitive")
	f.StringVar(&c.expand, "x", "", "comma separated symbols to expand into their lots")
	f.BoolVar(&c.all, "all", false, "expand every symbol")
	f.BoolVar(&c.skipLots, "skip-lots", false, "do not display the lots of expanded symbols")
	f.BoolVar(&c.noCaption, "no-caption", false, "do not display the title")
}

func (c *pivotCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	lots, err := loadLots(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading lots: %v\n", err)
		return subcommands.ExitFailure
	}

	expanded := positions.NewExpanded(splitSymbols(c.expand)...)
	if c.all {
		for _, r := range positions.Aggregate(positions.FilterLots(lots, c.query)) {
			expanded.Expand(r.Symbol)
		}
	}

	p := positions.NewPivot(lots, c.query, expanded)
	printMarkdown(renderer.RenderPivot(p, renderer.PivotRenderOptions{
		Currency:  displayCurrency(),
		SkipLots:  c.skipLots,
		NoCaption: c.noCaption,
	}))
	return subcommands.ExitSuccess
}

// splitSymbols parses a comma separated list of symbols.
func splitSymbols(list string) []string {
	var symbols []string
	for _, s := range strings.Split(list, ",") {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}
