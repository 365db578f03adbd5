package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/etnz/positions"
	"github.com/google/subcommands"
)

type marketCmd struct{}

func (*marketCmd) Name() string     { return "market" }
func (*marketCmd) Synopsis() string { return "tell whether the market is open" }
func (*marketCmd) Usage() string {
	return `pos market

  Prints "Market Open" during the regular session, 9:30 to 16:00 New York time
  on weekdays, and "Market Closed" otherwise. Holidays are not known.
`
}

func (c *marketCmd) SetFlags(f *flag.FlagSet) {}

func (c *marketCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println(positions.MarketStatusAt(time.Now()))
	return subcommands.ExitSuccess
}
