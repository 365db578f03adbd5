package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/positions"
	"github.com/etnz/positions/renderer"
	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	format   string
	lotsOnly bool
	query    string
	output   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export positions as CSV or JSONL" }
func (*exportCmd) Usage() string {
	return `pos export [-format csv|jsonl] [-lots-only] [-q <text>] [-o <file>]

  Writes the aggregated rows as CSV, or the lots with -lots-only.
  The jsonl format always writes lots, in the format read by -lots.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "output format: csv or jsonl")
	f.BoolVar(&c.lotsOnly, "lots-only", false, "export lots instead of aggregated rows")
	f.StringVar(&c.query, "q", "", "filter symbols containing this text, case insensitive")
	f.StringVar(&c.output, "o", "", "output file, defaults to stdout")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.format != "csv" && c.format != "jsonl" {
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	lots, err := loadLots(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading lots: %v\n", err)
		return subcommands.ExitFailure
	}
	lots = positions.FilterLots(lots, c.query)

	var w io.Writer = os.Stdout
	if c.output != "" {
		out, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		w = out
	}

	if err := c.write(w, lots); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *exportCmd) write(w io.Writer, lots []positions.Lot) error {
	switch {
	case c.format == "jsonl":
		return positions.EncodeLots(w, lots)
	case c.lotsOnly:
		return renderer.WriteLotsCSV(w, lots)
	default:
		return renderer.WriteRowsCSV(w, positions.Aggregate(lots))
	}
}
