package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/positions/eodhd"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search symbols by name, ticker or ISIN" }
func (*searchCmd) Usage() string {
	return `pos search <term>

  Searches EOD Historical Data for securities matching the term.
  Requires EODHD_API_KEY.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: missing search term")
		return subcommands.ExitUsageError
	}
	key := os.Getenv(EnvEODHDKey)
	if key == "" {
		fmt.Fprintf(os.Stderr, "Error: search requires $%s\n", EnvEODHDKey)
		return subcommands.ExitUsageError
	}

	results, err := eodhd.NewClient(key, newLogger()).Search(ctx, strings.Join(f.Args(), " "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(searchMarkdown(results))
	return subcommands.ExitSuccess
}

func searchMarkdown(results []eodhd.SearchResult) string {
	var b strings.Builder
	doc := md.NewMarkdown(&b)
	if len(results) == 0 {
		doc.PlainText("No match.")
		return doc.String()
	}
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Code, r.Exchange, r.Name, r.Type, r.Currency, r.ISIN})
	}
	doc.Table(md.TableSet{
		Header: []string{"Symbol", "Exchange", "Name", "Type", "Currency", "ISIN"},
		Rows:   rows,
	})
	return doc.String()
}
