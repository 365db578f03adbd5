package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/positions"
	"github.com/etnz/positions/insight"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
	"google.golang.org/genai"
)

// insightCmd holds the flags for the 'insight' subcommand.
type insightCmd struct {
	model string
}

func (*insightCmd) Name() string     { return "insight" }
func (*insightCmd) Synopsis() string { return "ask Gemini for a recommendation on a position" }
func (*insightCmd) Usage() string {
	return `pos insight [-model <name>] <symbol>

  Sends the position of the symbol to Gemini, grounded with Google Search, and
  displays its reading of the market data and news with a BUY, HOLD or SELL
  recommendation. Requires GEMINI_API_KEY.
`
}

func (c *insightCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.model, "model", insight.Model, "Gemini model name")
}

func (c *insightCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expecting exactly one symbol")
		return subcommands.ExitUsageError
	}
	symbol := strings.ToUpper(f.Arg(0))

	lots, err := loadLots(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading lots: %v\n", err)
		return subcommands.ExitFailure
	}
	held := positions.GroupBySymbol(lots)[symbol]
	row := positions.Row{Symbol: symbol}
	if rows := positions.Aggregate(held); len(rows) == 1 {
		row = rows[0]
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	analyst := insight.NewAnalyst()
	analyst.ModelName = c.model
	if err := analyst.Start(ctx, client); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	in, err := analyst.Analyze(ctx, row, held)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(insightMarkdown(in))
	return subcommands.ExitSuccess
}

func insightMarkdown(in insight.Insight) string {
	var b strings.Builder
	doc := md.NewMarkdown(&b)
	doc.H1(fmt.Sprintf("%s: %s", in.Symbol, in.Recommendation))
	doc.Table(md.TableSet{
		Header: []string{"Source", "Reading"},
		Rows: [][]string{
			{"Market data", string(in.TechData)},
			{"News", string(in.NewsData)},
			{"Analysis", string(in.AIAnalysis)},
		},
	})
	doc.PlainText(in.Reasoning)
	return doc.String()
}
