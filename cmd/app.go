// Package cmd implements the CLI application to browse positions.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/positions"
	"github.com/etnz/positions/backend"
	"github.com/etnz/positions/eodhd"
	"github.com/etnz/positions/logger"
	"github.com/etnz/positions/yahoo"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&pivotCmd{}, "positions")
	c.Register(&allocationCmd{}, "positions")
	c.Register(&statsCmd{}, "positions")
	c.Register(&exportCmd{}, "positions")

	c.Register(&marketCmd{}, "trading")
	c.Register(&sellCmd{}, "trading")
	c.Register(&buyCmd{}, "trading")
	c.Register(&insightCmd{}, "trading")
	c.Register(&searchCmd{}, "trading")

	c.Register(&serveCmd{}, "service")
	c.Register(&topicCmd{}, "documentation")
}

// Names of the environment variables providing defaults for the global flags.
// They are also passed to extensions.
const (
	EnvLotsFile   = "POS_LOTS_FILE"
	EnvBackendURL = "POS_BACKEND_URL"
	EnvCurrency   = "POS_CURRENCY"
	EnvCash       = "POS_CASH"
	EnvVerbose    = "POS_VERBOSE"
	EnvQuotes     = "POS_QUOTES"
	EnvEODHDKey   = "EODHD_API_KEY"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var lotsFile = flag.String("lots", "", "Path to the lots file (JSONL format), defaults to $"+EnvLotsFile+" or lots.jsonl")
var backendURL = flag.String("backend", "", "URL of the portfolio service, lots are then valued with live quotes. Defaults to $"+EnvBackendURL)
var currency = flag.String("currency", "", "Display currency, defaults to $"+EnvCurrency+" or USD")
var quotesProvider = flag.String("quotes", "", "Quote provider: yahoo or eodhd (requires $"+EnvEODHDKey+"). Defaults to $"+EnvQuotes+" or yahoo")
var cashBalance = flag.String("cash", "", "Cash balance when reading lots from a file, defaults to $"+EnvCash+" or 0")

// Verbose enables debug logs.
var Verbose = flag.Bool("v", false, "verbose output")

// LoadEnv reads a .env file in the current directory, if any.
func LoadEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}
	return nil
}

// flagOrEnv returns the flag value, or the environment variable, or the fallback.
func flagOrEnv(value, env, fallback string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}

func lotsPath() string        { return flagOrEnv(*lotsFile, EnvLotsFile, "lots.jsonl") }
func backendAddr() string     { return flagOrEnv(*backendURL, EnvBackendURL, "") }
func displayCurrency() string { return strings.ToUpper(flagOrEnv(*currency, EnvCurrency, "USD")) }

func cash() (positions.Money, error) {
	str := flagOrEnv(*cashBalance, EnvCash, "0")
	d, err := decimal.NewFromString(str)
	if err != nil {
		return positions.Money{}, fmt.Errorf("invalid cash balance %q: %w", str, err)
	}
	return positions.M(d), nil
}

// newLogger returns the CLI logger, on stderr.
func newLogger() zerolog.Logger {
	level := "warn"
	if *Verbose {
		level = "debug"
	}
	return logger.New(logger.Config{Level: level, Pretty: true})
}

// newQuoteProvider returns the quote provider selected by the global flags.
func newQuoteProvider(log zerolog.Logger) (positions.QuoteProvider, error) {
	switch name := flagOrEnv(*quotesProvider, EnvQuotes, "yahoo"); name {
	case "yahoo":
		return yahoo.NewClient(log), nil
	case "eodhd":
		key := os.Getenv(EnvEODHDKey)
		if key == "" {
			return nil, fmt.Errorf("eodhd quotes require $%s", EnvEODHDKey)
		}
		return eodhd.NewClient(key, log), nil
	default:
		return nil, fmt.Errorf("unknown quote provider %q", name)
	}
}

// NewSource returns the source of lots selected by the global flags.
func NewSource() (positions.Source, error) { return newSourceWith(newLogger()) }

// newSourceWith returns the source of lots selected by the global flags, logging to log.
func newSourceWith(log zerolog.Logger) (positions.Source, error) {
	if addr := backendAddr(); addr != "" {
		quotes, err := newQuoteProvider(log)
		if err != nil {
			return nil, err
		}
		return positions.RemoteSource{
			Holdings: backend.NewClient(addr, log),
			Quotes:   quotes,
			Log:      &log,
		}, nil
	}
	balance, err := cash()
	if err != nil {
		return nil, err
	}
	return positions.FileSource{Path: lotsPath(), Balance: balance}, nil
}

// loadLots reads the lots from the selected source.
func loadLots(ctx context.Context) ([]positions.Lot, error) {
	src, err := NewSource()
	if err != nil {
		return nil, err
	}
	return src.Lots(ctx)
}

// loadPortfolio reads the lots and the cash balance from the selected source.
func loadPortfolio(ctx context.Context) ([]positions.Lot, positions.Money, error) {
	src, err := NewSource()
	if err != nil {
		return nil, positions.Money{}, err
	}
	lots, err := src.Lots(ctx)
	if err != nil {
		return nil, positions.Money{}, err
	}
	balance, err := src.Cash(ctx)
	if err != nil {
		return nil, positions.Money{}, err
	}
	return lots, balance, nil
}

// printMarkdown renders md for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(160))
	if err != nil {
		fmt.Println(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
