// Package yahoo fetches the latest quotes from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/positions"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

const (
	pricePath         = "$.chart.result[0].meta.regularMarketPrice"
	previousClosePath = "$.chart.result[0].meta.chartPreviousClose"
	errorPath         = "$.chart.error.description"
)

// ErrNoQuote is returned when Yahoo has no price for a symbol.
var ErrNoQuote = errors.New("no quote")

// Client reads quotes from the chart endpoint.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// Retries is the number of attempts for temporary failures.
	Retries int
	log     zerolog.Logger
}

// NewClient returns a client on DefaultBaseURL.
func NewClient(log zerolog.Logger) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Retries:    3,
		log:        log.With().Str("client", "yahoo").Logger(),
	}
}

// Quote returns the latest price and previous close of symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (positions.Quote, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", strings.TrimSuffix(c.BaseURL, "/"), url.PathEscape(symbol))
	header := http.Header{"User-Agent": []string{"Mozilla/5.0"}}

	var jobj any
	var err error
	attempts := max(c.Retries, 1)
	for attempt := 0; attempt < attempts; attempt++ {
		err = positions.GetJSON(ctx, c.HTTPClient, addr, header, &jobj)
		if err == nil || !temporary(err) || attempt == attempts-1 {
			break
		}
		wait := time.Duration(1<<uint(attempt)) * 500 * time.Millisecond
		c.log.Warn().Err(err).Str("symbol", symbol).Int("attempt", attempt+1).Dur("wait", wait).Msg("Retrying")
		select {
		case <-ctx.Done():
			return positions.Quote{}, ctx.Err()
		case <-time.After(wait):
		}
	}
	if err != nil {
		var statusErr *positions.HTTPStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return positions.Quote{}, fmt.Errorf("%w for %s", ErrNoQuote, symbol)
		}
		return positions.Quote{}, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}

	if msg, ok := readString(errorPath, jobj); ok && msg != "" {
		return positions.Quote{}, fmt.Errorf("%w for %s: %s", ErrNoQuote, symbol, msg)
	}
	price, err := readFloat(pricePath, jobj)
	if err != nil {
		return positions.Quote{}, fmt.Errorf("%w for %s: %v", ErrNoQuote, symbol, err)
	}
	q := positions.Quote{Symbol: symbol, Price: positions.M(price)}
	// a missing previous close leaves the day's change at zero
	if prev, err := readFloat(previousClosePath, jobj); err == nil {
		q.PreviousClose = positions.M(prev)
	}
	c.log.Debug().Str("symbol", symbol).Stringer("price", q.Price).Msg("Quote")
	return q, nil
}

func temporary(err error) bool {
	var statusErr *positions.HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	var netErr net.Error
	return errors.As(err, &netErr) && !errors.Is(err, context.Canceled)
}

// readFloat reads a number at path.
func readFloat(path string, jobj any) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("parsing %q: %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("parsing %q: not a number %v", path, jval)
	}
	return val, nil
}

func readString(path string, jobj any) (string, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", false
	}
	s, ok := jval.(string)
	return s, ok
}
