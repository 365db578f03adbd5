// Package eodhd fetches quotes and searches symbols with the EOD Historical Data API.
package eodhd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/positions"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the EODHD API host.
const DefaultBaseURL = "https://eodhd.com"

// ErrNoQuote is returned when EODHD has no price for a symbol.
var ErrNoQuote = errors.New("no quote")

// Client calls the EODHD API with a key.
type Client struct {
	BaseURL    string
	APIKey     string
	Exchange   string // exchange code appended to symbols, "US" by default.
	HTTPClient *http.Client
	log        zerolog.Logger
}

// NewClient returns a client for the US exchanges on DefaultBaseURL.
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		APIKey:     apiKey,
		Exchange:   "US",
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With().Str("client", "eodhd").Logger(),
	}
}

func (c *Client) url(path string, query url.Values) string {
	query.Set("api_token", c.APIKey)
	query.Set("fmt", "json")
	return strings.TrimSuffix(c.BaseURL, "/") + path + "?" + query.Encode()
}

// Quote returns the latest price and previous close of symbol.
func (c *Client) Quote(ctx context.Context, symbol string) (positions.Quote, error) {
	// https://eodhd.com/api/real-time/AAPL.US?api_token=demo&fmt=json
	// {"code":"AAPL.US","timestamp":1720641600,"gmtoffset":0,"open":190.1,"high":191.2,"low":189.9,
	//  "close":190.5,"volume":1234,"previousClose":189,"change":1.5,"change_p":0.79}
	// Fields are "NA" when unknown.
	addr := c.url("/api/real-time/"+url.PathEscape(symbol+"."+c.Exchange), url.Values{})

	var content map[string]any
	if err := positions.GetJSON(ctx, c.HTTPClient, addr, nil, &content); err != nil {
		var statusErr *positions.HTTPStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return positions.Quote{}, fmt.Errorf("%w for %s", ErrNoQuote, symbol)
		}
		return positions.Quote{}, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}

	price, ok := content["close"].(float64)
	if !ok || price <= 0 {
		return positions.Quote{}, fmt.Errorf("%w for %s", ErrNoQuote, symbol)
	}
	q := positions.Quote{Symbol: symbol, Price: positions.M(price)}
	if prev, ok := content["previousClose"].(float64); ok {
		q.PreviousClose = positions.M(prev)
	}
	c.log.Debug().Str("symbol", symbol).Stringer("price", q.Price).Msg("Quote")
	return q, nil
}

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code          string  `json:"Code"`
	Exchange      string  `json:"Exchange"`
	Name          string  `json:"Name"`
	Type          string  `json:"Type"`
	Country       string  `json:"Country"`
	Currency      string  `json:"Currency"`
	ISIN          string  `json:"ISIN"`
	PreviousClose float64 `json:"previousClose"`
}

// Search searches for securities matching term, by symbol, name or ISIN.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	addr := c.url("/api/search/"+url.PathEscape(term), url.Values{})

	results := make([]SearchResult, 0)
	if err := positions.GetJSON(ctx, c.HTTPClient, addr, nil, &results); err != nil {
		return nil, fmt.Errorf("cannot search %q: %w", term, err)
	}
	return results, nil
}
