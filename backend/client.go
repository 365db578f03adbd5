// Package backend reads holdings and cash from the portfolio service.
//
// The service owns the trade history: it records buys and sells and keeps the
// cash account. This client only reads from it.
package backend

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/etnz/positions"
	"github.com/rs/zerolog"
)

// Client is a read-only client of the portfolio service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	log        zerolog.Logger
}

// NewClient returns a client of the service at baseURL, e.g. "http://localhost:8080".
func NewClient(baseURL string, log zerolog.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With().Str("client", "backend").Logger(),
	}
}

// Holdings returns every buy lot held, in the service order.
func (c *Client) Holdings(ctx context.Context) ([]positions.Holding, error) {
	var holdings []positions.Holding
	if err := positions.GetJSON(ctx, c.HTTPClient, c.BaseURL+"/api/portfolio", nil, &holdings); err != nil {
		return nil, fmt.Errorf("cannot list holdings: %w", err)
	}
	for i, h := range holdings {
		holdings[i].Symbol = strings.ToUpper(strings.TrimSpace(h.Symbol))
	}
	c.log.Debug().Int("holdings", len(holdings)).Msg("Holdings fetched")
	return holdings, nil
}

// Cash returns the cash account balance.
func (c *Client) Cash(ctx context.Context) (positions.Money, error) {
	var resp struct {
		Balance positions.Money `json:"balance"`
	}
	if err := positions.GetJSON(ctx, c.HTTPClient, c.BaseURL+"/api/cash", nil, &resp); err != nil {
		return positions.Money{}, fmt.Errorf("cannot read cash balance: %w", err)
	}
	return resp.Balance, nil
}
