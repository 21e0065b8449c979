// Package quotes fetches currency rates and stock prices from the external
// quote providers.
package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"svodka/internal/core"
)

type (
	// RateFetcher resolves 1-unit conversion rates into RUB.
	RateFetcher interface {
		Rates(ctx context.Context, currencies []string) ([]core.CurrencyRate, error)
	}

	// StockFetcher resolves latest quote prices for tickers.
	StockFetcher interface {
		Prices(ctx context.Context, symbols []string) ([]core.StockPrice, error)
	}
)

// Client talks to both providers. Lookups run strictly sequentially in
// input order; the first failed lookup aborts the whole batch and discards
// any results already gathered, so callers never see partial lists.
type Client struct {
	http        *http.Client
	currencyURL string
	currencyKey string
	stockURL    string
	stockKey    string
}

var (
	_ RateFetcher  = (*Client)(nil)
	_ StockFetcher = (*Client)(nil)
)

func NewClient(httpClient *http.Client, currencyURL, currencyKey, stockURL, stockKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		http:        httpClient,
		currencyURL: currencyURL,
		currencyKey: currencyKey,
		stockURL:    stockURL,
		stockKey:    stockKey,
	}
}

type currencyResponse struct {
	Query struct {
		From string `json:"from"`
	} `json:"query"`
	Result *float64 `json:"result"`
}

// Rates fetches the RUB conversion rate for each currency, rounded to two
// decimals.
func (c *Client) Rates(ctx context.Context, currencies []string) ([]core.CurrencyRate, error) {
	if c.currencyURL == "" {
		return nil, errors.New("currency API URL is not configured")
	}

	rates := make([]core.CurrencyRate, 0, len(currencies))
	for _, cur := range currencies {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.currencyURL, nil)
		if err != nil {
			return nil, fmt.Errorf("currency request %s: %w", cur, err)
		}
		req.Header.Set("apikey", c.currencyKey)
		q := req.URL.Query()
		q.Set("amount", "1")
		q.Set("from", cur)
		q.Set("to", "RUB")
		req.URL.RawQuery = q.Encode()

		body, err := c.do(req)
		if err != nil {
			return nil, fmt.Errorf("currency %s: %w", cur, err)
		}

		var payload currencyResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("currency %s: decode response: %w", cur, err)
		}
		if payload.Result == nil {
			return nil, fmt.Errorf("currency %s: response has no result", cur)
		}

		rates = append(rates, core.CurrencyRate{
			Currency: payload.Query.From,
			Rate:     core.Round2(*payload.Result),
		})
	}
	return rates, nil
}

type stockResponse struct {
	GlobalQuote struct {
		Symbol string      `json:"01. symbol"`
		Price  json.Number `json:"05. price"`
	} `json:"Global Quote"`
}

// Prices fetches the latest quote for each ticker, rounded to two
// decimals. The upstream publishes the price as a JSON string.
func (c *Client) Prices(ctx context.Context, symbols []string) ([]core.StockPrice, error) {
	if c.stockURL == "" {
		return nil, errors.New("stock API URL is not configured")
	}

	prices := make([]core.StockPrice, 0, len(symbols))
	for _, sym := range symbols {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.stockURL, nil)
		if err != nil {
			return nil, fmt.Errorf("stock request %s: %w", sym, err)
		}
		q := req.URL.Query()
		q.Set("function", "GLOBAL_QUOTE")
		q.Set("symbol", sym)
		q.Set("apikey", c.stockKey)
		req.URL.RawQuery = q.Encode()

		body, err := c.do(req)
		if err != nil {
			return nil, fmt.Errorf("stock %s: %w", sym, err)
		}

		var payload stockResponse
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("stock %s: decode response: %w", sym, err)
		}
		price, err := payload.GlobalQuote.Price.Float64()
		if err != nil {
			return nil, fmt.Errorf("stock %s: bad price %q: %w", sym, payload.GlobalQuote.Price, err)
		}

		prices = append(prices, core.StockPrice{
			Stock: payload.GlobalQuote.Symbol,
			Price: core.Round2(price),
		})
	}
	return prices, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return body, nil
}
