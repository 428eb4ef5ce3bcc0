package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vadiminshakov/coinconv/internal/domain"
)

const (
	// DefaultCoinGeckoURL public CoinGecko API root.
	DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"
	// DefaultRequestTimeout applied when no timeout is configured.
	DefaultRequestTimeout = 10 * time.Second

	marketsOrder   = "market_cap_desc"
	marketsPerPage = 100
	marketsPage    = 1

	apiKeyHeader = "x-cg-demo-api-key"
	// bodies of failed responses are cut to keep log lines readable
	maxErrorBody = 512
)

// MarketCoin entry of the /coins/markets listing. Only the fields the converter reads are decoded.
type MarketCoin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// SimplePrices /simple/price payload: asset id -> currency -> price.
type SimplePrices map[string]map[string]json.Number

// CoinGeckoClient talks to the CoinGecko REST API.
type CoinGeckoClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures the CoinGeckoClient.
type Option func(*CoinGeckoClient)

// WithAPIKey sets the demo API key sent with every request.
func WithAPIKey(key string) Option {
	return func(c *CoinGeckoClient) {
		c.apiKey = key
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *CoinGeckoClient) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *CoinGeckoClient) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// NewCoinGeckoClient creates a client for the API rooted at baseURL.
func NewCoinGeckoClient(baseURL string, opts ...Option) *CoinGeckoClient {
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	c := &CoinGeckoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: DefaultRequestTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListMarkets returns the first page of top-100 coins by market cap priced in fiat.
func (c *CoinGeckoClient) ListMarkets(ctx context.Context, fiat domain.FiatCode) ([]MarketCoin, error) {
	params := url.Values{}
	params.Set("vs_currency", fiat.Lower())
	params.Set("order", marketsOrder)
	params.Set("per_page", strconv.Itoa(marketsPerPage))
	params.Set("page", strconv.Itoa(marketsPage))

	body, err := c.get(ctx, "/coins/markets", params)
	if err != nil {
		return nil, err
	}

	var coins []MarketCoin
	if err := json.Unmarshal(body, &coins); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal markets response")
	}

	return coins, nil
}

// SimplePrice returns the spot price table for one asset in one fiat currency.
func (c *CoinGeckoClient) SimplePrice(ctx context.Context, assetID string, fiat domain.FiatCode) (SimplePrices, error) {
	params := url.Values{}
	params.Set("ids", assetID)
	params.Set("vs_currencies", fiat.Lower())

	body, err := c.get(ctx, "/simple/price", params)
	if err != nil {
		return nil, err
	}

	var prices SimplePrices
	if err := json.Unmarshal(body, &prices); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal price response")
	}

	return prices, nil
}

func (c *CoinGeckoClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create HTTP request")
	}

	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "HTTP request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, fmt.Errorf("CoinGecko API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
