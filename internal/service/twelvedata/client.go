package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	drepo "GoldBrief/internal/domain/repository"
	xhttp "GoldBrief/pkg/http"
)

const Name = "TwelveData"

// Client is the primary quote provider, backed by the TwelveData /price endpoint.
type Client struct {
	apiKey  string
	baseURL string
	http    *xhttp.Client
}

// New creates a TwelveData quote provider.
func New(apiKey, baseURL string, timeout time.Duration, opts ...xhttp.ClientOption) *Client {
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    xhttp.NewClient(opts...),
	}
}

func (c *Client) Name() string { return Name }

// priceResponse covers both the success body ({"price":"2345.1"}) and the
// error body ({"code":401,"message":"...","status":"error"}), which is
// served with HTTP 200.
type priceResponse struct {
	Price   json.Number `json:"price"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
}

// Price returns the latest price for symbol, e.g. "XAU/USD".
func (c *Client) Price(ctx context.Context, symbol string) (float64, error) {
	if c.apiKey == "" {
		return 0, drepo.ErrNotConfigured
	}

	var res priceResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/price",
		QueryParams: map[string][]string{
			"symbol": {symbol},
			"apikey": {c.apiKey},
		},
	}, &res)
	if err != nil {
		return 0, fmt.Errorf("twelvedata price %s: %w", symbol, err)
	}

	if res.Price == "" {
		if res.Status == "error" {
			return 0, fmt.Errorf("twelvedata price %s: %s", symbol, res.Message)
		}
		return 0, fmt.Errorf("twelvedata price %s: missing price field", symbol)
	}

	v, err := res.Price.Float64()
	if err != nil {
		return 0, fmt.Errorf("twelvedata price %s: %w", symbol, err)
	}
	return v, nil
}
