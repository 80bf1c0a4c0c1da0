package finnhub

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	drepo "GoldBrief/internal/domain/repository"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

const Name = "Finnhub (OANDA)"

// Client is the fallback quote provider, backed by the Finnhub REST quote
// endpoint with OANDA forex symbols.
type Client struct {
	apiKey string
	api    *finnhub.DefaultApiService
}

// New creates a Finnhub quote provider. An empty baseURL keeps the SDK default.
func New(apiKey, baseURL string, timeout time.Duration) *Client {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	if baseURL != "" {
		cfg.Servers = finnhub.ServerConfigurations{{URL: strings.TrimRight(baseURL, "/")}}
	}

	return &Client{
		apiKey: apiKey,
		api:    finnhub.NewAPIClient(cfg).DefaultApi,
	}
}

func (c *Client) Name() string { return Name }

// Price returns the current price for symbol. A zero "c" field is how
// Finnhub answers for unknown symbols, so it counts as missing.
func (c *Client) Price(ctx context.Context, symbol string) (float64, error) {
	if c.apiKey == "" {
		return 0, drepo.ErrNotConfigured
	}

	sym := OandaSymbol(symbol)
	q, _, err := c.api.Quote(ctx).Symbol(sym).Execute()
	if err != nil {
		return 0, fmt.Errorf("finnhub quote %s: %w", sym, err)
	}

	v := widen(q.GetC())
	if v == 0 {
		return 0, fmt.Errorf("finnhub quote %s: missing current price", sym)
	}
	return v, nil
}

// widen returns the decimal the provider sent. The SDK decodes prices into
// float32, and a plain conversion would expose its rounding error.
func widen(f float32) float64 {
	v, err := strconv.ParseFloat(strconv.FormatFloat(float64(f), 'f', -1, 32), 64)
	if err != nil {
		return float64(f)
	}
	return v
}

// OandaSymbol maps "XAU/USD" to "OANDA:XAU_USD".
func OandaSymbol(symbol string) string {
	return "OANDA:" + strings.ReplaceAll(strings.ToUpper(symbol), "/", "_")
}
