package finnhub

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	drepo "GoldBrief/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		assert.Equal(t, "OANDA:XAU_USD", r.URL.Query().Get("symbol"))
		assert.Equal(t, "secret", r.Header.Get("X-Finnhub-Token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOandaSymbol(t *testing.T) {
	assert.Equal(t, "OANDA:XAU_USD", OandaSymbol("XAU/USD"))
	assert.Equal(t, "OANDA:EUR_USD", OandaSymbol("eur/usd"))
}

func TestPrice(t *testing.T) {
	srv := serve(t, `{"c":2350.5,"h":2360,"l":2340,"o":2345,"pc":2344,"t":1700000000}`)
	c := New("secret", srv.URL, time.Second)

	v, err := c.Price(context.Background(), "XAU/USD")
	require.NoError(t, err)
	assert.Equal(t, 2350.5, v)
}

func TestPriceKeepsProviderDecimal(t *testing.T) {
	srv := serve(t, `{"c":2345.67}`)
	c := New("secret", srv.URL, time.Second)

	v, err := c.Price(context.Background(), "XAU/USD")
	require.NoError(t, err)
	assert.Equal(t, 2345.67, v)
	assert.Equal(t, "2345.67", strconv.FormatFloat(v, 'f', -1, 64))
}

func TestPriceZeroIsMissing(t *testing.T) {
	srv := serve(t, `{"c":0,"h":0,"l":0,"o":0,"pc":0,"t":0}`)
	c := New("secret", srv.URL, time.Second)

	_, err := c.Price(context.Background(), "XAU/USD")
	require.Error(t, err)
}

func TestPriceAbsentFieldIsMissing(t *testing.T) {
	srv := serve(t, `{}`)
	c := New("secret", srv.URL, time.Second)

	_, err := c.Price(context.Background(), "XAU/USD")
	require.Error(t, err)
}

func TestPriceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"limit"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()
	c := New("secret", srv.URL, time.Second)

	_, err := c.Price(context.Background(), "XAU/USD")
	require.Error(t, err)
}

func TestPriceWithoutKey(t *testing.T) {
	c := New("", "", time.Second)

	_, err := c.Price(context.Background(), "XAU/USD")
	assert.True(t, errors.Is(err, drepo.ErrNotConfigured))
}
