package api

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	models "GoldBrief/internal/domain/models"
	"GoldBrief/internal/usecase"
	xlogger "GoldBrief/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubData struct {
	snap models.Snapshot
}

func (s stubData) Snapshot(context.Context) models.Snapshot { return s.snap }
func (s stubData) News(context.Context) []models.NewsItem  { return s.snap.News }

type stubDigest struct {
	dryRun *bool
}

func (s stubDigest) Run(_ context.Context, dryRun bool) (models.Digest, []usecase.Delivery) {
	*s.dryRun = dryRun
	d := models.Digest{Text: "*digest*"}
	if dryRun {
		return d, nil
	}
	return d, []usecase.Delivery{{Sink: "telegram", Sent: true}}
}

func testSnapshot() models.Snapshot {
	news := make([]models.NewsItem, 7)
	for i := range news {
		news[i] = models.NewsItem{Title: "headline", Source: "Reuters", URL: "https://example.com"}
	}
	return models.Snapshot{
		GeneratedAt: time.Date(2025, 1, 14, 7, 30, 0, 0, time.UTC),
		Gold:        models.Quote{Symbol: "XAU/USD", Value: 2345.5, Provenance: "TwelveData"},
		Index:       math.NaN(),
		News:        news,
		Outlook: models.Outlook{
			Yesterday: []string{"US CPI: actual 3.1% vs 3.0% (prev 2.9%)"},
			Current:   []string{},
			Future:    []string{"DXY ~ NaN, XAUUSD ~ 2345.50"},
			Possible:  []string{},
		},
	}
}

func newTestServer(t *testing.T) (*echo.Echo, *bool) {
	t.Helper()
	var dryRun bool
	e := echo.New()
	NewDashboardEchoHandler(xlogger.Nop(), stubData{snap: testSnapshot()}, stubDigest{dryRun: &dryRun}).RegisterRoutes(e)
	return e, &dryRun
}

func do(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func TestSnapshotEndpoint(t *testing.T) {
	e, _ := newTestServer(t)
	rec := do(e, http.MethodGet, "/api/snapshot")
	require.Equal(t, http.StatusOK, rec.Code)

	var v map[string]interface{}
	decode(t, rec, &v)
	assert.Nil(t, v["dxy"])
	assert.Equal(t, "TwelveData", v["gold"].(map[string]interface{})["provenance"])
	assert.Len(t, v["news"], 7)
}

func TestOutlookEndpoint(t *testing.T) {
	e, _ := newTestServer(t)
	rec := do(e, http.MethodGet, "/api/outlook")
	require.Equal(t, http.StatusOK, rec.Code)

	var o models.Outlook
	decode(t, rec, &o)
	assert.Equal(t, []string{"US CPI: actual 3.1% vs 3.0% (prev 2.9%)"}, o.Yesterday)
	assert.Equal(t, []string{}, o.Current)
}

func TestNewsEndpointLimits(t *testing.T) {
	e, _ := newTestServer(t)

	var items []models.NewsItem
	decode(t, do(e, http.MethodGet, "/api/news"), &items)
	assert.Len(t, items, 5)

	decode(t, do(e, http.MethodGet, "/api/news?limit=2"), &items)
	assert.Len(t, items, 2)

	decode(t, do(e, http.MethodGet, "/api/news?limit=20"), &items)
	assert.Len(t, items, 7)
}

func TestNewsEndpointRejectsBadLimit(t *testing.T) {
	e, _ := newTestServer(t)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/news?limit=50").Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodGet, "/api/news?limit=abc").Code)
}

func TestDigestEndpoint(t *testing.T) {
	e, dryRun := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/digest?dry_run=true")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *dryRun)

	var res struct {
		Text       string             `json:"text"`
		DryRun     bool               `json:"dry_run"`
		Deliveries []usecase.Delivery `json:"deliveries"`
	}
	decode(t, rec, &res)
	assert.Equal(t, "*digest*", res.Text)
	assert.True(t, res.DryRun)
	assert.Empty(t, res.Deliveries)

	rec = do(e, http.MethodPost, "/api/digest")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, *dryRun)
	decode(t, rec, &res)
	require.Len(t, res.Deliveries, 1)
	assert.True(t, res.Deliveries[0].Sent)
}

func TestDigestEndpointRejectsBadDryRun(t *testing.T) {
	e, dryRun := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/digest?dry_run=maybe")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, *dryRun)
}

func TestDashboardPage(t *testing.T) {
	e, _ := newTestServer(t)
	rec := do(e, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	assert.Contains(t, body, "Gold (XAUUSD): 2345.50 USD (TwelveData)")
	assert.Contains(t, body, "DXY: NA")
	assert.Contains(t, body, "No sentiment data available.")
	assert.Contains(t, body, "US CPI: actual 3.1% vs 3.0% (prev 2.9%)")
}

func TestHealth(t *testing.T) {
	e, _ := newTestServer(t)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/healthz").Code)
}
