package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"GoldBrief/internal/domain/models"
	drepo "GoldBrief/internal/domain/repository"
	"GoldBrief/internal/services/outlook"
	"GoldBrief/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lagos(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Africa/Lagos")
	require.NoError(t, err)
	return loc
}

func fixedNow() time.Time { return time.Date(2025, 1, 14, 6, 30, 0, 0, time.UTC) }

func obs(day int, v float64) models.Observation {
	return models.Observation{Date: time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC), Value: v, Valid: true}
}

func TestSnapshotHappyPath(t *testing.T) {
	loc := lagos(t)
	cal := &fakeCalendar{byDay: map[string][]models.CalendarEvent{
		"2025-01-13T23:00:00Z": {{Country: "US", Title: "PPI", Forecast: "0.3%", Importance: 3}},
		"2025-01-12T23:00:00Z": {{Country: "US", Title: "CPI", Actual: "3.1%", Forecast: "3.0%", Previous: "2.9%", Importance: 3}},
	}}
	news := make([]models.NewsItem, 8)
	for i := range news {
		news[i] = models.NewsItem{Title: "headline", Source: "Reuters"}
	}
	m := newFakeMetrics()

	md := NewMarketData(
		MarketDataConfig{
			Symbol:        "XAU/USD",
			NominalSeries: "DGS10",
			RealSeries:    "DFII10",
			Location:      loc,
			Now:           fixedNow,
			Rules:         []outlook.OutcomeRule{func(outlook.Input) []string { return []string{"rule"} }},
		},
		fakeQuotes{q: models.Quote{Value: 2345.5, Provenance: "TwelveData"}},
		fakeIndex{v: 103.2},
		fakeSeries{data: map[string][]models.Observation{
			"DGS10":  {obs(1, 4.5), obs(2, 4.6)},
			"DFII10": {obs(1, 2.1)},
		}},
		cal,
		fakeNews{items: news},
		fakeSentiment{s: models.Sentiment{LongPct: 60, ShortPct: 40, Source: "fake"}},
		logger.Nop(),
		m,
	)

	snap := md.Snapshot(context.Background())

	assert.Equal(t, "2025-01-14 07:30", snap.GeneratedAt.Format("2006-01-02 15:04"))
	assert.Equal(t, "XAU/USD", snap.Gold.Symbol)
	assert.Equal(t, 103.2, snap.Index)
	assert.Equal(t, 4.6, snap.Nominal.Last())
	assert.Equal(t, 2.1, snap.Real.Last())
	require.Len(t, snap.Today, 1)
	require.Len(t, snap.Yesterday, 1)
	assert.Len(t, snap.News, 8)
	require.NotNil(t, snap.Sentiment)
	assert.Equal(t, 60, snap.Sentiment.LongPct)

	assert.Equal(t, []string{"US CPI: actual 3.1% vs 3.0% (prev 2.9%)"}, snap.Outlook.Yesterday)
	assert.Equal(t, []string{"US PPI: forecast 0.3%"}, snap.Outlook.Current)
	assert.Equal(t, []string{
		"DXY ~ 103.20, XAUUSD ~ 2345.50",
		"10y nominal yield: 4.60%, real yield: 2.10%",
	}, snap.Outlook.Future)
	assert.Equal(t, []string{"rule"}, snap.Outlook.Possible)

	// day windows are the Lagos civil days expressed in UTC
	require.Len(t, cal.calls, 2)
	assert.Equal(t, time.Date(2025, 1, 13, 23, 0, 0, 0, time.UTC), cal.calls[0].from)
	assert.Equal(t, time.Date(2025, 1, 14, 22, 59, 0, 0, time.UTC), cal.calls[0].to)
	assert.Equal(t, time.Date(2025, 1, 12, 23, 0, 0, 0, time.UTC), cal.calls[1].from)

	assert.Equal(t, 2345.5, m.values["gold"])
	assert.Equal(t, resultOK, m.result("calendar", "tradingeconomics"))
}

func TestSnapshotAllSourcesMissing(t *testing.T) {
	m := newFakeMetrics()
	md := NewMarketData(
		MarketDataConfig{Symbol: "XAU/USD", NominalSeries: "DGS10", RealSeries: "DFII10", Location: lagos(t), Now: fixedNow},
		fakeQuotes{q: models.MissingQuote("")},
		fakeIndex{v: math.NaN()},
		fakeSeries{err: drepo.ErrNotConfigured},
		&fakeCalendar{err: drepo.ErrNotConfigured},
		fakeNews{err: drepo.ErrNotConfigured},
		fakeSentiment{err: errors.New("403")},
		logger.Nop(),
		m,
	)

	var snap models.Snapshot
	require.NotPanics(t, func() { snap = md.Snapshot(context.Background()) })

	assert.False(t, snap.Gold.Valid())
	assert.True(t, math.IsNaN(snap.Index))
	assert.True(t, snap.Nominal.Empty())
	assert.Equal(t, "DGS10", snap.Nominal.ID)
	assert.NotNil(t, snap.Today)
	assert.Empty(t, snap.Today)
	assert.Empty(t, snap.Yesterday)
	assert.NotNil(t, snap.News)
	assert.Empty(t, snap.News)
	assert.Nil(t, snap.Sentiment)

	assert.Empty(t, snap.Outlook.Yesterday)
	assert.Empty(t, snap.Outlook.Current)
	assert.Len(t, snap.Outlook.Future, 2)
	assert.Empty(t, snap.Outlook.Possible)

	assert.Equal(t, resultDisabled, m.result("series", "fred"))
	assert.Equal(t, resultDisabled, m.result("news", "newsapi"))
	assert.Equal(t, resultError, m.result("sentiment", "fake"))
}

func TestSnapshotWithoutSentimentSource(t *testing.T) {
	md := NewMarketData(
		MarketDataConfig{Symbol: "XAU/USD", Location: lagos(t), Now: fixedNow},
		fakeQuotes{q: models.MissingQuote("")},
		fakeIndex{v: math.NaN()},
		fakeSeries{},
		&fakeCalendar{},
		fakeNews{},
		nil,
		logger.Nop(),
		newFakeMetrics(),
	)

	assert.Nil(t, md.Snapshot(context.Background()).Sentiment)
}

func TestSnapshotWithNilSources(t *testing.T) {
	m := newFakeMetrics()
	md := NewMarketData(
		MarketDataConfig{Symbol: "XAU/USD", NominalSeries: "DGS10", RealSeries: "DFII10", Location: lagos(t), Now: fixedNow},
		fakeQuotes{q: models.MissingQuote("")},
		fakeIndex{v: math.NaN()},
		nil, nil, nil, nil,
		logger.Nop(),
		m,
	)

	var snap models.Snapshot
	require.NotPanics(t, func() { snap = md.Snapshot(context.Background()) })

	assert.True(t, snap.Nominal.Empty())
	assert.NotNil(t, snap.Today)
	assert.Empty(t, snap.Today)
	assert.NotNil(t, snap.News)
	assert.Empty(t, snap.News)
	assert.Len(t, snap.Outlook.Future, 2)

	assert.Equal(t, resultDisabled, m.result("series", "fred"))
	assert.Equal(t, resultDisabled, m.result("calendar", "tradingeconomics"))
	assert.Equal(t, resultDisabled, m.result("news", "newsapi"))
}

func TestCalendarProviderError(t *testing.T) {
	m := newFakeMetrics()
	md := NewMarketData(
		MarketDataConfig{Location: lagos(t), Now: fixedNow},
		fakeQuotes{}, fakeIndex{}, fakeSeries{},
		&fakeCalendar{err: errors.New("unexpected body")},
		fakeNews{}, nil, logger.Nop(), m,
	)

	events := md.Calendar(context.Background(), fixedNow())
	assert.NotNil(t, events)
	assert.Empty(t, events)
	assert.Equal(t, resultError, m.result("calendar", "tradingeconomics"))
}
