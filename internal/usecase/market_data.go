package usecase

import (
	"context"
	"errors"
	"time"

	"GoldBrief/internal/domain/models"
	drepo "GoldBrief/internal/domain/repository"
	"GoldBrief/internal/services/outlook"
	"GoldBrief/pkg/logger"
	"GoldBrief/pkg/util"
)

// IndexSource computes the synthetic dollar index, NaN when unavailable.
type IndexSource interface {
	Compute(ctx context.Context) float64
}

// MarketDataConfig holds the run parameters of MarketData.
type MarketDataConfig struct {
	Symbol        string
	NominalSeries string
	RealSeries    string
	Location      *time.Location
	Rules         []outlook.OutcomeRule
	// Now defaults to time.Now.
	Now func() time.Time
}

// MarketData runs the fetch pipeline. Every fetch is converted into a
// sentinel at this boundary (empty slice, NaN, nil) after being logged,
// so callers never see provider errors.
type MarketData struct {
	cfg       MarketDataConfig
	quotes    drepo.QuoteSource
	index     IndexSource
	series    drepo.SeriesSource
	calendar  drepo.CalendarSource
	news      drepo.NewsSource
	sentiment drepo.SentimentSource
	log       *logger.Logger
	metrics   drepo.Metrics
}

// disabled stands in for a source switched off in config.Sources.
type disabled struct{}

func (disabled) Observations(context.Context, string) ([]models.Observation, error) {
	return nil, drepo.ErrNotConfigured
}

func (disabled) Events(context.Context, time.Time, time.Time) ([]models.CalendarEvent, error) {
	return nil, drepo.ErrNotConfigured
}

func (disabled) Articles(context.Context) ([]models.NewsItem, error) {
	return nil, drepo.ErrNotConfigured
}

// NewMarketData creates the pipeline. A nil series, calendar, news or
// sentiment source is treated as disabled.
func NewMarketData(
	cfg MarketDataConfig,
	quotes drepo.QuoteSource,
	index IndexSource,
	series drepo.SeriesSource,
	calendar drepo.CalendarSource,
	news drepo.NewsSource,
	sentiment drepo.SentimentSource,
	log *logger.Logger,
	metrics drepo.Metrics,
) *MarketData {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if series == nil {
		series = disabled{}
	}
	if calendar == nil {
		calendar = disabled{}
	}
	if news == nil {
		news = disabled{}
	}
	return &MarketData{
		cfg:       cfg,
		quotes:    quotes,
		index:     index,
		series:    series,
		calendar:  calendar,
		news:      news,
		sentiment: sentiment,
		log:       log.With(logger.String("component", "market_data")),
		metrics:   metrics,
	}
}

// Now returns the current time in the configured civil zone.
func (m *MarketData) Now() time.Time { return m.cfg.Now().In(m.cfg.Location) }

// Gold returns the configured instrument quote.
func (m *MarketData) Gold(ctx context.Context) models.Quote {
	q := m.quotes.Quote(ctx, m.cfg.Symbol)
	m.metrics.RecordValue("gold", q.Value)
	return q
}

// Index returns the dollar index or NaN.
func (m *MarketData) Index(ctx context.Context) float64 {
	v := m.index.Compute(ctx)
	m.metrics.RecordValue("dxy", v)
	return v
}

// Series returns the observations of id, empty on any failure.
func (m *MarketData) Series(ctx context.Context, id string) models.Series {
	start := time.Now()
	obs, err := m.series.Observations(ctx, id)
	if !m.observe("series", "fred", start, err, len(obs), logger.String("series_id", id)) {
		return models.Series{ID: id}
	}
	return models.Series{ID: id, Observations: obs}
}

// Calendar returns the events of the civil day containing day.
func (m *MarketData) Calendar(ctx context.Context, day time.Time) []models.CalendarEvent {
	from, to := util.DayWindow(day, m.cfg.Location)
	start := time.Now()
	events, err := m.calendar.Events(ctx, from, to)
	label := logger.String("day", from.In(m.cfg.Location).Format("2006-01-02"))
	if !m.observe("calendar", "tradingeconomics", start, err, len(events), label) || len(events) == 0 {
		return []models.CalendarEvent{}
	}
	return events
}

// News returns the latest headlines, empty on any failure.
func (m *MarketData) News(ctx context.Context) []models.NewsItem {
	start := time.Now()
	items, err := m.news.Articles(ctx)
	if !m.observe("news", "newsapi", start, err, len(items)) || len(items) == 0 {
		return []models.NewsItem{}
	}
	return items
}

// Sentiment returns retail positioning, nil when unavailable.
func (m *MarketData) Sentiment(ctx context.Context) *models.Sentiment {
	if m.sentiment == nil {
		return nil
	}
	start := time.Now()
	s, err := m.sentiment.Sentiment(ctx)
	if !m.observe("sentiment", m.sentiment.Name(), start, err, 1) {
		return nil
	}
	return &s
}

// Snapshot runs the whole pipeline once, sequentially.
func (m *MarketData) Snapshot(ctx context.Context) models.Snapshot {
	now := m.Now()
	today := util.CivilDay(now, m.cfg.Location)
	yesterday := today.AddDate(0, 0, -1)

	started := time.Now()
	snap := models.Snapshot{
		GeneratedAt: now,
		Gold:        m.Gold(ctx),
		Index:       m.Index(ctx),
		Nominal:     m.Series(ctx, m.cfg.NominalSeries),
		Real:        m.Series(ctx, m.cfg.RealSeries),
		Today:       m.Calendar(ctx, today),
		Yesterday:   m.Calendar(ctx, yesterday),
		News:        m.News(ctx),
		Sentiment:   m.Sentiment(ctx),
	}
	snap.Outlook = outlook.Summarize(outlook.Input{
		Yesterday: snap.Yesterday,
		Today:     snap.Today,
		Nominal:   snap.Nominal,
		Real:      snap.Real,
		Index:     snap.Index,
		Price:     snap.Gold.Value,
	}, m.cfg.Rules...)

	m.metrics.RecordLatency("snapshot", time.Since(started).Seconds())
	m.log.Info("snapshot built",
		logger.String("gold_source", snap.Gold.Provenance),
		logger.Float("gold", snap.Gold.Value),
		logger.Float("dxy", snap.Index),
		logger.Int("events_today", len(snap.Today)),
		logger.Int("events_yesterday", len(snap.Yesterday)),
		logger.Int("news", len(snap.News)),
		logger.Bool("sentiment", snap.Sentiment != nil),
		logger.Duration("took", time.Since(started)))
	return snap
}

// observe records the outcome of one fetch and reports whether its
// result can be used.
func (m *MarketData) observe(source, provider string, start time.Time, err error, n int, fields ...logger.Field) bool {
	m.metrics.RecordLatency(source, time.Since(start).Seconds())
	fields = append([]logger.Field{logger.String("source", source), logger.String("provider", provider)}, fields...)

	switch {
	case errors.Is(err, drepo.ErrNotConfigured):
		m.metrics.RecordFetch(source, provider, resultDisabled)
		m.log.Debug("source disabled", fields...)
		return false
	case err != nil:
		m.metrics.RecordFetch(source, provider, resultError)
		m.log.Warn("fetch failed", append(fields, logger.Error(err))...)
		return false
	case n == 0:
		m.metrics.RecordFetch(source, provider, resultEmpty)
		m.log.Debug("fetch returned nothing", fields...)
		return true
	}

	m.metrics.RecordFetch(source, provider, resultOK)
	m.log.Debug("fetch ok", append(fields, logger.Int("count", n))...)
	return true
}
