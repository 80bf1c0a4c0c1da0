package repository

import (
	"context"
	"errors"
	"time"

	"GoldBrief/internal/domain/models"
)

// ErrNotConfigured is returned by a client whose credentials are absent.
var ErrNotConfigured = errors.New("source not configured")

// QuoteProvider is one strategy in the quote fallback chain.
type QuoteProvider interface {
	Name() string
	Price(ctx context.Context, symbol string) (float64, error)
}

// QuoteSource resolves a symbol to a quote, never failing: when no
// provider answers, the returned quote is models.MissingQuote.
type QuoteSource interface {
	Quote(ctx context.Context, symbol string) models.Quote
}

type SeriesSource interface {
	Observations(ctx context.Context, seriesID string) ([]models.Observation, error)
}

type CalendarSource interface {
	Events(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error)
}

type NewsSource interface {
	Articles(ctx context.Context) ([]models.NewsItem, error)
}

type SentimentSource interface {
	Name() string
	Sentiment(ctx context.Context) (models.Sentiment, error)
}

// DigestSink delivers a rendered digest somewhere.
type DigestSink interface {
	Name() string
	Send(ctx context.Context, d models.Digest) error
}

type Metrics interface {
	RecordFetch(source, provider, result string)
	RecordDigest(sink, result string)
	RecordValue(name string, v float64)
	RecordLatency(op string, seconds float64)
}
