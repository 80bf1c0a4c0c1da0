package usecase

import (
	"context"
	"sync"
	"time"

	"GoldBrief/internal/domain/models"
)

type fetchRecord struct{ source, provider, result string }

type fakeMetrics struct {
	mu      sync.Mutex
	fetches []fetchRecord
	digests map[string]string
	values  map[string]float64
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{digests: map[string]string{}, values: map[string]float64{}}
}

func (m *fakeMetrics) RecordFetch(source, provider, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches = append(m.fetches, fetchRecord{source, provider, result})
}

func (m *fakeMetrics) RecordDigest(sink, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.digests[sink] = result
}

func (m *fakeMetrics) RecordValue(name string, v float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = v
}

func (m *fakeMetrics) RecordLatency(string, float64) {}

func (m *fakeMetrics) result(source, provider string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.fetches) - 1; i >= 0; i-- {
		if f := m.fetches[i]; f.source == source && f.provider == provider {
			return f.result
		}
	}
	return ""
}

type fakeProvider struct {
	name  string
	price float64
	err   error
	calls int
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Price(context.Context, string) (float64, error) {
	p.calls++
	return p.price, p.err
}

type fakeIndex struct{ v float64 }

func (f fakeIndex) Compute(context.Context) float64 { return f.v }

type fakeQuotes struct{ q models.Quote }

func (f fakeQuotes) Quote(_ context.Context, symbol string) models.Quote {
	q := f.q
	q.Symbol = symbol
	return q
}

type fakeSeries struct {
	data map[string][]models.Observation
	err  error
}

func (f fakeSeries) Observations(_ context.Context, id string) ([]models.Observation, error) {
	return f.data[id], f.err
}

type calendarCall struct{ from, to time.Time }

type fakeCalendar struct {
	byDay map[string][]models.CalendarEvent
	err   error
	calls []calendarCall
}

func (f *fakeCalendar) Events(_ context.Context, from, to time.Time) ([]models.CalendarEvent, error) {
	f.calls = append(f.calls, calendarCall{from, to})
	if f.err != nil {
		return nil, f.err
	}
	return f.byDay[from.Format(time.RFC3339)], nil
}

type fakeNews struct {
	items []models.NewsItem
	err   error
}

func (f fakeNews) Articles(context.Context) ([]models.NewsItem, error) { return f.items, f.err }

type fakeSentiment struct {
	s   models.Sentiment
	err error
}

func (f fakeSentiment) Name() string { return "fake" }

func (f fakeSentiment) Sentiment(context.Context) (models.Sentiment, error) { return f.s, f.err }

type fakeSink struct {
	name string
	err  error
	got  []models.Digest
}

func (s *fakeSink) Name() string { return s.name }

func (s *fakeSink) Send(_ context.Context, d models.Digest) error {
	s.got = append(s.got, d)
	return s.err
}

type staticSnapshot struct{ snap models.Snapshot }

func (s staticSnapshot) Snapshot(context.Context) models.Snapshot { return s.snap }
