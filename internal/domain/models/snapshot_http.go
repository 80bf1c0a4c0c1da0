package models

import (
	"math"
	"time"
)

// Requests and views for the dashboard HTTP endpoints.

type NewsRequest struct {
	Limit int `query:"limit" json:"limit" default:"5" validate:"gte=1,lte=20"`
}

type DigestRequest struct {
	DryRun bool `query:"dry_run" json:"dry_run"`
}

// QuoteView is the JSON form of a Quote; NaN becomes null.
type QuoteView struct {
	Symbol     string   `json:"symbol"`
	Value      *float64 `json:"value"`
	Provenance string   `json:"provenance"`
}

type ObservationView struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

type SeriesView struct {
	ID    string            `json:"id"`
	Last  *float64          `json:"last"`
	Tail  []ObservationView `json:"tail"`
	Count int               `json:"count"`
}

type SnapshotView struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Gold        QuoteView       `json:"gold"`
	Index       *float64        `json:"dxy"`
	Nominal     SeriesView      `json:"nominal_10y"`
	Real        SeriesView      `json:"real_10y"`
	Today       []CalendarEvent `json:"calendar_today"`
	Yesterday   []CalendarEvent `json:"calendar_yesterday"`
	News        []NewsItem      `json:"news"`
	Sentiment   *Sentiment      `json:"sentiment"`
	Outlook     Outlook         `json:"outlook"`
}

// seriesTail is how many trailing observations the view carries.
const seriesTail = 10

// NewSnapshotView converts a snapshot into its JSON-safe view.
func NewSnapshotView(s Snapshot) SnapshotView {
	return SnapshotView{
		GeneratedAt: s.GeneratedAt,
		Gold: QuoteView{
			Symbol:     s.Gold.Symbol,
			Value:      Nullable(s.Gold.Value),
			Provenance: s.Gold.Provenance,
		},
		Index:     Nullable(s.Index),
		Nominal:   newSeriesView(s.Nominal),
		Real:      newSeriesView(s.Real),
		Today:     nonNil(s.Today),
		Yesterday: nonNil(s.Yesterday),
		News:      nonNil(s.News),
		Sentiment: s.Sentiment,
		Outlook:   s.Outlook,
	}
}

func newSeriesView(s Series) SeriesView {
	obs := s.Observations
	if len(obs) > seriesTail {
		obs = obs[len(obs)-seriesTail:]
	}
	tail := make([]ObservationView, 0, len(obs))
	for _, o := range obs {
		v := ObservationView{Date: o.Date.Format("2006-01-02")}
		if o.Valid {
			v.Value = Nullable(o.Value)
		}
		tail = append(tail, v)
	}
	return SeriesView{ID: s.ID, Last: Nullable(s.Last()), Tail: tail, Count: len(s.Observations)}
}

// Nullable maps NaN and ±Inf to nil.
func Nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
