package models

import "time"

// Snapshot holds the results of one pipeline run.
type Snapshot struct {
	GeneratedAt time.Time
	Gold        Quote
	Index       float64
	Nominal     Series
	Real        Series
	Today       []CalendarEvent
	Yesterday   []CalendarEvent
	News        []NewsItem
	Sentiment   *Sentiment
	Outlook     Outlook
}

// Digest is the rendered text message built from a snapshot.
type Digest struct {
	Text     string
	Snapshot Snapshot
}
