package models

import "time"

// CalendarEvent is a scheduled economic release. Actual, Forecast and
// Previous are kept as the provider's display strings ("3.1%", "250K").
type CalendarEvent struct {
	Country    string    `json:"country"`
	Category   string    `json:"category"`
	Title      string    `json:"title"`
	Date       time.Time `json:"date"`
	Actual     string    `json:"actual"`
	Forecast   string    `json:"forecast"`
	Previous   string    `json:"previous"`
	Importance int       `json:"importance"`
	Unit       string    `json:"unit,omitempty"`
	Source     string    `json:"source,omitempty"`
}
