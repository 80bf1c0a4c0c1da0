package models

import (
	"math"
	"time"
)

// Observation is one dated point of a statistical series. Valid is false
// when the provider published a placeholder instead of a number.
type Observation struct {
	Date  time.Time
	Value float64
	Valid bool
}

// Series is an ascending-by-date observation sequence.
type Series struct {
	ID           string
	Observations []Observation
}

// Last returns the most recent valid value, or NaN if there is none.
func (s Series) Last() float64 {
	for i := len(s.Observations) - 1; i >= 0; i-- {
		if o := s.Observations[i]; o.Valid {
			return o.Value
		}
	}
	return math.NaN()
}

// Empty reports whether the series has no observations at all.
func (s Series) Empty() bool { return len(s.Observations) == 0 }
