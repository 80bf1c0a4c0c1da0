package outlook

import (
	"fmt"
	"sort"

	"GoldBrief/internal/domain/models"
	"GoldBrief/pkg/util"
)

// MaxEvents caps the yesterday and current sections.
const MaxEvents = 3

const missing = "?"

// Input is everything the summarizer reads. None of it is modified.
type Input struct {
	Yesterday []models.CalendarEvent
	Today     []models.CalendarEvent
	Nominal   models.Series
	Real      models.Series
	Index     float64
	Price     float64
}

// OutcomeRule appends lines to the "possible outcomes" section.
type OutcomeRule func(in Input) []string

// Summarize builds the four outlook sections. It never fails: empty
// calendars give empty sections and empty series render as NaN.
func Summarize(in Input, rules ...OutcomeRule) models.Outlook {
	out := models.Outlook{
		Yesterday: []string{},
		Current:   []string{},
		Future:    make([]string, 0, 2),
		Possible:  []string{},
	}

	for _, e := range Top(in.Yesterday, MaxEvents) {
		out.Yesterday = append(out.Yesterday, fmt.Sprintf("%s %s: actual %s vs %s (prev %s)",
			e.Country, e.Title,
			util.OrPlaceholder(e.Actual, missing),
			util.OrPlaceholder(e.Forecast, missing),
			util.OrPlaceholder(e.Previous, missing)))
	}

	for _, e := range Top(in.Today, MaxEvents) {
		out.Current = append(out.Current, fmt.Sprintf("%s %s: forecast %s",
			e.Country, e.Title, util.OrPlaceholder(e.Forecast, missing)))
	}

	out.Future = append(out.Future,
		fmt.Sprintf("DXY ~ %.2f, XAUUSD ~ %.2f", in.Index, in.Price),
		fmt.Sprintf("10y nominal yield: %.2f%%, real yield: %.2f%%", in.Nominal.Last(), in.Real.Last()),
	)

	for _, rule := range rules {
		out.Possible = append(out.Possible, rule(in)...)
	}

	return out
}

// Top returns up to n events ordered by importance then date, both
// descending. Equal keys keep their input order. events is not modified.
func Top(events []models.CalendarEvent, n int) []models.CalendarEvent {
	sorted := make([]models.CalendarEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Importance != sorted[j].Importance {
			return sorted[i].Importance > sorted[j].Importance
		}
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
