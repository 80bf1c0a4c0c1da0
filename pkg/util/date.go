package util

import (
	"strconv"
	"time"
)

// timeLayouts are tried in order by ParseTime. Layouts without a zone are
// interpreted as UTC, which is how the calendar and news providers emit them.
var timeLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime tries RFC3339 variants, zone-less ISO layouts, and unix seconds.
// Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
		return time.Unix(ts, 0).UTC(), true
	}
	return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
	if t, ok := ParseTime(s); ok {
		return t
	}
	return def
}

// CivilDay returns midnight of the calendar day containing t in loc.
func CivilDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// DayWindow returns the 00:00–23:59 span of day's calendar date in loc,
// expressed in UTC.
func DayWindow(day time.Time, loc *time.Location) (from, to time.Time) {
	start := CivilDay(day, loc)
	end := time.Date(start.Year(), start.Month(), start.Day(), 23, 59, 0, 0, loc)
	return start.UTC(), end.UTC()
}
