package models

// Sentiment is retail positioning for one instrument. LongPct+ShortPct is
// usually 100 but nothing enforces it.
type Sentiment struct {
	LongPct  int    `json:"long_pct"`
	ShortPct int    `json:"short_pct"`
	Source   string `json:"source"`
}
