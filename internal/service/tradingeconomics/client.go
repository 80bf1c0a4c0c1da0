package tradingeconomics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"GoldBrief/internal/domain/models"
	drepo "GoldBrief/internal/domain/repository"
	xhttp "GoldBrief/pkg/http"
	"GoldBrief/pkg/util"
)

// Client fetches economic calendar releases from TradingEconomics.
type Client struct {
	apiKey     string
	baseURL    string
	countries  []string
	importance []int
	http       *xhttp.Client
}

func New(apiKey, baseURL string, countries []string, importance []int, timeout time.Duration, opts ...xhttp.ClientOption) *Client {
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		countries:  countries,
		importance: importance,
		http:       xhttp.NewClient(opts...),
	}
}

// text accepts a JSON string, number or null. TradingEconomics mixes them
// for the actual/forecast/previous columns.
type text string

func (t *text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = text(s)
	default:
		*t = text(b)
	}
	return nil
}

type event struct {
	Country    text `json:"Country"`
	Category   text `json:"Category"`
	Event      text `json:"Event"`
	Date       text `json:"Date"`
	Actual     text `json:"Actual"`
	Forecast   text `json:"Forecast"`
	Previous   text `json:"Previous"`
	Importance int  `json:"Importance"`
	Unit       text `json:"Unit"`
	Source     text `json:"Source"`
}

func (e event) toModel() models.CalendarEvent {
	title := string(e.Event)
	if title == "" {
		title = string(e.Category)
	}
	date, _ := util.ParseTime(string(e.Date))
	return models.CalendarEvent{
		Country:    string(e.Country),
		Category:   string(e.Category),
		Title:      title,
		Date:       date,
		Actual:     string(e.Actual),
		Forecast:   string(e.Forecast),
		Previous:   string(e.Previous),
		Importance: e.Importance,
		Unit:       string(e.Unit),
		Source:     string(e.Source),
	}
}

// Events returns the releases between the UTC dates of from and to,
// ascending by date.
func (c *Client) Events(ctx context.Context, from, to time.Time) ([]models.CalendarEvent, error) {
	if c.apiKey == "" {
		return nil, drepo.ErrNotConfigured
	}

	imp := make([]string, len(c.importance))
	for i, v := range c.importance {
		imp[i] = strconv.Itoa(v)
	}

	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/calendar",
		QueryParams: map[string][]string{
			"d1":         {from.UTC().Format("2006-01-02")},
			"d2":         {to.UTC().Format("2006-01-02")},
			"c":          {strings.Join(c.countries, ",")},
			"importance": {strings.Join(imp, ",")},
			"format":     {"json"},
			"client":     {c.apiKey},
		},
	}, &body)
	if err != nil {
		return nil, fmt.Errorf("tradingeconomics calendar: %w", err)
	}

	// The provider answers some failures with 200 and an object or a
	// plain string instead of an array.
	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("tradingeconomics calendar: unexpected body %.64q", string(trimmed))
	}

	var raw []event
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("tradingeconomics calendar: decode: %w", err)
	}

	out := make([]models.CalendarEvent, 0, len(raw))
	for _, e := range raw {
		out = append(out, e.toModel())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}
