package fred

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"GoldBrief/internal/domain/models"
	drepo "GoldBrief/internal/domain/repository"
	xhttp "GoldBrief/pkg/http"
	"GoldBrief/pkg/util"
)

// Client fetches statistical series from the FRED observations API.
type Client struct {
	apiKey           string
	baseURL          string
	observationStart string
	http             *xhttp.Client
}

func New(apiKey, baseURL, observationStart string, timeout time.Duration, opts ...xhttp.ClientOption) *Client {
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)
	return &Client{
		apiKey:           apiKey,
		baseURL:          strings.TrimRight(baseURL, "/"),
		observationStart: observationStart,
		http:             xhttp.NewClient(opts...),
	}
}

type observationsResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// Observations returns the series ascending by date. Placeholder values
// (FRED publishes "." for holidays) keep their slot with Valid=false.
func (c *Client) Observations(ctx context.Context, seriesID string) ([]models.Observation, error) {
	if c.apiKey == "" {
		return nil, drepo.ErrNotConfigured
	}

	var res observationsResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/series/observations",
		QueryParams: map[string][]string{
			"series_id":         {seriesID},
			"api_key":           {c.apiKey},
			"observation_start": {c.observationStart},
			"file_type":         {"json"},
		},
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("fred observations %s: %w", seriesID, err)
	}

	out := make([]models.Observation, 0, len(res.Observations))
	for _, o := range res.Observations {
		date, ok := util.ParseTime(o.Date)
		if !ok {
			continue
		}
		obs := models.Observation{Date: date}
		if v, ok := parseValue(o.Value); ok {
			obs.Value = v
			obs.Valid = true
		}
		out = append(out, obs)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// parseValue accepts finite decimal numbers only. ParseFloat alone would
// also take "NaN", "Inf" and hex floats.
func parseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
