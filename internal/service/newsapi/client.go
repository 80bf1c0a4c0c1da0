package newsapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"GoldBrief/internal/domain/models"
	drepo "GoldBrief/internal/domain/repository"
	xhttp "GoldBrief/pkg/http"
	"GoldBrief/pkg/util"
)

// Client searches the NewsAPI "everything" endpoint.
type Client struct {
	apiKey   string
	baseURL  string
	query    string
	language string
	pageSize int
	http     *xhttp.Client
}

func New(apiKey, baseURL, query, language string, pageSize int, timeout time.Duration, opts ...xhttp.ClientOption) *Client {
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)
	return &Client{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		query:    query,
		language: language,
		pageSize: pageSize,
		http:     xhttp.NewClient(opts...),
	}
}

type everythingResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Articles returns matching headlines, newest first.
func (c *Client) Articles(ctx context.Context) ([]models.NewsItem, error) {
	if c.apiKey == "" {
		return nil, drepo.ErrNotConfigured
	}

	var res everythingResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     c.baseURL + "/everything",
		Headers: map[string]string{"X-Api-Key": c.apiKey},
		QueryParams: map[string][]string{
			"q":        {c.query},
			"language": {c.language},
			"sortBy":   {"publishedAt"},
			"pageSize": {strconv.Itoa(c.pageSize)},
		},
	}, &res)
	if err != nil {
		return nil, fmt.Errorf("newsapi everything: %w", err)
	}
	if res.Status == "error" {
		return nil, fmt.Errorf("newsapi everything: %s", res.Message)
	}

	out := make([]models.NewsItem, 0, len(res.Articles))
	for _, a := range res.Articles {
		out = append(out, models.NewsItem{
			Source:      a.Source.Name,
			Title:       a.Title,
			URL:         a.URL,
			PublishedAt: util.ParseTimeDefault(a.PublishedAt, time.Time{}),
		})
	}
	return out, nil
}
