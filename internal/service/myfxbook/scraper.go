package myfxbook

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"GoldBrief/internal/domain/models"
	drepo "GoldBrief/internal/domain/repository"
	xhttp "GoldBrief/pkg/http"

	"github.com/PuerkitoBio/goquery"
)

const Name = "Myfxbook (scrape)"

var (
	shortRe = regexp.MustCompile(`Short\s+(\d+)\s*%`)
	longRe  = regexp.MustCompile(`Long\s+(\d+)\s*%`)

	// ErrNoSentiment means the page loaded but the percentages were not found.
	ErrNoSentiment = errors.New("sentiment percentages not found")
)

// skipped holds elements whose text is never visible.
var skipped = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"#comment": true,
}

// Scraper reads retail long/short positioning from the Myfxbook community
// outlook page.
type Scraper struct {
	url     string
	enabled bool
	http    *xhttp.Client
}

func New(url, userAgent string, enabled bool, timeout time.Duration, opts ...xhttp.ClientOption) *Scraper {
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout), xhttp.WithUserAgent(userAgent)}, opts...)
	return &Scraper{
		url:     url,
		enabled: enabled,
		http:    xhttp.NewClient(opts...),
	}
}

func (s *Scraper) Name() string { return Name }

func (s *Scraper) Sentiment(ctx context.Context) (models.Sentiment, error) {
	if !s.enabled {
		return models.Sentiment{}, drepo.ErrNotConfigured
	}

	var page []byte
	err := s.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    s.url,
	}, &page)
	if err != nil {
		return models.Sentiment{}, fmt.Errorf("myfxbook outlook: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return models.Sentiment{}, fmt.Errorf("myfxbook outlook: parse html: %w", err)
	}

	return Extract(VisibleText(doc.Selection))
}

// Extract pulls the short and long percentages out of flattened page text.
func Extract(text string) (models.Sentiment, error) {
	short := shortRe.FindStringSubmatch(text)
	long := longRe.FindStringSubmatch(text)
	if short == nil || long == nil {
		return models.Sentiment{}, ErrNoSentiment
	}

	s, _ := strconv.Atoi(short[1])
	l, _ := strconv.Atoi(long[1])
	return models.Sentiment{LongPct: l, ShortPct: s, Source: Name}, nil
}

// VisibleText joins the trimmed, non-empty text nodes under sel with
// single spaces, skipping script-like elements and comments.
func VisibleText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*goquery.Selection)
	walk = func(cur *goquery.Selection) {
		cur.Contents().Each(func(_ int, n *goquery.Selection) {
			name := goquery.NodeName(n)
			switch {
			case skipped[name]:
			case name == "#text":
				if t := strings.TrimSpace(n.Text()); t != "" {
					parts = append(parts, t)
				}
			default:
				walk(n)
			}
		})
	}
	walk(sel)
	return strings.Join(parts, " ")
}
