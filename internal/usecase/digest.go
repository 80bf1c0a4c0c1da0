package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"GoldBrief/internal/domain/models"
	drepo "GoldBrief/internal/domain/repository"
	"GoldBrief/pkg/logger"
)

// TopNews caps the headlines surfaced in the digest and the dashboard.
const TopNews = 5

// SnapshotSource produces one pipeline run.
type SnapshotSource interface {
	Snapshot(ctx context.Context) models.Snapshot
}

// Delivery is the outcome of sending a digest to one sink.
type Delivery struct {
	Sink  string `json:"sink"`
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

// DigestService builds the text digest and hands it to every sink.
type DigestService struct {
	data      SnapshotSource
	sinks     []drepo.DigestSink
	zoneLabel string
	log       *logger.Logger
	metrics   drepo.Metrics
}

func NewDigestService(data SnapshotSource, zoneLabel string, log *logger.Logger, metrics drepo.Metrics, sinks ...drepo.DigestSink) *DigestService {
	return &DigestService{
		data:      data,
		sinks:     sinks,
		zoneLabel: zoneLabel,
		log:       log.With(logger.String("component", "digest")),
		metrics:   metrics,
	}
}

// Build runs the pipeline and renders the digest without sending it.
func (s *DigestService) Build(ctx context.Context) models.Digest {
	snap := s.data.Snapshot(ctx)
	return models.Digest{Text: FormatDigest(snap, s.zoneLabel), Snapshot: snap}
}

// Run builds the digest and, unless dryRun is set, publishes it.
func (s *DigestService) Run(ctx context.Context, dryRun bool) (models.Digest, []Delivery) {
	d := s.Build(ctx)
	if dryRun {
		s.log.Info("dry run, digest not sent", logger.Int("length", len(d.Text)))
		return d, nil
	}
	return d, s.Publish(ctx, d)
}

// Publish sends d to every sink. Failures are logged and reported, never
// returned as errors.
func (s *DigestService) Publish(ctx context.Context, d models.Digest) []Delivery {
	out := make([]Delivery, 0, len(s.sinks))
	for _, sink := range s.sinks {
		err := sink.Send(ctx, d)
		res := Delivery{Sink: sink.Name(), Sent: err == nil}

		switch {
		case errors.Is(err, drepo.ErrNotConfigured):
			res.Error = err.Error()
			s.metrics.RecordDigest(sink.Name(), resultDisabled)
			s.log.Debug("digest sink disabled", logger.String("sink", sink.Name()))
		case err != nil:
			res.Error = err.Error()
			s.metrics.RecordDigest(sink.Name(), resultError)
			s.log.Warn("digest delivery failed", logger.String("sink", sink.Name()), logger.Error(err))
		default:
			s.metrics.RecordDigest(sink.Name(), resultOK)
			s.log.Info("digest delivered", logger.String("sink", sink.Name()))
		}
		out = append(out, res)
	}
	return out
}

// FormatDigest renders snap as a Markdown message.
func FormatDigest(snap models.Snapshot, zoneLabel string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*XAUUSD Morning Digest — %s %s*\n", snap.GeneratedAt.Format("2006-01-02 15:04"), zoneLabel)
	fmt.Fprintf(&b, "Gold (XAUUSD): %s USD (%s)\n", strconv.FormatFloat(snap.Gold.Value, 'f', -1, 64), snap.Gold.Provenance)
	fmt.Fprintf(&b, "DXY: %.2f\n", snap.Index)
	if snap.Sentiment != nil {
		fmt.Fprintf(&b, "Retail Sentiment — Long: %d%%, Short: %d%%\n", snap.Sentiment.LongPct, snap.Sentiment.ShortPct)
	}

	section := func(title string, lines []string) {
		b.WriteString("*" + title + ":*\n")
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	section("Yesterday", snap.Outlook.Yesterday)
	section("Current", snap.Outlook.Current)
	section("Future", snap.Outlook.Future)
	section("Possible Outcomes", snap.Outlook.Possible)

	if len(snap.News) > 0 {
		b.WriteString("\n*Top News:*\n")
		for i, n := range snap.News {
			if i == TopNews {
				break
			}
			fmt.Fprintf(&b, "- %s (%s)\n", n.Title, n.Source)
		}
	}

	return b.String()
}
