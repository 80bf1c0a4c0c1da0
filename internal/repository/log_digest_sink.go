package repository

import (
	"context"
	"fmt"
	"io"

	"GoldBrief/internal/domain/models"
	"GoldBrief/pkg/logger"
)

// LogDigestSink stands in for Telegram when its credentials are missing:
// it warns once per digest and prints the text to w.
type LogDigestSink struct {
	w   io.Writer
	log *logger.Logger
}

func NewLogDigestSink(w io.Writer, log *logger.Logger) *LogDigestSink {
	return &LogDigestSink{w: w, log: log}
}

func (s *LogDigestSink) Name() string { return "stdout" }

func (s *LogDigestSink) Send(_ context.Context, d models.Digest) error {
	s.log.Warn("telegram credentials not set, printing digest")
	if _, err := fmt.Fprintln(s.w, d.Text); err != nil {
		return fmt.Errorf("print digest: %w", err)
	}
	return nil
}
