package repository

import (
	"context"
	"time"

	"GoldBrief/internal/domain/models"
	pkgkafka "GoldBrief/pkg/kafka"
)

// Publisher is the subset of pkg/kafka.Producer the sink needs.
type Publisher interface {
	Publish(ctx context.Context, topic string, m pkgkafka.Message) error
}

// KafkaDigestSink publishes each digest, with its snapshot, to a topic.
// The producer is owned and closed by the caller.
type KafkaDigestSink struct {
	producer Publisher
	topic    string
}

// NewKafkaDigestSink creates a Kafka digest sink.
func NewKafkaDigestSink(producer Publisher, topic string) *KafkaDigestSink {
	return &KafkaDigestSink{producer: producer, topic: topic}
}

func (s *KafkaDigestSink) Name() string { return "kafka" }

// DigestEvent is the message value written to Kafka.
type DigestEvent struct {
	Text     string              `json:"text"`
	Snapshot models.SnapshotView `json:"snapshot"`
	SentAt   time.Time           `json:"sent_at"`
}

func (s *KafkaDigestSink) Send(ctx context.Context, d models.Digest) error {
	return s.producer.Publish(ctx, s.topic, pkgkafka.Message{
		Key: []byte(d.Snapshot.GeneratedAt.Format("2006-01-02")),
		Value: DigestEvent{
			Text:     d.Text,
			Snapshot: models.NewSnapshotView(d.Snapshot),
			SentAt:   time.Now().UTC(),
		},
		Headers: map[string]string{
			"content-type": "application/json",
			"symbol":       d.Snapshot.Gold.Symbol,
		},
	})
}
