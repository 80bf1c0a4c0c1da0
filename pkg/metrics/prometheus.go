package metrics

import (
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchesTotal *prometheus.CounterVec
	digestsTotal *prometheus.CounterVec
	lastValue    *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
}

// New creates a Prometheus metrics recorder on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder whose collectors are registered on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		fetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldbrief_fetches_total",
				Help: "Upstream fetches by source, answering provider and result",
			},
			[]string{"source", "provider", "result"},
		),
		digestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldbrief_digests_sent_total",
				Help: "Digest deliveries by sink and result",
			},
			[]string{"sink", "result"},
		),
		lastValue: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "goldbrief_last_value",
				Help: "Last observed value for an instrument or derived index",
			},
			[]string{"name"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "goldbrief_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordFetch counts a fetch outcome. result is "ok", "empty", "error" or "disabled".
func (r *Recorder) RecordFetch(source, provider, result string) {
	r.fetchesTotal.WithLabelValues(source, provider, result).Inc()
}

// RecordDigest counts a digest delivery attempt.
func (r *Recorder) RecordDigest(sink, result string) {
	r.digestsTotal.WithLabelValues(sink, result).Inc()
}

// RecordValue sets the last value gauge; NaN readings are skipped so the
// gauge keeps the last good value.
func (r *Recorder) RecordValue(name string, v float64) {
	if math.IsNaN(v) {
		return
	}
	r.lastValue.WithLabelValues(name).Set(v)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
