// Package metrics holds the Prometheus instrumentation shared by the
// parser, the categorizer, the embedders and the HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "statementer"

// Categorization outcomes.
const (
	ResultMatched       = "matched"
	ResultUncategorized = "uncategorized"
	ResultPreserved     = "preserved"
)

// Metrics groups the collectors. A Metrics built with a nil Registerer is
// fully usable but not exported anywhere.
type Metrics struct {
	RowsParsed        prometheus.Counter
	RowsSkipped       *prometheus.CounterVec
	Categorizations   *prometheus.CounterVec
	SimilarityScore   prometheus.Histogram
	IndexBuilds       prometheus.Counter
	TagsAdded         prometheus.Counter
	EmbeddingRequests *prometheus.CounterVec
	EmbeddingDuration *prometheus.HistogramVec
	HTTPRequests      *prometheus.CounterVec
	HTTPDuration      *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RowsParsed: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "statement",
			Name:      "rows_parsed_total",
			Help:      "Statement rows converted into transactions.",
		}),
		RowsSkipped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "statement",
			Name:      "rows_skipped_total",
			Help:      "Statement rows dropped, by reason.",
		}, []string{"reason"}),
		Categorizations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "categorizer",
			Name:      "categorizations_total",
			Help:      "Descriptions categorized, by outcome.",
		}, []string{"result"}),
		SimilarityScore: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "categorizer",
			Name:      "best_similarity",
			Help:      "Best cosine similarity found for each description.",
			Buckets:   []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1},
		}),
		IndexBuilds: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "categorizer",
			Name:      "index_builds_total",
			Help:      "Embedding indexes built from the tag store.",
		}),
		TagsAdded: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "store",
			Name:      "tags_added_total",
			Help:      "Tags appended to the store.",
		}),
		EmbeddingRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "embedding",
			Name:      "requests_total",
			Help:      "Embedding calls, by provider and status.",
		}, []string{"provider", "status"}),
		EmbeddingDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "embedding",
			Name:      "request_duration_seconds",
			Help:      "Embedding call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests, by route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Unregistered returns a Metrics that is not attached to any registry.
func Unregistered() *Metrics {
	return New(nil)
}

// SkipRow counts a dropped statement row.
func (m *Metrics) SkipRow(reason string) {
	if m == nil {
		return
	}
	m.RowsSkipped.WithLabelValues(reason).Inc()
}

// ParsedRows adds n converted statement rows.
func (m *Metrics) ParsedRows(n int) {
	if m == nil {
		return
	}
	m.RowsParsed.Add(float64(n))
}

// ObserveCategorization records one categorizer decision.
func (m *Metrics) ObserveCategorization(result string, score float64, scored bool) {
	if m == nil {
		return
	}
	m.Categorizations.WithLabelValues(result).Inc()
	if scored {
		m.SimilarityScore.Observe(score)
	}
}
