package embedding

import (
	"context"
	"time"

	"github.com/bank-statementer/statementer/internal/metrics"
)

// Instrumented records call counts and latency for the Embedder it wraps.
type Instrumented struct {
	next    Embedder
	metrics *metrics.Metrics
}

// NewInstrumented wraps next. A nil Metrics returns next unchanged.
func NewInstrumented(next Embedder, m *metrics.Metrics) Embedder {
	if m == nil {
		return next
	}
	return &Instrumented{next: next, metrics: m}
}

func (i *Instrumented) Name() string {
	return i.next.Name()
}

func (i *Instrumented) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	start := time.Now()
	vectors, err := i.next.Embed(ctx, texts)
	i.metrics.EmbeddingDuration.WithLabelValues(i.next.Name()).Observe(time.Since(start).Seconds())

	status := "ok"
	if err != nil {
		status = "error"
	}
	i.metrics.EmbeddingRequests.WithLabelValues(i.next.Name(), status).Inc()
	return vectors, err
}

// Unwrap returns the decorated Embedder.
func (i *Instrumented) Unwrap() Embedder {
	return i.next
}
