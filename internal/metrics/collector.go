package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/store"
)

// TagStoreCollector reports the size of the tag store at scrape time.
type TagStoreCollector struct {
	TagCount   *prometheus.Desc
	StoreError *prometheus.Desc
	repo       store.TagRepository
	timeout    time.Duration
	logger     logging.Logger
}

// NewTagStoreCollector builds a collector reading from repo.
func NewTagStoreCollector(repo store.TagRepository, logger logging.Logger) *TagStoreCollector {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &TagStoreCollector{
		TagCount: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "store", "tags"),
			"Number of tags in the store",
			nil,
			nil,
		),
		StoreError: prometheus.NewDesc(
			prometheus.BuildFQName(Namespace, "store", "load_error"),
			"Whether the last scrape failed to read the store",
			nil,
			nil,
		),
		repo:    repo,
		timeout: 5 * time.Second,
		logger:  logger,
	}
}

func (c *TagStoreCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.TagCount
	ch <- c.StoreError
}

func (c *TagStoreCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	failed := 0.0
	tags, err := c.repo.LoadTags(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to read tag store for metrics")
		failed = 1
	}

	ch <- prometheus.MustNewConstMetric(c.TagCount, prometheus.GaugeValue, float64(len(tags)))
	ch <- prometheus.MustNewConstMetric(c.StoreError, prometheus.GaugeValue, failed)
}
