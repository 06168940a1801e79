// Package container provides dependency injection for the statementer
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bank-statementer/statementer/internal/categorizer"
	"github.com/bank-statementer/statementer/internal/config"
	"github.com/bank-statementer/statementer/internal/embedding"
	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/metrics"
	"github.com/bank-statementer/statementer/internal/normalizer"
	"github.com/bank-statementer/statementer/internal/statement"
	"github.com/bank-statementer/statementer/internal/store"
)

// Store drivers accepted in store.driver.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// Container holds all application dependencies and provides methods to access them.
// It is immutable after creation.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	normalizer  *normalizer.Normalizer
	store       store.TagRepository
	embedder    embedding.Embedder
	categorizer *categorizer.Categorizer
	parser      *statement.Parser
	registry    *prometheus.Registry
	metrics     *metrics.Metrics
	closers     []io.Closer
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := config.ConfigureLoggingFromConfig(cfg)
	return NewContainerWithLogger(ctx, cfg, logger)
}

// NewContainerWithLogger is NewContainer with a caller-supplied logger.
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	c := &Container{
		logger:     logger,
		config:     cfg,
		normalizer: normalizer.New(cfg.Categorization.ExtraStopwords...),
		registry:   metrics.NewRegistry(),
	}
	c.metrics = metrics.New(c.registry)

	tagStore, err := c.newStore()
	if err != nil {
		return nil, err
	}
	c.store = tagStore
	c.registry.MustRegister(metrics.NewTagStoreCollector(tagStore, logger))

	embedder, err := embedding.New(ctx, embedding.Options{
		Provider:          cfg.Embedding.Provider,
		Model:             cfg.Embedding.Model,
		Dimensions:        cfg.Embedding.Dimensions,
		RequestsPerMinute: cfg.Embedding.RequestsPerMinute,
		Timeout:           cfg.EmbeddingTimeout(),
		GeminiAPIKey:      cfg.Embedding.GeminiAPIKey,
		OpenAIAPIKey:      cfg.Embedding.OpenAIAPIKey,
		OpenAIBaseURL:     cfg.Embedding.OpenAIBaseURL,
	})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("error creating embedder: %w", err)
	}
	c.embedder = embedding.NewInstrumented(embedder, c.metrics)

	c.categorizer = categorizer.NewCategorizer(
		c.embedder,
		c.normalizer,
		c.store,
		categorizer.Config{
			Threshold:      cfg.Categorization.Threshold,
			PreserveOnMiss: cfg.Categorization.PreserveOnMiss,
		},
		logger,
		c.metrics,
	)
	c.parser = statement.NewParser(logger, c.metrics)

	logger.Info("Container initialized successfully",
		logging.F(logging.FieldProvider, c.embedder.Name()),
		logging.F("store_driver", cfg.Store.Driver),
		logging.F(logging.FieldThreshold, cfg.Categorization.Threshold))

	return c, nil
}

func (c *Container) newStore() (store.TagRepository, error) {
	switch c.config.Store.Driver {
	case "", DriverJSON:
		return store.NewJSONTagStore(c.config.Store.Path, c.normalizer, c.logger), nil
	case DriverSQLite:
		s, err := store.OpenSQLite(c.config.Store.Path, c.normalizer, c.logger)
		if err != nil {
			return nil, fmt.Errorf("error opening tag store: %w", err)
		}
		c.closers = append(c.closers, s)
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver: %s", c.config.Store.Driver)
	}
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the tag repository.
func (c *Container) GetStore() store.TagRepository {
	return c.store
}

// GetEmbedder returns the shared embedding model.
func (c *Container) GetEmbedder() embedding.Embedder {
	return c.embedder
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetParser returns the statement parser.
func (c *Container) GetParser() *statement.Parser {
	return c.parser
}

// GetNormalizer returns the description normalizer.
func (c *Container) GetNormalizer() *normalizer.Normalizer {
	return c.normalizer
}

// GetRegistry returns the Prometheus registry served on /metrics.
func (c *Container) GetRegistry() *prometheus.Registry {
	return c.registry
}

// GetMetrics returns the application collectors.
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// Close releases the embedder client and the database handle.
func (c *Container) Close() error {
	var firstErr error
	if c.embedder != nil {
		if err := embedding.Close(c.embedder); err != nil {
			firstErr = err
		}
	}
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.logger.Debug("Container closed")
	return firstErr
}
