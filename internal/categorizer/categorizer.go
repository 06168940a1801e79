// Package categorizer assigns categories to transactions by comparing the
// embedding of each normalized description with the embeddings of the
// user-curated tags, and learns new tags from user corrections.
package categorizer

import (
	"context"
	"fmt"

	"github.com/bank-statementer/statementer/internal/embedding"
	"github.com/bank-statementer/statementer/internal/logging"
	"github.com/bank-statementer/statementer/internal/metrics"
	"github.com/bank-statementer/statementer/internal/models"
	"github.com/bank-statementer/statementer/internal/normalizer"
	"github.com/bank-statementer/statementer/internal/parsererror"
	"github.com/bank-statementer/statementer/internal/store"
)

// DefaultThreshold is the similarity a match must exceed.
const DefaultThreshold = 0.7

// Config tunes matching.
type Config struct {
	// Threshold is exclusive: a score equal to it does not match.
	Threshold float64
	// PreserveOnMiss keeps a transaction's existing category when a
	// re-run after a correction finds no match.
	PreserveOnMiss bool
}

// DefaultConfig returns the threshold of 0.7 with PreserveOnMiss enabled.
func DefaultConfig() Config {
	return Config{Threshold: DefaultThreshold, PreserveOnMiss: true}
}

// Match is the outcome for one description.
type Match struct {
	Category   string
	Score      float64 // best similarity; 0 when nothing was compared
	Matched    bool
	Tag        models.Tag // the winning tag when Matched
	Normalized string
}

// Categorizer is safe for concurrent use: it holds only read-only
// collaborators, and the index is passed in by the caller.
type Categorizer struct {
	embedder   embedding.Embedder
	normalizer *normalizer.Normalizer
	repo       store.TagRepository
	config     Config
	logger     logging.Logger
	metrics    *metrics.Metrics
}

// NewCategorizer wires a Categorizer. normalizer, logger and metrics may be
// nil.
func NewCategorizer(e embedding.Embedder, n *normalizer.Normalizer, repo store.TagRepository, cfg Config, logger logging.Logger, m *metrics.Metrics) *Categorizer {
	if n == nil {
		n = normalizer.Default()
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Categorizer{
		embedder:   e,
		normalizer: n,
		repo:       repo,
		config:     cfg,
		logger:     logger,
		metrics:    m,
	}
}

// Threshold returns the configured similarity threshold.
func (c *Categorizer) Threshold() float64 {
	return c.config.Threshold
}

func (c *Categorizer) accept(score float64) bool {
	return score > c.config.Threshold
}

// LoadIndex reads the store and builds a fresh Index from it.
func (c *Categorizer) LoadIndex(ctx context.Context) (*Index, error) {
	tags, err := c.repo.LoadTags(ctx)
	if err != nil {
		return nil, &parsererror.CategorizationError{Description: "tag store", Stage: StageStore, Err: err}
	}
	ix, err := BuildIndex(ctx, c.embedder, c.normalizer, tags)
	if err != nil {
		return nil, &parsererror.CategorizationError{Description: "tag store", Stage: StageIndex, Err: err}
	}
	if c.metrics != nil && ix != nil {
		c.metrics.IndexBuilds.Inc()
	}
	c.logger.Debug("Built embedding index",
		logging.F(logging.FieldTagCount, ix.Len()),
		logging.F(logging.FieldModel, c.embedder.Name()))
	return ix, nil
}

// Categorize returns the category for description against index.
func (c *Categorizer) Categorize(ctx context.Context, description string, index *Index) (string, error) {
	m, err := c.Match(ctx, description, index)
	if err != nil {
		return "", err
	}
	return m.Category, nil
}

// Match is Categorize with the score and winning tag.
func (c *Categorizer) Match(ctx context.Context, description string, index *Index) (Match, error) {
	matches, err := c.matchAll(ctx, []string{description}, index)
	if err != nil {
		return Match{}, err
	}
	return matches[0], nil
}

// matchAll normalizes and embeds descriptions in one call, then finds the
// best tag for each. A nil index short-circuits to Uncategorized.
func (c *Categorizer) matchAll(ctx context.Context, descriptions []string, index *Index) ([]Match, error) {
	out := make([]Match, len(descriptions))
	normalized := make([]string, len(descriptions))
	for i, d := range descriptions {
		normalized[i] = c.normalizer.Normalize(d)
		out[i] = Match{Category: models.CategoryUncategorized, Normalized: normalized[i]}
	}
	if index.Len() == 0 || len(descriptions) == 0 {
		return out, nil
	}

	vectors, err := c.embedder.Embed(ctx, normalized)
	if err == nil && len(vectors) != len(normalized) {
		err = errVectorCount
	}
	if err != nil {
		desc := descriptions[0]
		if len(descriptions) > 1 {
			desc = fmt.Sprintf("%d descriptions", len(descriptions))
		}
		return nil, &parsererror.CategorizationError{Description: desc, Stage: StageEmbed, Err: err}
	}

	for i, v := range vectors {
		pos, score := index.best(v)
		if pos < 0 {
			continue
		}
		out[i].Score = score
		if c.accept(score) {
			out[i].Matched = true
			out[i].Tag = index.Tag(pos)
			out[i].Category = out[i].Tag.Category
		}
		c.logger.Debug("Scored description",
			logging.F(logging.FieldDescription, descriptions[i]),
			logging.F(logging.FieldNormalized, normalized[i]),
			logging.F(logging.FieldCategory, out[i].Category),
			logging.F(logging.FieldScore, score),
			logging.F(logging.FieldThreshold, c.config.Threshold))
	}
	return out, nil
}

// CategorizeTransactions assigns a category to every transaction using a
// freshly built index. Existing categories are overwritten.
func (c *Categorizer) CategorizeTransactions(ctx context.Context, txs []models.Transaction) ([]models.Transaction, error) {
	index, err := c.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}
	return c.apply(ctx, txs, index, false)
}

// CategorizeAndUpdate records the user's correction ref in the tag store
// (unless an equivalent tag exists), rebuilds the index, and re-categorizes
// the whole batch. The batch is returned in the same order.
func (c *Categorizer) CategorizeAndUpdate(ctx context.Context, ref models.Tag, txs []models.Transaction) ([]models.Transaction, error) {
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReference, err)
	}

	added, err := c.repo.AppendIfNew(ctx, ref)
	if err != nil {
		return nil, &parsererror.CategorizationError{Description: ref.Description, Stage: StageStore, Err: err}
	}
	if added && c.metrics != nil {
		c.metrics.TagsAdded.Inc()
	}
	c.logger.Info("Processed category correction",
		logging.F(logging.FieldDescription, ref.Description),
		logging.F(logging.FieldCategory, ref.Category),
		logging.F("added", added))

	index, err := c.LoadIndex(ctx)
	if err != nil {
		return nil, err
	}
	return c.apply(ctx, txs, index, c.config.PreserveOnMiss)
}

func (c *Categorizer) apply(ctx context.Context, txs []models.Transaction, index *Index, preserve bool) ([]models.Transaction, error) {
	descriptions := make([]string, len(txs))
	for i, tx := range txs {
		descriptions[i] = tx.Description
	}

	matches, err := c.matchAll(ctx, descriptions, index)
	if err != nil {
		return nil, err
	}

	out := make([]models.Transaction, len(txs))
	var stats Stats
	for i, tx := range txs {
		m := matches[i]
		result := metrics.ResultUncategorized
		switch {
		case m.Matched:
			tx.Category = m.Category
			result = metrics.ResultMatched
		case preserve && tx.Category != "":
			result = metrics.ResultPreserved
		default:
			tx.Category = models.CategoryUncategorized
		}
		stats.Record(result)
		c.metrics.ObserveCategorization(result, m.Score, index.Len() > 0)
		out[i] = tx
	}

	stats.LogSummary(c.logger, index.Len())
	return out, nil
}
