// Package store persists the user-curated tags that drive categorization.
// The JSON file store is the default; an in-memory store backs tests and a
// SQLite store is available for operators who prefer a database file.
package store

import (
	"context"

	"github.com/bank-statementer/statementer/internal/models"
	"github.com/bank-statementer/statementer/internal/normalizer"
)

// TagRepository is the single source of truth for categories.
type TagRepository interface {
	// LoadTags returns all tags in insertion order.
	LoadTags(ctx context.Context) ([]models.Tag, error)
	// AppendIfNew adds tag unless an equivalent tag (same normalized
	// description, identical category) exists. It reports whether the
	// store changed.
	AppendIfNew(ctx context.Context, tag models.Tag) (bool, error)
}

// containsEquivalent reports whether tags already holds tag's
// (normalized description, category) pair.
func containsEquivalent(n *normalizer.Normalizer, tags []models.Tag, tag models.Tag) bool {
	key := n.Normalize(tag.Description)
	for _, existing := range tags {
		if existing.Category == tag.Category && n.Normalize(existing.Description) == key {
			return true
		}
	}
	return false
}

func normalizerOrDefault(n *normalizer.Normalizer) *normalizer.Normalizer {
	if n == nil {
		return normalizer.Default()
	}
	return n
}
