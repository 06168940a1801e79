package store

import (
	"context"
	"sync"

	"github.com/bank-statementer/statementer/internal/models"
	"github.com/bank-statementer/statementer/internal/normalizer"
)

// MemoryTagStore is a process-local TagRepository for tests and dry runs.
type MemoryTagStore struct {
	mu         sync.Mutex
	tags       []models.Tag
	normalizer *normalizer.Normalizer
}

// NewMemoryTagStore returns a store seeded with initial, in order.
func NewMemoryTagStore(n *normalizer.Normalizer, initial ...models.Tag) *MemoryTagStore {
	tags := make([]models.Tag, len(initial))
	copy(tags, initial)
	return &MemoryTagStore{tags: tags, normalizer: normalizerOrDefault(n)}
}

func (s *MemoryTagStore) LoadTags(_ context.Context) ([]models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Tag, len(s.tags))
	copy(out, s.tags)
	return out, nil
}

func (s *MemoryTagStore) AppendIfNew(_ context.Context, tag models.Tag) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if containsEquivalent(s.normalizer, s.tags, tag) {
		return false, nil
	}
	s.tags = append(s.tags, tag)
	return true, nil
}
