package categorizer

import (
	"context"
	"math"

	"github.com/bank-statementer/statementer/internal/embedding"
	"github.com/bank-statementer/statementer/internal/models"
	"github.com/bank-statementer/statementer/internal/normalizer"
)

// Index pairs every tag with the embedding of its normalized description,
// in store order. It is built per request and never persisted.
type Index struct {
	tags    []models.Tag
	vectors [][]float32
}

// BuildIndex embeds the normalized description of every tag with e.
// An empty tag list yields a nil Index and no embedding call.
func BuildIndex(ctx context.Context, e embedding.Embedder, n *normalizer.Normalizer, tags []models.Tag) (*Index, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	texts := make([]string, len(tags))
	for i, tag := range tags {
		texts[i] = n.Normalize(tag.Description)
	}

	vectors, err := e.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(tags) {
		return nil, errVectorCount
	}

	owned := make([]models.Tag, len(tags))
	copy(owned, tags)
	return &Index{tags: owned, vectors: vectors}, nil
}

// Len is the number of indexed tags; zero for a nil Index.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.tags)
}

// Tag returns the i-th indexed tag.
func (ix *Index) Tag(i int) models.Tag {
	return ix.tags[i]
}

// best returns the position and score of the highest cosine similarity to
// v. Ties keep the earliest tag. pos is -1 for an empty index.
func (ix *Index) best(v []float32) (pos int, score float64) {
	pos, score = -1, math.Inf(-1)
	for i, tv := range ix.vectors {
		s := embedding.CosineSimilarity(v, tv)
		if s > score {
			pos, score = i, s
		}
	}
	return pos, score
}
