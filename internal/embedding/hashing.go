package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
)

// DefaultHashingDimensions matches the width of common sentence-embedding models.
const DefaultHashingDimensions = 384

const trigramWeight = 0.5

// HashingEmbedder is an offline embedder: word unigrams and character
// trigrams are hashed into a signed bag of features and L2-normalized.
// Identical texts map to identical vectors and lexically close texts score
// high, which is what tag matching needs when no remote model is configured.
type HashingEmbedder struct {
	dims int
}

// NewHashingEmbedder returns a HashingEmbedder of the given width;
// non-positive values select DefaultHashingDimensions.
func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = DefaultHashingDimensions
	}
	return &HashingEmbedder{dims: dims}
}

func (h *HashingEmbedder) Name() string {
	return fmt.Sprintf("hashing/%d", h.dims)
}

// Dimensions is the vector width.
func (h *HashingEmbedder) Dimensions() int {
	return h.dims
}

func (h *HashingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out[i] = h.vector(t)
	}
	return out, nil
}

func (h *HashingEmbedder) vector(text string) []float32 {
	acc := make([]float64, h.dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h.add(acc, "w:"+word, 1)

		padded := []rune("#" + word + "#")
		for i := 0; i+3 <= len(padded); i++ {
			h.add(acc, "t:"+string(padded[i:i+3]), trigramWeight)
		}
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	vec := make([]float32, h.dims)
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i, v := range acc {
		vec[i] = float32(v / norm)
	}
	return vec
}

// add hashes feature into a bucket; one hash bit picks the sign so that
// collisions cancel out on average instead of accumulating.
func (h *HashingEmbedder) add(acc []float64, feature string, weight float64) {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(feature))
	sum := hasher.Sum64()

	bucket := int(sum % uint64(h.dims))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	acc[bucket] += weight
}
