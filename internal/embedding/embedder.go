// Package embedding turns normalized descriptions into vectors. The model is
// constructed once at startup and shared read-only by every request.
package embedding

import (
	"context"
	"math"
)

// Embedder maps texts to fixed-length vectors, one per input, in input order.
// Implementations hold no per-request state.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Name identifies the provider and model for logs and metrics.
	Name() string
}

// EmbedOne embeds a single text.
func EmbedOne(ctx context.Context, e Embedder, text string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, errVectorCount(1, len(vectors))
	}
	return vectors[0], nil
}

// CosineSimilarity returns the cosine of the angle between a and b, in [-1, 1].
// Mismatched lengths and zero vectors yield 0. The sum runs in float64.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// embedNonEmpty calls fn with only the non-blank texts, at most maxBatch at
// a time (0 means unbounded), and returns empty vectors for blank ones.
// Remote providers reject empty inputs and oversized batches.
func embedNonEmpty(texts []string, maxBatch int, fn func([]string) ([][]float32, error)) ([][]float32, error) {
	out := make([][]float32, len(texts))
	var (
		batch []string
		pos   []int
	)
	for i, t := range texts {
		if t == "" {
			out[i] = []float32{}
			continue
		}
		batch = append(batch, t)
		pos = append(pos, i)
	}

	for start := 0; start < len(batch); {
		end := len(batch)
		if maxBatch > 0 && end-start > maxBatch {
			end = start + maxBatch
		}

		vectors, err := fn(batch[start:end])
		if err != nil {
			return nil, err
		}
		if len(vectors) != end-start {
			return nil, errVectorCount(end-start, len(vectors))
		}
		for j, v := range vectors {
			out[pos[start+j]] = v
		}
		start = end
	}
	return out, nil
}
