package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "text-embedding-004"

// geminiMaxBatch is the most requests BatchEmbedContents accepts.
const geminiMaxBatch = 100

// GeminiEmbedder embeds texts with a Google Gemini embedding model.
type GeminiEmbedder struct {
	client  *genai.Client
	model   *genai.EmbeddingModel
	name    string
	timeout time.Duration
}

// NewGeminiEmbedder connects to the Gemini API. Close releases the client.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	em := client.EmbeddingModel(model)
	em.TaskType = genai.TaskTypeSemanticSimilarity

	return &GeminiEmbedder{
		client:  client,
		model:   em,
		name:    "gemini/" + model,
		timeout: timeout,
	}, nil
}

func (g *GeminiEmbedder) Name() string {
	return g.name
}

func (g *GeminiEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return embedNonEmpty(texts, geminiMaxBatch, func(batch []string) ([][]float32, error) {
		callCtx := ctx
		if g.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		b := g.model.NewBatch()
		for _, t := range batch {
			b.AddContent(genai.Text(t))
		}

		res, err := g.model.BatchEmbedContents(callCtx, b)
		if err != nil {
			return nil, fmt.Errorf("gemini batch embed: %w", err)
		}

		vectors := make([][]float32, len(res.Embeddings))
		for i, e := range res.Embeddings {
			if e == nil {
				return nil, fmt.Errorf("gemini returned an empty embedding at position %d", i)
			}
			vectors[i] = e.Values
		}
		return vectors, nil
	})
}

// Close releases the underlying gRPC connection.
func (g *GeminiEmbedder) Close() error {
	return g.client.Close()
}
