package embedding

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "text-embedding-3-small"

// openAIMaxBatch is the most inputs one embeddings request accepts.
const openAIMaxBatch = 2048

// OpenAIEmbedder embeds texts with the OpenAI embeddings endpoint, or any
// server speaking the same API when a base URL is given.
type OpenAIEmbedder struct {
	client  *openai.Client
	model   openai.EmbeddingModel
	timeout time.Duration
}

// NewOpenAIEmbedder builds an OpenAIEmbedder. baseURL may be empty.
func NewOpenAIEmbedder(apiKey, model, baseURL string, timeout time.Duration) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = DefaultOpenAIModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIEmbedder{
		client:  openai.NewClientWithConfig(cfg),
		model:   openai.EmbeddingModel(model),
		timeout: timeout,
	}, nil
}

func (o *OpenAIEmbedder) Name() string {
	return "openai/" + string(o.model)
}

func (o *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return embedNonEmpty(texts, openAIMaxBatch, func(batch []string) ([][]float32, error) {
		callCtx := ctx
		if o.timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, o.timeout)
			defer cancel()
		}

		resp, err := o.client.CreateEmbeddings(callCtx, openai.EmbeddingRequest{
			Input: batch,
			Model: o.model,
		})
		if err != nil {
			return nil, fmt.Errorf("openai create embeddings: %w", err)
		}

		data := resp.Data
		sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

		vectors := make([][]float32, len(data))
		for i, d := range data {
			vectors[i] = d.Embedding
		}
		return vectors, nil
	})
}
