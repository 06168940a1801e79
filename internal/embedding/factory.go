package embedding

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Provider names accepted by New.
const (
	ProviderHashing = "hashing"
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
)

// Options selects and configures an Embedder.
type Options struct {
	Provider          string
	Model             string
	Dimensions        int
	RequestsPerMinute int
	Timeout           time.Duration
	GeminiAPIKey      string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
}

// New builds the Embedder named by opts.Provider. Remote providers are
// wrapped in a RateLimited decorator.
func New(ctx context.Context, opts Options) (Embedder, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Provider)) {
	case "", ProviderHashing:
		return NewHashingEmbedder(opts.Dimensions), nil
	case ProviderGemini:
		g, err := NewGeminiEmbedder(ctx, opts.GeminiAPIKey, opts.Model, opts.Timeout)
		if err != nil {
			return nil, err
		}
		return NewRateLimited(g, opts.RequestsPerMinute), nil
	case ProviderOpenAI:
		o, err := NewOpenAIEmbedder(opts.OpenAIAPIKey, opts.Model, opts.OpenAIBaseURL, opts.Timeout)
		if err != nil {
			return nil, err
		}
		return NewRateLimited(o, opts.RequestsPerMinute), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, opts.Provider)
	}
}

type unwrapper interface {
	Unwrap() Embedder
}

// Close releases e if it (or an Embedder it decorates) holds resources.
func Close(e Embedder) error {
	for {
		if c, ok := e.(io.Closer); ok {
			return c.Close()
		}
		u, ok := e.(unwrapper)
		if !ok {
			return nil
		}
		e = u.Unwrap()
	}
}
