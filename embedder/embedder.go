// Package embedder maps text to fixed-dimension float32 vectors.
package embedder

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyText is returned when asked to embed an empty string.
var ErrEmptyText = errors.New("embedder: cannot embed empty text")

// Embedder generates embeddings. EmbedBatch returns one vector per input,
// in input order.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	ModelInfo() string
}

// Func converts free-form text into an embedding. It lets callers plug any
// provider in as an Embedder.
type Func func(ctx context.Context, text string) ([]float32, error)

// Embed calls f.
func (f Func) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	return f(ctx, text)
}

// EmbedBatch calls f once per text.
func (f Func) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedEach(ctx, f, texts)
}

// ModelInfo identifies the adapter.
func (f Func) ModelInfo() string { return "func" }

func embedEach(ctx context.Context, e Embedder, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		v, err := e.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderHash   = "hash"
)

// Config selects and configures an embedding provider.
type Config struct {
	Provider  string `yaml:"provider"`
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"api_key"`
	BatchSize int    `yaml:"batch_size"`
	Dimension int    `yaml:"dimension"`
}

// New builds the Embedder named by cfg.Provider.
func New(cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case "", ProviderOpenAI:
		return NewOpenAI(cfg)
	case ProviderHash:
		return NewHash(cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("embedder: unknown provider %q", cfg.Provider)
	}
}
