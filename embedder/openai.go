package embedder

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultModel is requested from servers configured through a base URL.
	DefaultModel     = "BAAI/bge-small-en-v1.5"
	DefaultBatchSize = 32
)

// OpenAIEmbedder calls an OpenAI-compatible /embeddings endpoint.
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	batchSize int
}

// NewOpenAI creates an embedder for cfg.BaseURL, or the public OpenAI API
// when no base URL is set. Servers hosting local models usually accept an
// empty API key.
func NewOpenAI(cfg Config) (*OpenAIEmbedder, error) {
	if cfg.BaseURL == "" && cfg.APIKey == "" {
		return nil, errors.New("embedder: OPENAI_API_KEY not set and no base_url configured")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	switch {
	case model != "":
	case cfg.BaseURL != "":
		model = DefaultModel
	default:
		model = string(openai.SmallEmbedding3)
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &OpenAIEmbedder{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		batchSize: batchSize,
	}, nil
}

// Embed generates an embedding for a single text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EmbedBatch sends texts in requests of at most batch size inputs.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	for i, text := range texts {
		if text == "" {
			return nil, fmt.Errorf("text %d: %w", i, ErrEmptyText)
		}
	}
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		batch, err := e.request(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, batch...)
		log.WithFields(log.Fields{"model": e.model, "done": end, "total": len(texts)}).Debug("embedded batch")
	}
	return out, nil
}

func (e *OpenAIEmbedder) request(ctx context.Context, texts []string) ([][]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("embedder: %s: %w", e.model, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedder: %s returned %d embeddings for %d inputs", e.model, len(resp.Data), len(texts))
	}
	out := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(texts) || out[d.Index] != nil {
			return nil, fmt.Errorf("embedder: %s returned bad index %d", e.model, d.Index)
		}
		out[d.Index] = d.Embedding
	}
	return out, nil
}

// ModelInfo returns the model name.
func (e *OpenAIEmbedder) ModelInfo() string {
	return e.model
}
