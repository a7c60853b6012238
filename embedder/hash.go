package embedder

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// DefaultHashDimension matches the output size of bge-small-en-v1.5.
const DefaultHashDimension = 384

// HashEmbedder is a deterministic bag-of-words model: each lower-cased word
// is hashed into one signed bucket. Texts sharing words land close together.
type HashEmbedder struct {
	dim int
}

// NewHash returns a HashEmbedder of the given dimension.
func NewHash(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = DefaultHashDimension
	}
	return &HashEmbedder{dim: dimension}
}

// Embed hashes the words of text. A text without words yields a zero vector.
func (e *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	vec := make([]float32, e.dim)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		h.Write([]byte(w))
		sum := h.Sum32()
		sign := float32(1)
		if sum&0x80000000 != 0 {
			sign = -1
		}
		vec[int(sum%uint32(e.dim))] += sign
	}
	return vec, nil
}

// EmbedBatch embeds each text in turn.
func (e *HashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedEach(ctx, e, texts)
}

// Dimension returns the vector length.
func (e *HashEmbedder) Dimension() int { return e.dim }

// ModelInfo names the model and its dimension.
func (e *HashEmbedder) ModelInfo() string {
	return fmt.Sprintf("hash-%d", e.dim)
}
