package chunker

import (
	"fmt"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

// DefaultEncoding is the BPE encoding used for token counting.
const DefaultEncoding = "cl100k_base"

// Tokenizer counts the tokens of a text fragment.
type Tokenizer interface {
	Count(text string) int
}

// TokenizerFunc adapts a plain function to Tokenizer.
type TokenizerFunc func(text string) int

// Count calls f(text).
func (f TokenizerFunc) Count(text string) int { return f(text) }

var loaderOnce sync.Once

// BPE counts tokens with a tiktoken encoding. Rank files are embedded in the
// binary so no network access happens at runtime.
type BPE struct {
	enc *tiktoken.Tiktoken
}

// NewBPE returns a tokenizer for the named encoding, DefaultEncoding when empty.
func NewBPE(encoding string) (*BPE, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	loaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("chunker: encoding %s: %w", encoding, err)
	}
	return &BPE{enc: enc}, nil
}

// Count returns the number of BPE tokens in text.
func (b *BPE) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(b.enc.Encode(text, nil, nil))
}
