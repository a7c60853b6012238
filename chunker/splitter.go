// Package chunker splits document text into overlapping, token-bounded chunks.
//
// Text is first cut into pieces that each fit the chunk size (paragraphs,
// then sentences, then clauses, words and finally characters). Pieces are
// then merged greedily into chunks; each new chunk starts with the trailing
// pieces of the previous one that fit inside the overlap budget.
package chunker

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultChunkSize is the maximum number of tokens per chunk.
	DefaultChunkSize = 128
	// DefaultChunkOverlap is the token budget shared by consecutive chunks.
	DefaultChunkOverlap = 32
	// DefaultParagraphSeparator separates paragraphs.
	DefaultParagraphSeparator = "\n\n\n"
)

// ErrInvalidConfig is returned for unusable chunk size and overlap settings.
var ErrInvalidConfig = errors.New("chunker: invalid config")

// Config configures a Splitter. Zero values take the defaults.
type Config struct {
	ChunkSize          int    `yaml:"chunk_size"`
	ChunkOverlap       int    `yaml:"chunk_overlap"`
	ParagraphSeparator string `yaml:"paragraph_separator"`
	Encoding           string `yaml:"encoding"`
}

// Splitter produces chunks of at most ChunkSize tokens.
type Splitter struct {
	chunkSize    int
	chunkOverlap int
	paragraphSep string
	tokenizer    Tokenizer
}

// New returns a Splitter counting tokens with the configured BPE encoding.
func New(cfg Config) (*Splitter, error) {
	tok, err := NewBPE(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return NewWithTokenizer(cfg, tok)
}

// NewWithTokenizer returns a Splitter that counts tokens with tok.
func NewWithTokenizer(cfg Config, tok Tokenizer) (*Splitter, error) {
	if tok == nil {
		return nil, fmt.Errorf("%w: tokenizer is nil", ErrInvalidConfig)
	}
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultChunkSize
		if cfg.ChunkOverlap == 0 {
			cfg.ChunkOverlap = DefaultChunkOverlap
		}
	}
	if cfg.ParagraphSeparator == "" {
		cfg.ParagraphSeparator = DefaultParagraphSeparator
	}
	if cfg.ChunkSize < 0 {
		return nil, fmt.Errorf("%w: chunk size %d", ErrInvalidConfig, cfg.ChunkSize)
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be in [0, %d)", ErrInvalidConfig, cfg.ChunkOverlap, cfg.ChunkSize)
	}
	return &Splitter{
		chunkSize:    cfg.ChunkSize,
		chunkOverlap: cfg.ChunkOverlap,
		paragraphSep: cfg.ParagraphSeparator,
		tokenizer:    tok,
	}, nil
}

// ChunkSize returns the token limit per chunk.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// ChunkOverlap returns the overlap budget in tokens.
func (s *Splitter) ChunkOverlap() int { return s.chunkOverlap }

type piece struct {
	text   string
	tokens int
}

// Split returns the chunks of text in order. Empty or blank text yields none.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.merge(s.split(text))
}

func (s *Splitter) split(text string) []piece {
	n := s.tokenizer.Count(text)
	if n <= s.chunkSize {
		return []piece{{text: text, tokens: n}}
	}
	parts := s.splitByFns(text)
	if len(parts) <= 1 {
		// cannot be cut further; an oversized piece becomes its own chunk
		return []piece{{text: text, tokens: n}}
	}
	var out []piece
	for _, part := range parts {
		n := s.tokenizer.Count(part)
		if n <= s.chunkSize {
			out = append(out, piece{text: part, tokens: n})
			continue
		}
		out = append(out, s.split(part)...)
	}
	return out
}

// splitByFns tries paragraph then sentence boundaries; when neither cuts the
// text it falls back to clauses, words and characters.
func (s *Splitter) splitByFns(text string) []string {
	if parts := splitKeepSeparator(text, s.paragraphSep); len(parts) > 1 {
		return parts
	}
	if parts := splitSentences(text); len(parts) > 1 {
		return parts
	}
	var parts []string
	for _, fn := range []func(string) []string{
		splitClauses,
		func(t string) []string { return splitKeepSeparator(t, " ") },
		splitChars,
	} {
		if parts = fn(text); len(parts) > 1 {
			break
		}
	}
	return parts
}

func (s *Splitter) merge(pieces []piece) []string {
	var (
		chunks   []string
		current  []piece
		size     int
		newChunk = true
	)
	closeChunk := func() {
		chunks = append(chunks, joinPieces(current))
		last := current
		current = nil
		size = 0
		newChunk = true
		for i := len(last) - 1; i >= 0 && size+last[i].tokens <= s.chunkOverlap; i-- {
			size += last[i].tokens
			current = append([]piece{last[i]}, current...)
		}
	}

	for len(pieces) > 0 {
		p := pieces[0]
		if size+p.tokens > s.chunkSize && !newChunk {
			closeChunk()
			continue
		}
		// overlap gives way when it leaves no room for the next piece
		for newChunk && len(current) > 0 && size+p.tokens > s.chunkSize {
			size -= current[0].tokens
			current = current[1:]
		}
		current = append(current, p)
		size += p.tokens
		pieces = pieces[1:]
		newChunk = false
	}
	if !newChunk {
		chunks = append(chunks, joinPieces(current))
	}

	out := chunks[:0]
	for _, c := range chunks {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func joinPieces(pieces []piece) string {
	var sb strings.Builder
	for _, p := range pieces {
		sb.WriteString(p.text)
	}
	return sb.String()
}
