// Package search answers queries against the flat index, the metadata store
// or both. Results of the two backends are reported side by side; they are
// never merged.
package search

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/viant/docvec/embedder"
	"github.com/viant/docvec/index/flat"
	"github.com/viant/docvec/vector"
)

// DefaultResults is the number of hits requested per backend.
const DefaultResults = 5

// Options controls a search.
type Options struct {
	Backend    Backend
	NResults   int
	IndexPath  string
	Collection string
	// Where filters metadata store hits by exact metadata value.
	Where map[string]any
}

func (o Options) withDefaults() Options {
	if o.Backend == 0 {
		o.Backend = Both
	}
	if o.NResults <= 0 {
		o.NResults = DefaultResults
	}
	if o.IndexPath == "" {
		o.IndexPath = flat.DefaultPath
	}
	if o.Collection == "" {
		o.Collection = vector.DefaultCollection
	}
	return o
}

// Hit is one search result. Flat index hits carry an Ordinal and, when the
// chunk list was supplied, the chunk Text. Metadata store hits carry ID, Text
// and Metadata.
type Hit struct {
	Ordinal  int
	ID       string
	Distance float64
	Text     string
	HasText  bool
	Metadata map[string]any
}

// Results holds the hits of each consulted backend, ascending by distance.
type Results struct {
	Query          string
	Backend        Backend
	Flat           []Hit
	Metadata       []Hit
	ChunksProvided bool
}

// Searcher queries the stores. Client may be nil when only the flat index
// is searched.
type Searcher struct {
	Client *vector.Client
}

// Search runs a query vector against the selected backends. chunks is the
// chunk list in index order and is only used to attach text to flat hits.
func (s *Searcher) Search(ctx context.Context, query []float32, chunks []string, opts Options) (*Results, error) {
	opts = opts.withDefaults()
	res := &Results{Backend: opts.Backend, ChunksProvided: len(chunks) > 0}

	if opts.Backend.usesFlat() {
		ordinals, distances, err := flat.Search(opts.IndexPath, query, opts.NResults)
		if err != nil {
			return nil, err
		}
		res.Flat = make([]Hit, len(ordinals))
		for i, ord := range ordinals {
			hit := Hit{Ordinal: ord, Distance: distances[i]}
			if res.ChunksProvided {
				hit.HasText = true
				hit.Text = "N/A"
				if ord < len(chunks) {
					hit.Text = chunks[ord]
				}
			}
			res.Flat[i] = hit
		}
	}

	if opts.Backend.usesMetadata() {
		if s.Client == nil {
			return nil, fmt.Errorf("search: metadata store is not open")
		}
		col, err := s.Client.GetCollection(ctx, opts.Collection)
		if err != nil {
			return nil, err
		}
		var qopts []vector.QueryOption
		for k, v := range opts.Where {
			qopts = append(qopts, vector.Where(k, v))
		}
		docs, err := col.Query(ctx, query, opts.NResults, qopts...)
		if err != nil {
			return nil, err
		}
		res.Metadata = make([]Hit, len(docs))
		for i, d := range docs {
			res.Metadata[i] = Hit{
				Ordinal:  i,
				ID:       d.ID,
				Distance: d.Distance,
				Text:     d.Content,
				HasText:  true,
				Metadata: d.Metadata,
			}
		}
	}

	log.WithFields(log.Fields{
		"backend":  opts.Backend,
		"flat":     len(res.Flat),
		"metadata": len(res.Metadata),
	}).Debug("search: done")
	return res, nil
}

// SearchText embeds text with e and searches with the resulting vector.
func (s *Searcher) SearchText(ctx context.Context, text string, e embedder.Embedder, chunks []string, opts Options) (*Results, error) {
	query, err := e.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("search: embed query: %w", err)
	}
	res, err := s.Search(ctx, query, chunks, opts)
	if err != nil {
		return nil, err
	}
	res.Query = text
	return res, nil
}
