// Package pipeline runs index-time ingestion: load, chunk, embed, then write
// the flat index and the metadata store.
//
// The pipeline stays embedding-agnostic: any embedder.Embedder can be
// supplied, including embedder.Func for plain functions.
package pipeline

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/viant/docvec/chunker"
	"github.com/viant/docvec/embedder"
	"github.com/viant/docvec/index/flat"
	"github.com/viant/docvec/loader"
	"github.com/viant/docvec/vector"
)

// Indexer ties the ingestion stages together.
type Indexer struct {
	DataDir     string
	LoadOptions loader.Options
	Splitter    *chunker.Splitter
	Embedder    embedder.Embedder
	IndexPath   string
	Client      *vector.Client
	Collection  string
}

// Report summarises a completed Run.
type Report struct {
	Documents  int
	Chunks     int
	Dimension  int
	IndexPath  string
	StorePath  string
	Collection string
}

// NewIndexer validates the collaborators and fills in default locations.
// client may be nil for an Indexer only used through Chunks.
func NewIndexer(dataDir string, splitter *chunker.Splitter, embed embedder.Embedder, client *vector.Client) (*Indexer, error) {
	if splitter == nil {
		return nil, fmt.Errorf("pipeline: splitter is nil")
	}
	if embed == nil {
		return nil, fmt.Errorf("pipeline: embedder is nil")
	}
	return &Indexer{
		DataDir:    dataDir,
		Splitter:   splitter,
		Embedder:   embed,
		IndexPath:  flat.DefaultPath,
		Client:     client,
		Collection: vector.DefaultCollection,
	}, nil
}

// Chunks loads DataDir and returns the chunk texts with their metadata, in
// the order Run stores them.
func (ix *Indexer) Chunks(ctx context.Context) ([]string, []chunker.Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	docs, err := loader.Load(ix.DataDir, ix.LoadOptions)
	if err != nil {
		return nil, nil, err
	}
	chunks, metadata := ix.Splitter.ChunkDocuments(docs)
	return chunks, metadata, nil
}

// Run indexes DataDir into both stores. Each run replaces the previous flat
// index file and collection.
func (ix *Indexer) Run(ctx context.Context) (*Report, error) {
	if ix.Client == nil {
		return nil, fmt.Errorf("pipeline: metadata store is not open")
	}
	docs, err := loader.Load(ix.DataDir, ix.LoadOptions)
	if err != nil {
		return nil, err
	}
	chunks, metadata := ix.Splitter.ChunkDocuments(docs)

	var vectors [][]float32
	if len(chunks) > 0 {
		log.WithFields(log.Fields{"model": ix.Embedder.ModelInfo(), "chunks": len(chunks)}).Info("Embedding chunks")
		if vectors, err = ix.Embedder.EmbedBatch(ctx, chunks); err != nil {
			return nil, fmt.Errorf("pipeline: embed: %w", err)
		}
	}

	idx, err := flat.Build(ix.IndexPath, vectors)
	if err != nil {
		return nil, err
	}
	if _, err := vector.StoreChunks(ctx, ix.Client, ix.Collection, chunks, vectors, chunker.Maps(metadata)); err != nil {
		return nil, err
	}

	return &Report{
		Documents:  len(docs),
		Chunks:     len(chunks),
		Dimension:  idx.Dimension(),
		IndexPath:  ix.IndexPath,
		StorePath:  ix.Client.Path(),
		Collection: ix.Collection,
	}, nil
}

// Print writes the completion summary.
func (r *Report) Print(w io.Writer) error {
	_, err := fmt.Fprintf(w, "\nIndexing complete!\n  - Flat index saved to: %s\n  - Collection %q saved to: %s\n",
		r.IndexPath, r.Collection, r.StorePath)
	return err
}
