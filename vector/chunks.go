package vector

import (
	"context"
	"errors"
	"fmt"
	"maps"

	log "github.com/sirupsen/logrus"
)

// DefaultCollection is the collection name used when none is configured.
const DefaultCollection = "documents"

// StoreChunks replaces the named collection with one record per chunk.
//
// Any existing collection of that name is deleted first; a missing one is
// not an error. Record i gets the ID "{source}_{i}" and its metadata is a
// copy of metadata[i] plus chunk_id = i. Without metadata for position i the
// record is labelled {source: "chunk_<i>", chunk_id: i}. Records are inserted
// individually, so a failure part-way leaves a partial collection behind.
func StoreChunks(ctx context.Context, client *Client, name string, chunks []string, vectors [][]float32, metadata []map[string]any) (*Collection, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("vector: %d chunks but %d vectors", len(chunks), len(vectors))
	}
	if err := client.DeleteCollection(ctx, name); err != nil && !errors.Is(err, ErrCollectionNotFound) {
		return nil, err
	}
	col, err := client.CreateCollection(ctx, name)
	if err != nil {
		return nil, err
	}

	for i, chunk := range chunks {
		var meta map[string]any
		if i < len(metadata) && metadata[i] != nil {
			meta = maps.Clone(metadata[i])
		} else {
			meta = map[string]any{"source": fmt.Sprintf("chunk_%d", i)}
		}
		meta["chunk_id"] = i
		source, ok := meta["source"].(string)
		if !ok || source == "" {
			source = fmt.Sprintf("chunk_%d", i)
		}
		doc := Document{
			ID:        fmt.Sprintf("%s_%d", source, i),
			Content:   chunk,
			Metadata:  meta,
			Embedding: vectors[i],
		}
		if _, err := col.Add(ctx, []Document{doc}); err != nil {
			return col, err
		}
	}

	log.WithFields(log.Fields{
		"collection": name,
		"records":    len(chunks),
		"path":       client.Path(),
	}).Infof("Stored %d chunks in collection %q (with normalized embeddings)", len(chunks), name)
	return col, nil
}
