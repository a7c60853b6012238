package vector

import (
	"context"
	"errors"
)

var (
	// ErrCollectionNotFound is returned when a named collection does not exist.
	ErrCollectionNotFound = errors.New("vector: collection not found")
	// ErrCollectionExists is returned by CreateCollection for a taken name.
	ErrCollectionExists = errors.New("vector: collection already exists")
	// ErrDimensionMismatch is returned when a vector does not match the
	// dimension fixed by the first record of a collection.
	ErrDimensionMismatch = errors.New("vector: dimension mismatch")
)

// Document is a single record of a collection.
type Document struct {
	// ID is the record identifier, unique within its collection.
	ID string

	// Content holds the chunk text.
	Content string

	// Metadata is stored as a JSON object. Integral numbers are returned as
	// int64, other numbers as float64.
	Metadata map[string]any

	// Embedding is the vector representation of Content. It is normalized
	// on insert and not loaded by Query.
	Embedding []float32

	// Distance is the squared Euclidean distance to the query vector, set by
	// Query.
	Distance float64
}

// Store defines the record-level API of a collection.
type Store interface {
	// Add inserts documents one by one and returns their IDs. A failure
	// part-way leaves the preceding documents stored.
	Add(ctx context.Context, docs []Document) ([]string, error)

	// Query returns up to k documents nearest to the query embedding,
	// ascending by distance.
	Query(ctx context.Context, queryEmbedding []float32, k int, opts ...QueryOption) ([]Document, error)

	// Delete removes the documents with the given IDs. Unknown IDs are ignored.
	Delete(ctx context.Context, ids ...string) error
}

// Ensure Collection satisfies the Store interface.
var _ Store = (*Collection)(nil)
