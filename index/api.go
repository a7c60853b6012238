package index

import "errors"

// ErrEmptyBatch is returned when an index is built from zero vectors.
var ErrEmptyBatch = errors.New("index: cannot build an index from an empty vector batch")

// ErrDimensionMismatch is returned when a vector does not match the index
// dimension.
var ErrDimensionMismatch = errors.New("index: dimension mismatch")

// Index defines an ordinal-addressed vector index. The ordinal of a vector is
// its position in insertion order, so callers keep a parallel slice (chunk
// texts, ids) to resolve search hits.
type Index interface {
	// Add appends vectors in order. All vectors must share the index
	// dimension; the first Add on an empty index fixes it.
	Add(vectors [][]float32) error

	// Search returns up to k ordinals nearest to query with their squared Euclidean
	// distances, ascending by distance.
	Search(query []float32, k int) (ordinals []int, distances []float64, err error)

	// Len returns the number of stored vectors.
	Len() int

	// Dimension returns the vector dimension, 0 for an empty index.
	Dimension() int

	// MarshalBinary serializes the index into a byte slice.
	MarshalBinary() ([]byte, error)

	// UnmarshalBinary reconstructs the index from a serialized byte slice.
	UnmarshalBinary(data []byte) error
}
