// Package index defines the flat nearest-neighbour index abstraction: an
// ordinal-addressed set of vectors that answers exact kNN queries by
// Euclidean distance and serializes to a single artifact.
// The implementation lives in index/flat.
package index
