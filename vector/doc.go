// Package vector holds the metadata-aware vector store and the numeric
// primitives shared by both search backends. It includes:
//   - Normalize / NormalizeBatch: epsilon-guarded L2 normalization
//   - L2Distance / CosineSimilarity
//   - Embedding encoding (BLOB)
//   - Client: an explicit handle over an on-disk SQLite store
//   - Collection: named sets of (text, vector, metadata) records with
//     nearest-neighbour queries and metadata filters
//   - StoreChunks: delete-and-recreate indexing of a chunk batch
package vector
