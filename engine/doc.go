// Package engine opens the modernc.org/sqlite driver used by the metadata
// store and registers the vec_l2 and vec_cosine SQL scalar functions so that
// nearest-neighbour ordering can be expressed directly in SQL:
//
//	SELECT id FROM records ORDER BY vec_l2(embedding, ?) LIMIT 5
//
// Embeddings are passed as little-endian float32 BLOBs.
package engine
