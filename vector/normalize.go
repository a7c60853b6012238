package vector

import "github.com/viant/vec/search"

// Epsilon is added to every norm before division so that an all-zero
// embedding normalizes to an all-zero vector instead of NaNs.
const Epsilon = 1e-8

// Norm returns the Euclidean length of v.
func Norm(v []float32) float64 {
	if len(v) == 0 {
		return 0
	}
	return float64(search.Float32s(v).Magnitude())
}

// Normalize returns a copy of v scaled to unit length. Both backends store
// and query normalized vectors, so Euclidean distance between them is a
// monotonic function of cosine similarity.
func Normalize(v []float32) []float32 {
	out := make([]float32, len(v))
	inv := 1.0 / (Norm(v) + Epsilon)
	for i, x := range v {
		out[i] = float32(float64(x) * inv)
	}
	return out
}

// NormalizeBatch normalizes every row of vectors independently.
func NormalizeBatch(vectors [][]float32) [][]float32 {
	out := make([][]float32, len(vectors))
	for i, v := range vectors {
		out[i] = Normalize(v)
	}
	return out
}
