package flat

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/viant/vec/search"

	"github.com/viant/docvec/index"
	"github.com/viant/docvec/vector"
)

// magic identifies a flat index artifact.
const magic = "DVFI"

// Index is an exact L2 index over raw vectors. It does not normalize; see
// Build and Search for the normalized file workflow.
type Index struct {
	dim  int
	data []float32 // row-major, len = n*dim
}

// New returns an empty index for vectors of the given dimension. A dimension
// of 0 is fixed by the first Add.
func New(dim int) *Index { return &Index{dim: dim} }

// Len returns the number of stored vectors.
func (i *Index) Len() int {
	if i.dim == 0 {
		return 0
	}
	return len(i.data) / i.dim
}

// Dimension returns the vector dimension.
func (i *Index) Dimension() int { return i.dim }

// Add appends vectors in order; their ordinals continue from Len.
func (i *Index) Add(vectors [][]float32) error {
	if len(vectors) == 0 {
		return nil
	}
	dim := i.dim
	if dim == 0 {
		dim = len(vectors[0])
	}
	if dim == 0 {
		return fmt.Errorf("flat: zero-length vector")
	}
	for j, v := range vectors {
		if len(v) != dim {
			return fmt.Errorf("%w: vector %d has %d, want %d", index.ErrDimensionMismatch, j, len(v), dim)
		}
	}
	i.dim = dim
	for _, v := range vectors {
		i.data = append(i.data, v...)
	}
	return nil
}

func (i *Index) row(n int) search.Float32s {
	return search.Float32s(i.data[n*i.dim : (n+1)*i.dim])
}

// Search returns the k nearest ordinals with their squared Euclidean
// distances. When k exceeds Len every stored vector is returned.
func (i *Index) Search(query []float32, k int) ([]int, []float64, error) {
	n := i.Len()
	if n == 0 || k <= 0 {
		return nil, nil, nil
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("%w: query has %d, index has %d", index.ErrDimensionMismatch, len(query), i.dim)
	}
	ordinals := make([]int, n)
	dists := make([]float64, n)
	for j := 0; j < n; j++ {
		d, err := vector.SquaredL2Distance(query, i.row(j))
		if err != nil {
			return nil, nil, err
		}
		ordinals[j] = j
		dists[j] = d
	}
	sort.SliceStable(ordinals, func(a, b int) bool { return dists[ordinals[a]] < dists[ordinals[b]] })
	if k > n {
		k = n
	}
	outOrd := make([]int, k)
	outDist := make([]float64, k)
	for r := 0; r < k; r++ {
		outOrd[r] = ordinals[r]
		outDist[r] = dists[ordinals[r]]
	}
	return outOrd, outDist, nil
}

// Vector returns a copy of the vector stored at ordinal n.
func (i *Index) Vector(n int) ([]float32, error) {
	if n < 0 || n >= i.Len() {
		return nil, fmt.Errorf("flat: ordinal %d out of range [0,%d)", n, i.Len())
	}
	return append([]float32(nil), i.row(n)...), nil
}

// MarshalBinary stores: magic, dim(uint32), n(uint32), then n*dim float32,
// all little-endian.
func (i *Index) MarshalBinary() ([]byte, error) {
	out := make([]byte, 0, len(magic)+8+4*len(i.data))
	out = append(out, magic...)
	out = binary.LittleEndian.AppendUint32(out, uint32(i.dim))
	out = binary.LittleEndian.AppendUint32(out, uint32(i.Len()))
	for _, v := range i.data {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out, nil
}

// UnmarshalBinary restores the index from bytes.
func (i *Index) UnmarshalBinary(data []byte) error {
	if len(data) < len(magic)+8 || string(data[:len(magic)]) != magic {
		return errors.New("flat: invalid index data")
	}
	off := len(magic)
	getU32 := func() uint32 { v := binary.LittleEndian.Uint32(data[off : off+4]); off += 4; return v }
	dim := getU32()
	n := getU32()
	if n > 0 && dim == 0 {
		return errors.New("flat: invalid index data: zero dimension")
	}
	// n*dim fits in uint64; the byte count may not
	count := uint64(n) * uint64(dim)
	payload := uint64(len(data) - off)
	if payload%4 != 0 || payload/4 != count {
		return fmt.Errorf("flat: truncated index data: have %d bytes for %d values", payload, count)
	}
	values := make([]float32, count)
	for j := range values {
		values[j] = math.Float32frombits(getU32())
	}
	i.dim, i.data = int(dim), values
	return nil
}

// Ensure Index satisfies the index.Index interface.
var _ index.Index = (*Index)(nil)
