package engine

import (
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/viant/vec/search"
	sqlite "modernc.org/sqlite"
)

// registerVectorFunctions makes vec_cosine, vec_l2 and vec_l2sq available on
// new connections. The driver rejects duplicate names, which only happens when a
// caller registered them on its own, so errors are ignored.
func registerVectorFunctions() {
	_ = sqlite.RegisterDeterministicScalarFunction("vec_cosine", 2, vecCosine)
	_ = sqlite.RegisterDeterministicScalarFunction("vec_l2", 2, vecL2)
	_ = sqlite.RegisterDeterministicScalarFunction("vec_l2sq", 2, vecL2Squared)
}

func embeddingArgs(name string, args []driver.Value) (search.Float32s, search.Float32s, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s: expected 2 arguments, got %d", name, len(args))
	}
	a, err := asEmbedding(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	b, err := asEmbedding(args[1])
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name, err)
	}
	if a != nil && b != nil && len(a) != len(b) {
		return nil, nil, fmt.Errorf("%s: dimension mismatch %d vs %d", name, len(a), len(b))
	}
	return a, b, nil
}

// vecCosine returns the cosine similarity of two embeddings, NULL when either
// side is NULL.
func vecCosine(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := embeddingArgs("vec_cosine", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	if a.Magnitude() == 0 || b.Magnitude() == 0 {
		return nil, fmt.Errorf("vec_cosine: zero-magnitude vector")
	}
	return float64(1 - a.CosineDistance(b)), nil
}

// vecL2 returns the Euclidean distance of two embeddings, NULL when either
// side is NULL.
func vecL2(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := embeddingArgs("vec_l2", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	return float64(a.EuclideanDistance(b)), nil
}

// vecL2Squared returns the squared Euclidean distance, the value reported by
// flat L2 indexes. NULL when either side is NULL.
func vecL2Squared(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := embeddingArgs("vec_l2sq", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	d := float64(a.EuclideanDistance(b))
	return d * d, nil
}

// asEmbedding decodes a BLOB argument. The vector package owns the canonical
// codec; it is repeated here because vector imports engine.
func asEmbedding(arg driver.Value) (search.Float32s, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		if len(v)%4 != 0 {
			return nil, fmt.Errorf("invalid embedding blob length %d", len(v))
		}
		out := make(search.Float32s, len(v)/4)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(v[i*4:]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported argument type %T for embedding; want BLOB", arg)
	}
}
