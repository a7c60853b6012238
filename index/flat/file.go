package flat

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/viant/docvec/index"
	"github.com/viant/docvec/vector"
)

// DefaultPath is the artifact location used when none is configured.
const DefaultPath = "vector_index.faiss"

// Build normalizes vectors, indexes them in input order and writes the
// artifact to path, replacing any previous file. An empty batch fails with
// index.ErrEmptyBatch and leaves path untouched.
func Build(path string, vectors [][]float32) (*Index, error) {
	if len(vectors) == 0 {
		return nil, index.ErrEmptyBatch
	}
	idx := New(len(vectors[0]))
	if err := idx.Add(vector.NormalizeBatch(vectors)); err != nil {
		return nil, err
	}
	if err := Save(path, idx); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"vectors": idx.Len(), "dimension": idx.Dimension(), "path": path}).
		Infof("Built flat index with %d normalized vectors, saved to %s", idx.Len(), path)
	return idx, nil
}

// Search loads the artifact at path, normalizes query the same way Build
// does and returns up to n nearest ordinals with their distances.
func Search(path string, query []float32, n int) ([]int, []float64, error) {
	idx, err := Load(path)
	if err != nil {
		return nil, nil, err
	}
	return idx.Search(vector.Normalize(query), n)
}

// Save writes idx to path through a temporary file in the same directory.
func Save(path string, idx *Index) error {
	data, err := idx.MarshalBinary()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("flat: create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("flat: write %s: %w", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("flat: write %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("flat: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("flat: write %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("flat: write %s: %w", path, err)
	}
	return nil
}

// Load reads an artifact written by Save.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("flat: read index: %w", err)
	}
	idx := &Index{}
	if err := idx.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("flat: load %s: %w", path, err)
	}
	return idx, nil
}
