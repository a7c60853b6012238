package flat

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/docvec/index"
	"github.com/viant/docvec/vector"
)

func TestBuild_EmptyBatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	_, err := Build(path, nil)
	assert.True(t, errors.Is(err, index.ErrEmptyBatch))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no artifact may be written for an empty batch")
}

func TestBuildSearch_SelfIsNearest(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	vectors := [][]float32{
		{1, 0, 0, 0},
		{0, 2, 0, 0},
		{0, 0, 3, 1},
		{1, 1, 1, 1},
		{-1, 0.5, 0, 2},
	}
	idx, err := Build(path, vectors)
	require.NoError(t, err)
	assert.Equal(t, len(vectors), idx.Len())

	for i, v := range vectors {
		ords, dists, err := Search(path, v, 1)
		require.NoError(t, err)
		require.Len(t, ords, 1)
		assert.Equal(t, i, ords[0])
		assert.InDelta(t, 0, dists[0], 1e-5)
	}
}

func TestBuild_StoresNormalizedVectors(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	_, err := Build(path, [][]float32{{3, 4}, {0, 10}})
	require.NoError(t, err)

	idx, err := Load(path)
	require.NoError(t, err)
	for n := 0; n < idx.Len(); n++ {
		v, err := idx.Vector(n)
		require.NoError(t, err)
		assert.InDelta(t, 1, vector.Norm(v), 1e-6)
	}
}

func TestBuild_OverwritesPreviousArtifact(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", DefaultPath)
	_, err := Build(path, [][]float32{{1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, err)
	_, err = Build(path, [][]float32{{1, 0, 0}})
	require.NoError(t, err)

	idx, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, 3, idx.Dimension())

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSearch_MoreResultsThanVectors(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	_, err := Build(path, [][]float32{{1, 0}, {0, 1}})
	require.NoError(t, err)

	ords, dists, err := Search(path, []float32{1, 0.1}, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, ords)
	assert.Len(t, dists, 2)
	assert.True(t, dists[0] <= dists[1])
}

func TestSearch_MissingFile(t *testing.T) {
	_, _, err := Search(filepath.Join(t.TempDir(), "missing.faiss"), []float32{1}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
