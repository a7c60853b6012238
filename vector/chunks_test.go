package vector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreChunks(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)

	chunks := []string{"alpha", "beta", "gamma"}
	vectors := [][]float32{{1, 0}, {0, 1}, {1, 1}}
	metadata := []map[string]any{
		{"source": "a.txt", "file_path": "data/a.txt", "chunk_index": 0},
		{"source": "a.txt", "file_path": "data/a.txt", "chunk_index": 1},
	}

	col, err := StoreChunks(ctx, client, DefaultCollection, chunks, vectors, metadata)
	require.NoError(t, err)

	got, err := col.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "a.txt_0", got[0].ID)
	assert.Equal(t, "a.txt_1", got[1].ID)
	assert.Equal(t, "chunk_2_2", got[2].ID)
	assert.Equal(t, int64(1), got[1].Metadata["chunk_id"])
	assert.Equal(t, "data/a.txt", got[1].Metadata["file_path"])
	assert.Equal(t, "chunk_2", got[2].Metadata["source"])
	assert.Equal(t, int64(2), got[2].Metadata["chunk_id"])

	// caller metadata is not modified
	_, ok := metadata[0]["chunk_id"]
	assert.False(t, ok)
}

func TestStoreChunks_ReindexReplaces(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)

	chunks := []string{"one", "two"}
	vectors := [][]float32{{1, 0}, {0, 1}}
	for i := 0; i < 2; i++ {
		col, err := StoreChunks(ctx, client, "docs", chunks, vectors, nil)
		require.NoError(t, err)
		n, err := col.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n, "run %d", i)
	}
}

func TestStoreChunks_LengthMismatch(t *testing.T) {
	client := openTestClient(t)
	_, err := StoreChunks(context.Background(), client, "docs", []string{"a"}, nil, nil)
	require.Error(t, err)
}
