package vector

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CollectionLifecycle(t *testing.T) {
	ctx := context.Background()
	client := openTestClient(t)

	_, err := client.GetCollection(ctx, "missing")
	assert.True(t, errors.Is(err, ErrCollectionNotFound))
	assert.True(t, errors.Is(client.DeleteCollection(ctx, "missing"), ErrCollectionNotFound))

	_, err = client.CreateCollection(ctx, "b")
	require.NoError(t, err)
	_, err = client.CreateCollection(ctx, "b")
	assert.True(t, errors.Is(err, ErrCollectionExists))

	a, err := client.GetOrCreateCollection(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", a.Name())

	names, err := client.ListCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)

	_, err = a.Add(ctx, []Document{{ID: "x", Embedding: []float32{1}}})
	require.NoError(t, err)
	require.NoError(t, client.DeleteCollection(ctx, "a"))

	a, err = client.CreateCollection(ctx, "a")
	require.NoError(t, err)
	n, err := a.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n, "records of a deleted collection must not resurface")
	assert.Zero(t, a.Dimension())
}

func TestClient_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "store")

	client, err := Open(ctx, dir)
	require.NoError(t, err)
	col, err := client.CreateCollection(ctx, "docs")
	require.NoError(t, err)
	_, err = col.Add(ctx, []Document{{ID: "x", Content: "kept", Embedding: []float32{1, 2}}})
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = os.Stat(filepath.Join(dir, DatabaseFile))
	require.NoError(t, err)

	client, err = Open(ctx, dir)
	require.NoError(t, err)
	defer client.Close()
	col, err = client.GetCollection(ctx, "docs")
	require.NoError(t, err)
	out, err := col.Query(ctx, []float32{1, 2}, 1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "kept", out[0].Content)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)
}
