package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.txt":       "second",
		"a.md":        "# first",
		".hidden":     "skip me",
		"sub/c.txt":   "nested",
		".git/config": "skip me too",
	})

	docs, err := Load(dir, Options{})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.md", docs[0].FileName)
	assert.Equal(t, "# first", docs[0].Content)
	assert.Equal(t, filepath.Join(dir, "b.txt"), docs[1].FilePath)
	assert.Equal(t, int64(len("second")), docs[1].Size)
	assert.Contains(t, docs[1].FileType, "text/plain")
	assert.False(t, docs[1].ModTime.IsZero())
}

func TestLoad_RecursiveAndExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt":     "a",
		"b.md":      "b",
		"sub/c.txt": "c",
	})

	docs, err := Load(dir, Options{Recursive: true, Extensions: []string{"txt"}})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.txt", docs[0].FileName)
	assert.Equal(t, filepath.Join(dir, "sub", "c.txt"), docs[1].FilePath)
}

func TestLoad_NoFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, Options{})
	assert.True(t, errors.Is(err, ErrNoFiles))

	writeFiles(t, dir, map[string]string{"a.pdf": "x"})
	_, err = Load(dir, Options{Extensions: []string{".txt"}})
	assert.True(t, errors.Is(err, ErrNoFiles))
}

func TestLoad_MissingFolder(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
