package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// chdir changes the working directory for the duration of the test,
// restoring the original one on cleanup (equivalent to Go 1.24 t.Chdir).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("DOCVEC_LOG_LEVEL", "")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, "vector_index.faiss", c.IndexPath)
	assert.Equal(t, "./chroma_db", c.StorePath)
	assert.Equal(t, "documents", c.Collection)
	assert.Equal(t, 128, c.Chunker.ChunkSize)
	assert.Equal(t, 32, c.Chunker.ChunkOverlap)
	assert.Equal(t, "openai", c.Embedder.Provider)
	assert.Equal(t, "info", c.Logging.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("DOCS_DIR", "corpus")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("DOCVEC_EMBEDDER_MODEL", "env-model")
	t.Setenv("DOCVEC_LOG_LEVEL", "debug")
	writeFile(t, dir, ".env", "DOCVEC_EMBEDDER_URL=http://localhost:9000/v1\n")
	t.Cleanup(func() { os.Unsetenv("DOCVEC_EMBEDDER_URL") })

	path := writeFile(t, dir, "custom.yaml", `
data_dir: ${DOCS_DIR}
collection: notes
chunker:
  chunk_size: 64
  chunk_overlap: 8
embedder:
  provider: openai
  model: file-model
logging:
  format: json
`)
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "corpus", c.DataDir)
	assert.Equal(t, "notes", c.Collection)
	assert.Equal(t, "vector_index.faiss", c.IndexPath, "unset keys keep their default")
	assert.Equal(t, 64, c.Chunker.ChunkSize)
	assert.Equal(t, 8, c.Chunker.ChunkOverlap)
	assert.Equal(t, "env-model", c.Embedder.Model)
	assert.Equal(t, "sk-env", c.Embedder.APIKey)
	assert.Equal(t, "http://localhost:9000/v1", c.Embedder.BaseURL)
	assert.Equal(t, "debug", c.Logging.Level)
	assert.Equal(t, "json", c.Logging.Format)
}

func TestLoad_DefaultFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, dir, DefaultFile, "index_path: idx.bin\n")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "idx.bin", c.IndexPath)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	path := writeFile(t, dir, "bad.yaml", "no_such_key: 1\n")
	_, err = Load(path)
	require.Error(t, err, "unknown keys are rejected")

	path = writeFile(t, dir, "empty.yaml", "")
	_, err = Load(path)
	require.NoError(t, err)
}

func TestLogging_Apply(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	require.NoError(t, Logging{Level: "warn", Format: "json"}.Apply())
	assert.Equal(t, log.WarnLevel, log.GetLevel())
	_, ok := log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, ok)

	assert.Error(t, Logging{Level: "loud"}.Apply())
	assert.Error(t, Logging{Format: "xml"}.Apply())
}
