package chunker

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/viant/docvec/loader"
)

// Unknown labels chunks whose document has no file path.
const Unknown = "unknown"

// Metadata describes where a chunk came from.
type Metadata struct {
	Source     string
	FilePath   string
	ChunkIndex int
}

// Map returns the metadata as stored alongside a record.
func (m Metadata) Map() map[string]any {
	return map[string]any{
		"source":      m.Source,
		"file_path":   m.FilePath,
		"chunk_index": m.ChunkIndex,
	}
}

// Maps converts a metadata slice for vector.StoreChunks.
func Maps(metadata []Metadata) []map[string]any {
	out := make([]map[string]any, len(metadata))
	for i, m := range metadata {
		out[i] = m.Map()
	}
	return out
}

// ChunkDocuments splits every document and returns the chunk texts with
// parallel metadata. ChunkIndex counts chunks within their own document.
func (s *Splitter) ChunkDocuments(docs []loader.Document) ([]string, []Metadata) {
	var chunks []string
	var metadata []Metadata
	for _, doc := range docs {
		path := doc.FilePath
		source := Unknown
		if path == "" {
			path = Unknown
		} else {
			source = filepath.Base(path)
		}
		for i, chunk := range s.Split(doc.Content) {
			chunks = append(chunks, chunk)
			metadata = append(metadata, Metadata{Source: source, FilePath: path, ChunkIndex: i})
		}
	}
	log.WithFields(log.Fields{
		"documents":     len(docs),
		"chunk_size":    s.chunkSize,
		"chunk_overlap": s.chunkOverlap,
	}).Infof("Created %d chunks", len(chunks))
	return chunks, metadata
}
