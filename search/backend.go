package search

import (
	"fmt"
	"strings"
)

// Backend selects which stores a search consults.
type Backend int

const (
	// FlatIndexOnly searches the flat index file.
	FlatIndexOnly Backend = iota + 1
	// MetadataStoreOnly searches the metadata store collection.
	MetadataStoreOnly
	// Both searches each backend and reports them side by side.
	Both
)

// ParseBackend accepts "flat" (or "faiss"), "metadata" (or "chromadb") and
// "both", case-insensitively.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flat", "faiss":
		return FlatIndexOnly, nil
	case "metadata", "chromadb", "chroma":
		return MetadataStoreOnly, nil
	case "both", "":
		return Both, nil
	}
	return 0, fmt.Errorf("search: unknown backend %q", s)
}

func (b Backend) String() string {
	switch b {
	case FlatIndexOnly:
		return "flat"
	case MetadataStoreOnly:
		return "metadata"
	case Both:
		return "both"
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

func (b Backend) usesFlat() bool     { return b == FlatIndexOnly || b == Both }
func (b Backend) usesMetadata() bool { return b == MetadataStoreOnly || b == Both }
