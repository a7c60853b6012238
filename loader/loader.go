// Package loader reads text documents from a folder.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrNoFiles is returned when a folder holds no loadable file.
var ErrNoFiles = errors.New("loader: no files found")

// Document is the content of one input file plus its provenance.
type Document struct {
	Content  string
	FilePath string
	FileName string
	FileType string
	Size     int64
	ModTime  time.Time
}

// Options controls which files Load picks up.
type Options struct {
	// Recursive descends into sub-directories.
	Recursive bool
	// Extensions, when set, is an allow-list such as []string{".txt", ".md"}.
	Extensions []string
}

func (o Options) accepts(name string) bool {
	if len(o.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, candidate := range o.Extensions {
		if !strings.HasPrefix(candidate, ".") {
			candidate = "." + candidate
		}
		if strings.ToLower(candidate) == ext {
			return true
		}
	}
	return false
}

// Load returns one Document per regular file in folder, ordered by path.
// Hidden files and directories are skipped.
func Load(folder string, opts Options) ([]Document, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("loader: %s is not a directory", folder)
	}

	var paths []string
	err = filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == folder {
			return nil
		}
		hidden := strings.HasPrefix(d.Name(), ".")
		if d.IsDir() {
			if hidden || !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden || !d.Type().IsRegular() || !opts.accepts(d.Name()) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loader: walk %s: %w", folder, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFiles, folder)
	}
	sort.Strings(paths)

	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		doc, err := readFile(path)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"path": path, "bytes": doc.Size}).Debug("loaded document")
		docs = append(docs, doc)
	}
	log.WithField("folder", folder).Infof("Loaded %d documents", len(docs))
	return docs, nil
}

func readFile(path string) (Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("loader: reading %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, fmt.Errorf("loader: stat %s: %w", path, err)
	}
	fileType := mime.TypeByExtension(filepath.Ext(path))
	if fileType == "" {
		fileType = "text/plain"
	}
	return Document{
		Content:  string(content),
		FilePath: path,
		FileName: filepath.Base(path),
		FileType: fileType,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
	}, nil
}
