// Package config loads docvec settings from a YAML file, a .env file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/viant/docvec/chunker"
	"github.com/viant/docvec/embedder"
	"github.com/viant/docvec/index/flat"
	"github.com/viant/docvec/vector"
)

const (
	// DefaultFile is read when no config path is given and the file exists.
	DefaultFile      = "docvec.yaml"
	DefaultDataDir   = "data"
	DefaultStorePath = "./chroma_db"
)

// Config holds the settings shared by the index and query commands.
type Config struct {
	DataDir    string   `yaml:"data_dir"`
	Recursive  bool     `yaml:"recursive"`
	Extensions []string `yaml:"extensions"`

	IndexPath  string `yaml:"index_path"`
	StorePath  string `yaml:"store_path"`
	Collection string `yaml:"collection"`

	Chunker  chunker.Config  `yaml:"chunker"`
	Embedder embedder.Config `yaml:"embedder"`
	Logging  Logging         `yaml:"logging"`
}

// Logging selects the logrus level and output format (text or json).
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DataDir:    DefaultDataDir,
		IndexPath:  flat.DefaultPath,
		StorePath:  DefaultStorePath,
		Collection: vector.DefaultCollection,
		Chunker: chunker.Config{
			ChunkSize:    chunker.DefaultChunkSize,
			ChunkOverlap: chunker.DefaultChunkOverlap,
			Encoding:     chunker.DefaultEncoding,
		},
		Embedder: embedder.Config{
			Provider:  embedder.ProviderOpenAI,
			BatchSize: embedder.DefaultBatchSize,
		},
		Logging: Logging{Level: "info", Format: "text"},
	}
}

// Load reads .env when present, then path (or DefaultFile if it exists),
// then applies environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}

	c := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := parseFile(path, c); err != nil {
			return nil, fmt.Errorf("config: %s: %w", path, err)
		}
	}
	c.applyEnv()
	return c, nil
}

func parseFile(path string, c *Config) error {
	data, err := os.ReadFile(path)

	if err != nil {
		return err
	}

	data = []byte(os.ExpandEnv(string(data)))

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.Embedder.APIKey == "" {
		c.Embedder.APIKey = v
	}
	if v := os.Getenv("DOCVEC_EMBEDDER_PROVIDER"); v != "" {
		c.Embedder.Provider = v
	}
	if v := os.Getenv("DOCVEC_EMBEDDER_URL"); v != "" {
		c.Embedder.BaseURL = v
	}
	if v := os.Getenv("DOCVEC_EMBEDDER_MODEL"); v != "" {
		c.Embedder.Model = v
	}
	if v := os.Getenv("DOCVEC_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Apply configures the global logrus logger.
func (l Logging) Apply() error {
	level := log.InfoLevel
	if l.Level != "" {
		parsed, err := log.ParseLevel(l.Level)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		level = parsed
	}
	log.SetLevel(level)

	switch strings.ToLower(l.Format) {
	case "", "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("config: unknown log format %q", l.Format)
	}
	return nil
}
