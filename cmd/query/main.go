// Command query embeds a text query and prints the nearest chunks from the
// flat index, the metadata store or both.
//
//	query [-backend both|flat|metadata] [-n 5] [-where source=hello.txt] why python
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/viant/docvec/chunker"
	"github.com/viant/docvec/config"
	"github.com/viant/docvec/embedder"
	"github.com/viant/docvec/pipeline"
	"github.com/viant/docvec/search"
	"github.com/viant/docvec/vector"
)

const defaultQuery = "Why Python"

// whereFlag collects repeated key=value metadata filters.
type whereFlag map[string]any

func (w whereFlag) String() string {
	parts := make([]string, 0, len(w))
	for k, v := range w {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	return strings.Join(parts, ",")
}

func (w whereFlag) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", s)
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		w[key] = n
		return nil
	}
	w[key] = value
	return nil
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	backendName := flag.String("backend", "both", "backend to search: flat, metadata or both")
	nResults := flag.Int("n", search.DefaultResults, "results per backend")
	where := whereFlag{}
	flag.Var(where, "where", "metadata filter key=value (repeatable)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if err := cfg.Logging.Apply(); err != nil {
		log.WithError(err).Fatal("invalid logging config")
	}
	backend, err := search.ParseBackend(*backendName)
	if err != nil {
		log.WithError(err).Fatal("invalid backend")
	}

	query := strings.Join(flag.Args(), " ")
	if query == "" {
		query = defaultQuery
		fmt.Println("No query provided, using default query")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := search.Options{
		Backend:    backend,
		NResults:   *nResults,
		IndexPath:  cfg.IndexPath,
		Collection: cfg.Collection,
		Where:      where,
	}
	if err := run(ctx, cfg, query, opts); err != nil {
		log.WithError(err).Fatal("query failed")
	}
}

func run(ctx context.Context, cfg *config.Config, query string, opts search.Options) error {
	embed, err := embedder.New(cfg.Embedder)
	if err != nil {
		return err
	}
	splitter, err := chunker.New(cfg.Chunker)
	if err != nil {
		return err
	}
	s := &search.Searcher{}
	if opts.Backend != search.FlatIndexOnly {
		client, err := vector.Open(ctx, cfg.StorePath)
		if err != nil {
			return err
		}
		defer client.Close()
		s.Client = client
	}

	// the flat index only stores vectors; rebuild the chunk list to show text
	ix, err := pipeline.NewIndexer(cfg.DataDir, splitter, embed, nil)
	if err != nil {
		return err
	}
	ix.LoadOptions.Recursive = cfg.Recursive
	ix.LoadOptions.Extensions = cfg.Extensions
	chunks, _, err := ix.Chunks(ctx)
	if err != nil {
		log.WithError(err).Warn("could not rebuild chunk list; flat results show indices only")
	}

	res, err := s.SearchText(ctx, query, embed, chunks, opts)
	if err != nil {
		return err
	}
	return search.Print(os.Stdout, res)
}
