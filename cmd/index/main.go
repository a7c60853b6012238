// Command index loads documents from a folder, chunks and embeds them, and
// writes both the flat index file and the metadata store.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/viant/docvec/chunker"
	"github.com/viant/docvec/config"
	"github.com/viant/docvec/embedder"
	"github.com/viant/docvec/pipeline"
	"github.com/viant/docvec/vector"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	dataDir := flag.String("data", "", "folder of documents to index")
	indexPath := flag.String("index", "", "flat index output file")
	storePath := flag.String("store", "", "metadata store directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}
	if err := cfg.Logging.Apply(); err != nil {
		log.WithError(err).Fatal("invalid logging config")
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *indexPath != "" {
		cfg.IndexPath = *indexPath
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.WithError(err).Fatal("indexing failed")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	splitter, err := chunker.New(cfg.Chunker)
	if err != nil {
		return err
	}
	embed, err := embedder.New(cfg.Embedder)
	if err != nil {
		return err
	}
	client, err := vector.Open(ctx, cfg.StorePath)
	if err != nil {
		return err
	}
	defer client.Close()

	ix, err := pipeline.NewIndexer(cfg.DataDir, splitter, embed, client)
	if err != nil {
		return err
	}
	ix.LoadOptions.Recursive = cfg.Recursive
	ix.LoadOptions.Extensions = cfg.Extensions
	ix.IndexPath = cfg.IndexPath
	ix.Collection = cfg.Collection

	report, err := ix.Run(ctx)
	if err != nil {
		return err
	}
	return report.Print(os.Stdout)
}
