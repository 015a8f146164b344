// Copyright 2026 Veldt Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/veldtlabs/multirag/ai"
	"github.com/veldtlabs/multirag/ai/openai"
	"github.com/veldtlabs/multirag/pipeline"
	"github.com/veldtlabs/multirag/search"
	"github.com/veldtlabs/multirag/storage"
	"github.com/veldtlabs/multirag/storage/badger"
	"github.com/veldtlabs/multirag/storage/dynamo"
	"github.com/veldtlabs/multirag/storage/pinecone"
	"github.com/veldtlabs/multirag/storage/s3"
)

func main() {
	app := &cli.App{
		Name:  "multirag",
		Usage: "Multimodal ingestion and retrieval for user file corpora",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest a file or directory into the corpus",
				ArgsUsage: "<path>",
				Action:    ingestCommand,
				Flags: append(storeFlags(),
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Worker pool size for directory ingestion",
						Value: 4,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search an owner's corpus",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(storeFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of hits to return",
						Value:   5,
					},
				),
			},
			{
				Name:   "list",
				Usage:  "List an owner's cataloged files",
				Action: listCommand,
				Flags:  storeFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// storeFlags are the collaborator flags shared by every command.
func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "owner",
			Aliases:  []string{"o"},
			Usage:    "Owner of the ingested content",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "bucket",
			Usage: "S3 bucket holding chunk content",
		},
		&cli.StringFlag{
			Name:  "index-host",
			Usage: "Pinecone index host URL",
		},
		&cli.StringFlag{
			Name:    "index-api-key",
			Usage:   "Pinecone API key",
			EnvVars: []string{"PINECONE_API_KEY"},
		},
		&cli.StringFlag{
			Name:  "region",
			Usage: "AWS region for S3 and DynamoDB",
		},
		&cli.StringFlag{
			Name:  "catalog-table",
			Usage: "DynamoDB table for the file catalog (mutually exclusive with --catalog-db)",
		},
		&cli.StringFlag{
			Name:  "catalog-db",
			Usage: "Path to a local BadgerDB catalog directory (mutually exclusive with --catalog-table)",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "text-model",
			Usage: "Text embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "image-model",
			Usage: "Image embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "Embedding service API token",
			EnvVars: []string{"EMBEDDING_TOKEN"},
			Value:   "none",
		},
	}
}

// stores bundles the remote collaborators a command wired up.
type stores struct {
	embedder ai.Embedder
	vectors  storage.VectorStore
	blobs    storage.BlobStore
	catalog  storage.Catalog
}

// openStores builds the embedder and the three stores from flags.
func openStores(ctx context.Context, c *cli.Context) (*stores, error) {
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithTextModel(c.String("text-model")),
		ai.WithImageModel(c.String("image-model")),
		ai.WithToken(c.String("token")),
	)
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	vectors, err := pinecone.NewStore(pinecone.Config{
		APIKey: c.String("index-api-key"),
		Host:   c.String("index-host"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create vector store: %w", err)
	}

	blobs, err := s3.NewBucket(ctx, s3.Config{
		Region: c.String("region"),
		Bucket: c.String("bucket"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create blob store: %w", err)
	}

	catalog, err := openCatalog(ctx, c)
	if err != nil {
		return nil, err
	}

	return &stores{embedder: embedder, vectors: vectors, blobs: blobs, catalog: catalog}, nil
}

// openCatalog selects the catalog backend: DynamoDB table or local BadgerDB.
func openCatalog(ctx context.Context, c *cli.Context) (storage.Catalog, error) {
	table := c.String("catalog-table")
	dbPath := c.String("catalog-db")

	switch {
	case table != "" && dbPath != "":
		return nil, fmt.Errorf("--catalog-table and --catalog-db are mutually exclusive")
	case table != "":
		catalog, err := dynamo.NewCatalog(ctx, dynamo.Config{
			Region: c.String("region"),
			Table:  table,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog table: %w", err)
		}
		return catalog, nil
	case dbPath != "":
		backend, err := badger.OpenBackend(dbPath, false)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog database: %w", err)
		}
		catalog, err := badger.NewCatalog(backend)
		if err != nil {
			backend.Close()
			return nil, err
		}
		return catalog, nil
	default:
		return nil, fmt.Errorf("one of --catalog-table or --catalog-db is required")
	}
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("path to a file or directory is required")
	}

	s, err := openStores(ctx, c)
	if err != nil {
		return err
	}
	defer s.catalog.Close()

	uploader, err := pipeline.NewStoreUploader(s.vectors, s.blobs)
	if err != nil {
		return err
	}
	factory, err := pipeline.NewFactory(s.embedder, uploader)
	if err != nil {
		return err
	}
	piper, err := pipeline.NewPiper(factory, s.catalog,
		pipeline.WithPoolSize(c.Int("workers")))
	if err != nil {
		return err
	}
	defer piper.Close()

	owner := c.String("owner")

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", path, err)
	}

	if !info.IsDir() {
		if err := piper.Ingest(ctx, path, owner); err != nil {
			return fmt.Errorf("ingesting %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "Ingested %s\n", path)
		return nil
	}

	results, err := piper.IngestDir(ctx, path, owner)
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAILED %s: %v\n", result.Path, result.Err)
		}
	}
	fmt.Fprintf(os.Stderr, "Ingested %d of %d files\n", len(results)-failed, len(results))
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.Join(c.Args().Slice(), " ")
	if query == "" {
		return fmt.Errorf("query is required")
	}

	s, err := openStores(ctx, c)
	if err != nil {
		return err
	}
	defer s.catalog.Close()

	searcher, err := search.NewSearcher(s.embedder, s.vectors, s.blobs)
	if err != nil {
		return err
	}

	results, err := searcher.FindSimilar(ctx, c.String("owner"), query, c.Int("top-k"))
	if err != nil {
		return err
	}

	for i, result := range results {
		fmt.Printf("%d. %s (score %.3f, %s)\n", i+1, result.ID, result.Score, result.Collection)
		if result.Collection == "text" && result.Content != "" {
			fmt.Printf("   %s\n", result.Content)
		}
	}
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	catalog, err := openCatalog(ctx, c)
	if err != nil {
		return err
	}
	defer catalog.Close()

	records, err := catalog.List(ctx, c.String("owner"))
	if err != nil {
		return err
	}

	for _, record := range records {
		fmt.Printf("%s\t%s\t%s\n", record.FileID, record.Digest,
			record.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
