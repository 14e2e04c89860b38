package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/news-ingest/internal/ingest"
	"github.com/DjordjeVuckovic/news-ingest/internal/provider"
	"github.com/DjordjeVuckovic/news-ingest/internal/query"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage/factory"
	"github.com/DjordjeVuckovic/news-ingest/pkg/config/env"
)

func main() {
	slog.SetLogLoggerLevel(env.LogLevel())

	if err := run(os.Args[1:]); err != nil {
		slog.Error("News fetch failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := LoadFetchConfig(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	file, err := os.Open(cfg.QueryPath)
	if err != nil {
		return err
	}
	defer file.Close()

	doc, err := query.NewYAMLLoader(file).Load(true)
	if err != nil {
		return err
	}
	slog.Info("Query loaded", "name", doc.Name, "clauses", len(doc.Query), "q", query.Build(doc.Query))

	backend, err := factory.NewBackend(ctx, &cfg.StorageConfig)
	if err != nil {
		return err
	}
	defer backend.Close()

	opts := []ingest.OrchestratorOption{
		ingest.WithMessages(cfg.Messages),
		ingest.WithMaxPages(cfg.MaxPages),
	}
	if backend.Indexer != nil {
		opts = append(opts, ingest.WithIndexer(backend.Indexer))
	}

	client := provider.NewClient(cfg.Provider.ClientOptions()...)
	orchestrator := ingest.NewOrchestrator(cfg.Provider, client, backend.Store, opts...)

	summary, err := ingest.NewService(orchestrator, backend.Store).FetchNews(ctx, doc.Query)
	if err != nil {
		return err
	}

	slog.Info(cfg.Messages.NewsFetchedSuccessfully,
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"remaining", summary.Remaining,
		"pages", summary.Pages,
		"duration", summary.Duration)
	return nil
}
