package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-ingest/internal/i18n"
	"github.com/DjordjeVuckovic/news-ingest/internal/provider"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage/factory"
	"github.com/DjordjeVuckovic/news-ingest/pkg/config/env"
)

type FetchConfig struct {
	QueryPath     string
	MaxPages      int
	StorageConfig factory.StorageConfig
	Provider      provider.Config
	Messages      *i18n.Messages
}

// LoadFetchConfig reads flags first; -query falls back to QUERY_PATH.
func LoadFetchConfig(args []string) (*FetchConfig, error) {
	fs := flag.NewFlagSet("news_fetch", flag.ContinueOnError)
	queryPath := fs.String("query", "", "path to a YAML query document (defaults to QUERY_PATH)")
	maxPages := fs.Int("max-pages", 0, "stop after this many provider pages, 0 for no limit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := env.LoadDotEnv("cmd/news_fetch/.env"); err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	if *queryPath == "" {
		*queryPath = os.Getenv("QUERY_PATH")
	}
	if *queryPath == "" {
		return nil, fmt.Errorf("query path is not set, use -query or QUERY_PATH")
	}
	if *maxPages < 0 {
		return nil, fmt.Errorf("max-pages must not be negative")
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}

	providerCfg, err := provider.LoadConfig()
	if err != nil {
		return nil, err
	}

	msgs, err := i18n.Load(providerCfg.Language)
	if err != nil {
		return nil, err
	}

	return &FetchConfig{
		QueryPath:     *queryPath,
		MaxPages:      *maxPages,
		StorageConfig: *storageCfg,
		Provider:      *providerCfg,
		Messages:      msgs,
	}, nil
}
