package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/news-ingest/internal/i18n"
	"github.com/DjordjeVuckovic/news-ingest/internal/provider"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage/factory"
	"github.com/DjordjeVuckovic/news-ingest/pkg/config/env"
)

type AppConfig struct {
	StorageConfig factory.StorageConfig
	Provider      provider.Config
	Messages      *i18n.Messages
	// MaxPages caps one run; zero means no cap.
	MaxPages int
}

func LoadAppConfig() (*AppConfig, error) {
	if err := env.LoadDotEnv("cmd/news_api/.env"); err != nil {
		slog.Info("Failed to load .env, continuing with existing environment variables", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load storage configuration: %w", err)
	}

	providerCfg, err := provider.LoadConfig()
	if err != nil {
		return nil, err
	}

	msgs, err := i18n.Load(providerCfg.Language)
	if err != nil {
		return nil, err
	}

	maxPages := 0
	if v := os.Getenv("INGEST_MAX_PAGES"); v != "" {
		maxPages, err = strconv.Atoi(v)
		if err != nil || maxPages < 0 {
			return nil, fmt.Errorf("invalid INGEST_MAX_PAGES value: %s", v)
		}
	}

	return &AppConfig{
		StorageConfig: *storageCfg,
		Provider:      *providerCfg,
		Messages:      msgs,
		MaxPages:      maxPages,
	}, nil
}
