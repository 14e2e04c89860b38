// Package main News Ingest API
// @title News Ingest API
// @version 1.0
// @description Pulls paginated news from a web news search provider and stores every run atomically
// @contact.name API Support
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	_ "github.com/DjordjeVuckovic/news-ingest/docs"
	"github.com/DjordjeVuckovic/news-ingest/internal/api/router"
	"github.com/DjordjeVuckovic/news-ingest/internal/api/server"
	"github.com/DjordjeVuckovic/news-ingest/internal/ingest"
	"github.com/DjordjeVuckovic/news-ingest/internal/provider"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage/factory"
	"github.com/DjordjeVuckovic/news-ingest/pkg/config/env"
	"github.com/labstack/echo/v4"
)

func main() {
	slog.SetLogLoggerLevel(env.LogLevel())

	cfg, err := LoadAppConfig()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	backend, err := factory.NewBackend(context.Background(), &cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create storage backend", "error", err)
		os.Exit(1)
	}
	defer backend.Close()

	s := server.New(sCfg, backend.HealthChecker).
		SetupMiddlewares().
		SetupErrorHandler(cfg.Messages).
		SetupHealthChecks("/health").
		SetupMetrics("/metrics").
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "News Ingest API is running")
	})

	opts := []ingest.OrchestratorOption{
		ingest.WithMessages(cfg.Messages),
		ingest.WithMaxPages(cfg.MaxPages),
	}
	if backend.Indexer != nil {
		opts = append(opts, ingest.WithIndexer(backend.Indexer))
		slog.Info("Search index mirror enabled")
	}

	client := provider.NewClient(cfg.Provider.ClientOptions()...)
	orchestrator := ingest.NewOrchestrator(cfg.Provider, client, backend.Store, opts...)
	service := ingest.NewService(orchestrator, backend.Store)

	router.NewNewsRouter(s.Echo, service, cfg.Messages).Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		backend.Close()
		os.Exit(1)
	}
}
