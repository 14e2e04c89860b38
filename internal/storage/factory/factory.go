package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/news-ingest/internal/storage"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage/es"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage/pg"
	"github.com/DjordjeVuckovic/news-ingest/pkg/server"
)

// Backend bundles what the services need from one storage configuration.
type Backend struct {
	Store         storage.Store
	HealthChecker server.HealthChecker
	// Indexer is nil unless a search mirror is configured.
	Indexer storage.Indexer
	close   func()
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// NewBackend creates a storage backend based on the storage type
func NewBackend(ctx context.Context, cfg *StorageConfig) (*Backend, error) {
	backend, err := newStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Es != nil {
		indexer, err := es.NewIndexer(ctx, *cfg.Es)
		if err != nil {
			backend.Close()
			return nil, fmt.Errorf("failed to create Elasticsearch indexer: %w", err)
		}
		backend.Indexer = indexer
		backend.HealthChecker = server.AllHealthChecker{backend.HealthChecker, indexer}
	}

	return backend, nil
}

func newStore(ctx context.Context, cfg *StorageConfig) (*Backend, error) {
	switch cfg.Type {
	case storage.PG:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("invalid config for PostgreSQL storage: missing pool config")
		}

		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		store, err := pg.NewStorer(pool)
		if err != nil {
			pool.Close()
			return nil, err
		}

		return &Backend{
			Store:         store,
			HealthChecker: pg.NewHealthChecker(pool),
			close:         pool.Close,
		}, nil

	case storage.InMem:
		return &Backend{
			Store:         in_mem.NewInMemStorer(),
			HealthChecker: server.NewOkHealthChecker(),
		}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStorer), cfg.Type)
	}
}
