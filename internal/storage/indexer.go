package storage

import (
	"context"

	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
)

// Indexer mirrors committed news into a search engine.
type Indexer interface {
	IndexNews(ctx context.Context, news []domain.News) error
}
