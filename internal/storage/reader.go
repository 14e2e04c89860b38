package storage

import (
	"context"

	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
)

// NewsReader pages over stored news in insertion order.
type NewsReader interface {
	List(ctx context.Context, offset, limit int) ([]domain.News, error)
	Count(ctx context.Context) (int64, error)
}

// Store is what a backend provides to the ingestion service.
type Store interface {
	TxBeginner
	NewsReader
}
