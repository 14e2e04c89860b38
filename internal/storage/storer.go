package storage

import (
	"context"

	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
)

// Tx is one unit of work. Commit and Rollback both end it and release the
// underlying connection; calling either again is an error.
type Tx interface {
	// InsertNews writes the batch as a single statement. Rows whose natural
	// key already exists are skipped. It returns the uuids of the rows written.
	InsertNews(ctx context.Context, news []domain.News) ([]string, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type TxBeginner interface {
	BeginTx(ctx context.Context) (Tx, error)
}

type Type string

const (
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
	ErrTxDone            StorerError = "transaction has already been committed or rolled back"
)

func (e StorerError) Error() string {
	return string(e)
}
