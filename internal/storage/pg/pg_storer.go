package pg

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ storage.Store = (*Storer)(nil)

// maxParams is the bind parameter limit of the Postgres wire protocol.
const maxParams = 65535

var newsColumns = []string{
	"id",
	"uuid",
	"url",
	"ord_in_thread",
	"parent_url",
	"author",
	"published",
	"title",
	"text",
	"highlight_text",
	"highlight_title",
	"highlight_thread_title",
	"language",
	"sentiment",
	"categories",
	"topics",
	"ai_allow",
	"has_canonical",
	"webz_reporter",
	"external_links",
	"external_images",
	"thread",
	"entities",
	"syndication",
	"rating",
	"crawled",
	"updated",
	"created_at",
}

// MaxBatchSize is the largest batch InsertNews accepts in one statement.
var MaxBatchSize = maxParams / len(newsColumns)

type Storer struct {
	db *pgxpool.Pool
}

func NewStorer(pool *ConnectionPool) (*Storer, error) {
	if pool == nil {
		return nil, fmt.Errorf("pg storer requires a connection pool")
	}
	return &Storer{db: pool.conn}, nil
}

func (s *Storer) BeginTx(ctx context.Context) (storage.Tx, error) {
	const op = "pg.Storer.BeginTx"

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return &pgTx{tx: tx}, nil
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) InsertNews(ctx context.Context, news []domain.News) ([]string, error) {
	const op = "pg.Tx.InsertNews"

	if len(news) == 0 {
		return nil, nil
	}
	if len(news) > MaxBatchSize {
		return nil, wrapErr(op, fmt.Errorf("batch of %d rows exceeds the %d row statement limit", len(news), MaxBatchSize))
	}

	sql, args := buildInsert(news)
	rows, err := t.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(op, err)
	}

	inserted, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return inserted, nil
}

func (t *pgTx) Commit(ctx context.Context) error {
	const op = "pg.Tx.Commit"

	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return storage.ErrTxDone
		}
		return wrapErr(op, err)
	}
	return nil
}

func (t *pgTx) Rollback(ctx context.Context) error {
	const op = "pg.Tx.Rollback"

	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return storage.ErrTxDone
		}
		return wrapErr(op, err)
	}
	return nil
}

// buildInsert renders one multi-row INSERT for the whole batch.
func buildInsert(news []domain.News) (string, []any) {
	cols := len(newsColumns)
	args := make([]any, 0, len(news)*cols)

	var sb strings.Builder
	sb.WriteString("INSERT INTO news (")
	sb.WriteString(strings.Join(newsColumns, ", "))
	sb.WriteString(") VALUES ")

	for i, n := range news {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for j := 0; j < cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(i*cols + j + 1))
		}
		sb.WriteByte(')')

		args = append(args,
			n.ID,
			n.UUID,
			n.URL,
			n.OrdInThread,
			n.ParentURL,
			n.Author,
			n.Published,
			n.Title,
			n.Text,
			n.HighlightText,
			n.HighlightTitle,
			n.HighlightThreadTitle,
			n.Language,
			n.Sentiment,
			n.Categories,
			n.Topics,
			n.AIAllow,
			n.HasCanonical,
			n.WebzReporter,
			n.ExternalLinks,
			n.ExternalImages,
			n.Thread,
			n.Entities,
			n.Syndication,
			n.Rating,
			n.Crawled,
			n.Updated,
			n.CreatedAt,
		)
	}

	sb.WriteString(" ON CONFLICT (uuid) DO NOTHING RETURNING uuid")
	return sb.String(), args
}
