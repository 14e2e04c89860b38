package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/DjordjeVuckovic/news-ingest/internal/apperr"
	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage"
	"github.com/google/uuid"
)

// Persister writes provider records into an open transaction.
type Persister struct {
	newID func() uuid.UUID
	now   func() time.Time
}

func NewPersister() *Persister {
	return &Persister{
		newID: uuid.New,
		now:   time.Now,
	}
}

// Project converts raw records into storable rows. Every row of one batch
// shares the same creation time.
func (p *Persister) Project(records []domain.RawNews) []domain.News {
	createdAt := p.now().UTC()

	news := make([]domain.News, len(records))
	for i, r := range records {
		news[i] = domain.NewNews(r, p.newID(), createdAt)
	}
	return news
}

// Persist projects and writes records with one insert. It returns the number
// of rows actually inserted; rows whose provider uuid is already stored are skipped.
func (p *Persister) Persist(ctx context.Context, tx storage.Tx, records []domain.RawNews) (int64, error) {
	inserted, err := p.Write(ctx, tx, p.Project(records))
	return int64(len(inserted)), err
}

// Write inserts news and returns the rows the store accepted, in batch order.
func (p *Persister) Write(ctx context.Context, tx storage.Tx, news []domain.News) ([]domain.News, error) {
	if len(news) == 0 {
		return nil, nil
	}

	keys, err := tx.InsertNews(ctx, news)
	if err != nil {
		var pe *apperr.PersistenceError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, apperr.NewPersistence("insert news", err)
	}
	return acceptedRows(news, keys), nil
}

// acceptedRows keeps the first row for every inserted key.
func acceptedRows(news []domain.News, keys []string) []domain.News {
	pending := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		pending[k] = struct{}{}
	}

	out := make([]domain.News, 0, len(keys))
	for _, n := range news {
		if _, ok := pending[n.UUID]; !ok {
			continue
		}
		delete(pending, n.UUID)
		out = append(out, n)
	}
	return out
}
