package in_mem

import (
	"context"
	"log/slog"
	"sync"

	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage"
)

var _ storage.Store = (*InMemStorer)(nil)

// InMemStorer keeps news in insertion order. Writes become visible only
// when their transaction commits.
type InMemStorer struct {
	storageLock sync.RWMutex
	rows        []domain.News
	keys        map[string]struct{}
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		keys: make(map[string]struct{}),
	}
}

func (s *InMemStorer) BeginTx(ctx context.Context) (storage.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &inMemTx{
		store: s,
		keys:  make(map[string]struct{}),
	}, nil
}

func (s *InMemStorer) List(ctx context.Context, offset, limit int) ([]domain.News, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	if offset >= len(s.rows) || limit <= 0 {
		return []domain.News{}, nil
	}
	end := min(offset+limit, len(s.rows))

	out := make([]domain.News, end-offset)
	copy(out, s.rows[offset:end])
	return out, nil
}

func (s *InMemStorer) Count(ctx context.Context) (int64, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	return int64(len(s.rows)), nil
}

func (s *InMemStorer) exists(key string) bool {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()
	_, ok := s.keys[key]
	return ok
}

type inMemTx struct {
	mu      sync.Mutex
	store   *InMemStorer
	pending []domain.News
	keys    map[string]struct{}
	done    bool
}

func (t *inMemTx) InsertNews(ctx context.Context, news []domain.News) ([]string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return nil, storage.ErrTxDone
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var inserted []string
	for _, n := range news {
		if _, ok := t.keys[n.UUID]; ok || t.store.exists(n.UUID) {
			continue
		}
		t.keys[n.UUID] = struct{}{}
		t.pending = append(t.pending, n)
		inserted = append(inserted, n.UUID)
	}
	return inserted, nil
}

func (t *inMemTx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return storage.ErrTxDone
	}
	t.done = true

	s := t.store
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	committed := 0
	for _, n := range t.pending {
		// another transaction may have committed the same key meanwhile
		if _, ok := s.keys[n.UUID]; ok {
			continue
		}
		s.keys[n.UUID] = struct{}{}
		s.rows = append(s.rows, n)
		committed++
	}
	t.pending = nil

	slog.Debug("In-memory transaction committed", "rows", committed)
	return nil
}

func (t *inMemTx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return storage.ErrTxDone
	}
	t.done = true
	t.pending = nil
	return nil
}
