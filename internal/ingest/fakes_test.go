package ingest

import (
	"context"
	"fmt"
	"sync"

	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
	"github.com/DjordjeVuckovic/news-ingest/internal/provider"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage/in_mem"
	"github.com/stretchr/testify/mock"
)

const (
	testKey  = "k"
	testBase = "http://provider.test"
)

func testConfig() provider.Config {
	return provider.Config{APIKey: testKey, BaseURL: testBase}
}

type pageResult struct {
	page *provider.Page
	err  error
}

// fakeFetcher answers by URL. Unknown URLs fail the test run with an error.
type fakeFetcher struct {
	mu    sync.Mutex
	pages map[string]pageResult
	calls []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{pages: make(map[string]pageResult)}
}

func (f *fakeFetcher) on(url string, page *provider.Page) *fakeFetcher {
	f.pages[url] = pageResult{page: page}
	return f
}

func (f *fakeFetcher) fail(url string, err error) *fakeFetcher {
	f.pages[url] = pageResult{err: err}
	return f
}

func (f *fakeFetcher) FetchPage(ctx context.Context, url string) (*provider.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, url)
	res, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("unexpected url %s", url)
	}
	return res.page, res.err
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func posts(keys ...string) []domain.RawNews {
	out := make([]domain.RawNews, len(keys))
	for i, k := range keys {
		out[i] = domain.RawNews{UUID: k, Title: "title " + k}
	}
	return out
}

func intPtr(n int) *int {
	return &n
}

// trackingStore wraps the in-memory store and counts transaction endings.
type trackingStore struct {
	*in_mem.InMemStorer

	begins     int
	commits    int
	rollbacks  int
	insertErr  error
	failOnCall int
	commitErr  error
}

func newTrackingStore() *trackingStore {
	return &trackingStore{InMemStorer: in_mem.NewInMemStorer()}
}

func (s *trackingStore) BeginTx(ctx context.Context) (storage.Tx, error) {
	s.begins++
	tx, err := s.InMemStorer.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &trackingTx{Tx: tx, store: s}, nil
}

type trackingTx struct {
	storage.Tx
	store   *trackingStore
	inserts int
}

func (t *trackingTx) InsertNews(ctx context.Context, news []domain.News) ([]string, error) {
	t.inserts++
	if t.store.insertErr != nil && t.inserts == t.store.failOnCall {
		return nil, t.store.insertErr
	}
	return t.Tx.InsertNews(ctx, news)
}

func (t *trackingTx) Commit(ctx context.Context) error {
	t.store.commits++
	if t.store.commitErr != nil {
		_ = t.Tx.Rollback(ctx)
		return t.store.commitErr
	}
	return t.Tx.Commit(ctx)
}

func (t *trackingTx) Rollback(ctx context.Context) error {
	t.store.rollbacks++
	return t.Tx.Rollback(ctx)
}

type mockIndexer struct {
	mock.Mock
}

func (m *mockIndexer) IndexNews(ctx context.Context, news []domain.News) error {
	args := m.Called(ctx, news)
	return args.Error(0)
}
