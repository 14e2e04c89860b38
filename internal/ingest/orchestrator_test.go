package ingest

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/DjordjeVuckovic/news-ingest/internal/apperr"
	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
	"github.com/DjordjeVuckovic/news-ingest/internal/provider"
	"github.com/DjordjeVuckovic/news-ingest/internal/query"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var goClauses = []query.Clause{{Field: "title", Values: []query.Value{"Go"}}}

const firstURL = testBase + "/search?token=k&q=title%3AGo"

type progressRecorder struct {
	calls     int
	fetched   int
	remaining int
}

func (p *progressRecorder) record(fetched, remaining int) {
	p.calls++
	p.fetched = fetched
	p.remaining = remaining
}

func TestRun_SinglePageWithoutCursor(t *testing.T) {
	fetcher := newFakeFetcher().on(firstURL, &provider.Page{Posts: posts("a", "b")})
	store := newTrackingStore()
	progress := &progressRecorder{}

	summary, err := NewOrchestrator(testConfig(), fetcher, store).Run(context.Background(), goClauses, progress.record)

	require.NoError(t, err)
	assert.Equal(t, []string{firstURL}, fetcher.calls)
	assert.Equal(t, StateCommitted, summary.State)
	assert.Equal(t, 2, summary.Fetched)
	assert.Equal(t, int64(2), summary.Inserted)
	assert.Equal(t, 0, summary.Remaining)
	assert.Equal(t, 1, summary.Pages)

	assert.Equal(t, 1, progress.calls)
	assert.Equal(t, 2, progress.fetched)
	assert.Equal(t, 0, progress.remaining)

	assert.Equal(t, 1, store.commits)
	assert.Zero(t, store.rollbacks)
	count, _ := store.Count(context.Background())
	assert.Equal(t, int64(2), count)
}

func TestRun_FollowsCursorUntilEmptyPage(t *testing.T) {
	fetcher := newFakeFetcher().
		on(firstURL, &provider.Page{Posts: posts("a", "b"), Next: "/search?ts=1", TotalResults: intPtr(10), MoreResultsAvailable: 8}).
		on(testBase+"/search?ts=1", &provider.Page{Posts: posts("c"), Next: "/search?ts=2", TotalResults: intPtr(10), MoreResultsAvailable: 7}).
		on(testBase+"/search?ts=2", &provider.Page{Posts: nil, Next: "/search?ts=3"})
	store := newTrackingStore()
	progress := &progressRecorder{}

	summary, err := NewOrchestrator(testConfig(), fetcher, store).Run(context.Background(), goClauses, progress.record)

	require.NoError(t, err)
	assert.Equal(t, 3, fetcher.callCount())
	assert.Equal(t, 3, summary.Fetched)
	assert.Equal(t, 10, summary.Total)
	assert.Equal(t, 7, summary.Remaining)
	assert.Equal(t, 1, progress.calls)
	assert.Equal(t, 7, progress.remaining)

	count, _ := store.Count(context.Background())
	assert.Equal(t, int64(3), count)
}

func TestRun_StopsWhenTotalReachedEvenWithCursor(t *testing.T) {
	fetcher := newFakeFetcher().
		on(firstURL, &provider.Page{Posts: posts("a", "b", "c"), Next: "/p2", TotalResults: intPtr(5)}).
		on(testBase+"/p2", &provider.Page{Posts: posts("d", "e"), Next: "/p3", TotalResults: intPtr(5)})
	store := newTrackingStore()

	summary, err := NewOrchestrator(testConfig(), fetcher, store).Run(context.Background(), goClauses, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount())
	assert.Equal(t, 5, summary.Fetched)
	assert.Equal(t, 0, summary.Remaining)
}

func TestRun_MoreResultsAvailableZeroDoesNotStop(t *testing.T) {
	fetcher := newFakeFetcher().
		on(firstURL, &provider.Page{Posts: posts("a"), Next: "/p2", MoreResultsAvailable: 0, TotalResults: intPtr(2)}).
		on(testBase+"/p2", &provider.Page{Posts: posts("b"), TotalResults: intPtr(2)})

	summary, err := NewOrchestrator(testConfig(), fetcher, newTrackingStore()).Run(context.Background(), goClauses, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount())
	assert.Equal(t, 2, summary.Fetched)
}

func TestRun_RepeatedCursorStops(t *testing.T) {
	fetcher := newFakeFetcher().
		on(firstURL, &provider.Page{Posts: posts("a"), Next: "/p2"}).
		on(testBase+"/p2", &provider.Page{Posts: posts("b"), Next: "/p2"})

	summary, err := NewOrchestrator(testConfig(), fetcher, newTrackingStore()).Run(context.Background(), goClauses, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount())
	assert.Equal(t, 2, summary.Pages)
}

func TestRun_MaxPages(t *testing.T) {
	fetcher := newFakeFetcher().
		on(firstURL, &provider.Page{Posts: posts("a"), Next: "/p2"}).
		on(testBase+"/p2", &provider.Page{Posts: posts("b"), Next: "/p3"}).
		on(testBase+"/p3", &provider.Page{Posts: posts("c"), Next: "/p4"})

	summary, err := NewOrchestrator(testConfig(), fetcher, newTrackingStore(), WithMaxPages(2)).
		Run(context.Background(), goClauses, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount())
	assert.Equal(t, 2, summary.Fetched)
}

func TestRun_MissingConfigurationMakesNoCalls(t *testing.T) {
	tests := []struct {
		name    string
		cfg     provider.Config
		wantKey string
	}{
		{name: "missing api key", cfg: provider.Config{BaseURL: testBase}, wantKey: provider.APIKeyEnv},
		{name: "missing base url", cfg: provider.Config{APIKey: testKey}, wantKey: provider.BaseURLEnv},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := newFakeFetcher()
			store := newTrackingStore()
			progress := &progressRecorder{}

			summary, err := NewOrchestrator(tt.cfg, fetcher, store).Run(context.Background(), goClauses, progress.record)

			require.Error(t, err)
			assert.Nil(t, summary)

			var cfgErr *apperr.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantKey, cfgErr.Key)

			assert.Zero(t, fetcher.callCount())
			assert.Zero(t, store.begins)
			assert.Zero(t, progress.calls)
		})
	}
}

func TestRun_TransportFailureRollsBackEarlierPages(t *testing.T) {
	fetcher := newFakeFetcher().
		on(firstURL, &provider.Page{Posts: posts("a", "b"), Next: "/p2", TotalResults: intPtr(4)}).
		fail(testBase+"/p2", apperr.NewTransport(testBase+"/p2", http.StatusBadGateway, nil))
	store := newTrackingStore()
	progress := &progressRecorder{}

	summary, err := NewOrchestrator(testConfig(), fetcher, store).Run(context.Background(), goClauses, progress.record)

	require.Error(t, err)
	assert.Nil(t, summary)

	var pipeErr *apperr.PipelineError
	require.ErrorAs(t, err, &pipeErr)
	var transportErr *apperr.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)

	assert.Equal(t, 1, store.rollbacks)
	assert.Zero(t, store.commits)
	assert.Zero(t, progress.calls)

	count, _ := store.Count(context.Background())
	assert.Zero(t, count)
}

func TestRun_FormatFailureRollsBack(t *testing.T) {
	fetcher := newFakeFetcher().
		fail(firstURL, apperr.NewFormat("posts field is missing", nil))
	store := newTrackingStore()

	_, err := NewOrchestrator(testConfig(), fetcher, store).Run(context.Background(), goClauses, nil)

	var formatErr *apperr.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, 1, store.rollbacks)
}

func TestRun_PersistFailureRollsBack(t *testing.T) {
	fetcher := newFakeFetcher().
		on(firstURL, &provider.Page{Posts: posts("a"), Next: "/p2"}).
		on(testBase+"/p2", &provider.Page{Posts: posts("b")})
	store := newTrackingStore()
	store.insertErr = errors.New("disk full")
	store.failOnCall = 2

	_, err := NewOrchestrator(testConfig(), fetcher, store).Run(context.Background(), goClauses, nil)

	var persistErr *apperr.PersistenceError
	require.ErrorAs(t, err, &persistErr)
	assert.Equal(t, 1, store.rollbacks)

	count, _ := store.Count(context.Background())
	assert.Zero(t, count)
}

func TestRun_CommitFailureDoesNotRollBack(t *testing.T) {
	fetcher := newFakeFetcher().on(firstURL, &provider.Page{Posts: posts("a")})
	store := newTrackingStore()
	store.commitErr = errors.New("connection reset")
	progress := &progressRecorder{}

	_, err := NewOrchestrator(testConfig(), fetcher, store).Run(context.Background(), goClauses, progress.record)

	var pipeErr *apperr.PipelineError
	require.ErrorAs(t, err, &pipeErr)
	assert.Equal(t, 1, store.commits)
	assert.Zero(t, store.rollbacks)
	assert.Zero(t, progress.calls)

	count, _ := store.Count(context.Background())
	assert.Zero(t, count)
}

type cancelingFetcher struct {
	*fakeFetcher
	cancel context.CancelFunc
}

func (c *cancelingFetcher) FetchPage(ctx context.Context, url string) (*provider.Page, error) {
	page, err := c.fakeFetcher.FetchPage(ctx, url)
	c.cancel()
	return page, err
}

func TestRun_CancelledContextRollsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fetcher := &cancelingFetcher{
		fakeFetcher: newFakeFetcher().
			on(firstURL, &provider.Page{Posts: posts("a"), Next: "/p2"}).
			on(testBase+"/p2", &provider.Page{Posts: posts("b")}),
		cancel: cancel,
	}
	store := newTrackingStore()

	_, err := NewOrchestrator(testConfig(), fetcher, store).Run(ctx, goClauses, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, store.rollbacks)
	assert.Equal(t, 1, fetcher.callCount())

	count, _ := store.Count(context.Background())
	assert.Zero(t, count)
}

func TestRun_RerunDoesNotDuplicate(t *testing.T) {
	fetcher := newFakeFetcher().
		on(firstURL, &provider.Page{Posts: posts("a", "b"), Next: "/p2", TotalResults: intPtr(3)}).
		on(testBase+"/p2", &provider.Page{Posts: posts("c"), TotalResults: intPtr(3)})
	store := newTrackingStore()
	orchestrator := NewOrchestrator(testConfig(), fetcher, store)

	first, err := orchestrator.Run(context.Background(), goClauses, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), first.Inserted)

	second, err := orchestrator.Run(context.Background(), goClauses, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, second.Fetched)
	assert.Zero(t, second.Inserted)

	count, _ := store.Count(context.Background())
	assert.Equal(t, int64(3), count)
}

func TestRun_IndexesCommittedRows(t *testing.T) {
	fetcher := newFakeFetcher().on(firstURL, &provider.Page{Posts: posts("a", "b")})
	indexer := &mockIndexer{}
	indexer.On("IndexNews", mock.Anything, mock.MatchedBy(func(news []domain.News) bool {
		return len(news) == 2 && news[0].UUID == "a" && news[1].UUID == "b"
	})).Return(nil).Once()

	_, err := NewOrchestrator(testConfig(), fetcher, newTrackingStore(), WithIndexer(indexer)).
		Run(context.Background(), goClauses, nil)

	require.NoError(t, err)
	indexer.AssertExpectations(t)
}

func TestRun_IndexesOnlyNewlyInsertedRows(t *testing.T) {
	store := newTrackingStore()

	_, err := NewOrchestrator(testConfig(), newFakeFetcher().on(firstURL, &provider.Page{Posts: posts("a")}), store).
		Run(context.Background(), goClauses, nil)
	require.NoError(t, err)

	var indexed []domain.News
	indexer := &mockIndexer{}
	indexer.On("IndexNews", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { indexed = args.Get(1).([]domain.News) }).
		Return(nil).Once()

	fetcher := newFakeFetcher().on(firstURL, &provider.Page{Posts: posts("a", "c")})
	summary, err := NewOrchestrator(testConfig(), fetcher, store, WithIndexer(indexer)).
		Run(context.Background(), goClauses, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.Inserted)

	stored, err := store.List(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	require.Len(t, indexed, 1)
	assert.Equal(t, "c", indexed[0].UUID)
	assert.Equal(t, stored[1].ID, indexed[0].ID)
	indexer.AssertExpectations(t)
}

func TestRun_SkipsIndexWhenNothingInserted(t *testing.T) {
	store := newTrackingStore()
	_, err := NewOrchestrator(testConfig(), newFakeFetcher().on(firstURL, &provider.Page{Posts: posts("a")}), store).
		Run(context.Background(), goClauses, nil)
	require.NoError(t, err)

	indexer := &mockIndexer{}
	_, err = NewOrchestrator(testConfig(), newFakeFetcher().on(firstURL, &provider.Page{Posts: posts("a")}), store, WithIndexer(indexer)).
		Run(context.Background(), goClauses, nil)

	require.NoError(t, err)
	indexer.AssertNotCalled(t, "IndexNews", mock.Anything, mock.Anything)
}

func TestRun_IndexFailureDoesNotFailRun(t *testing.T) {
	fetcher := newFakeFetcher().on(firstURL, &provider.Page{Posts: posts("a")})
	indexer := &mockIndexer{}
	indexer.On("IndexNews", mock.Anything, mock.Anything).Return(errors.New("cluster unavailable")).Once()
	store := newTrackingStore()
	before := testutil.ToFloat64(IndexFailures)

	summary, err := NewOrchestrator(testConfig(), fetcher, store, WithIndexer(indexer)).
		Run(context.Background(), goClauses, nil)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Fetched)
	assert.Equal(t, 1, store.commits)
	assert.Equal(t, before+1, testutil.ToFloat64(IndexFailures))
	indexer.AssertExpectations(t)
}

func TestRun_IndexerNotCalledOnRollback(t *testing.T) {
	fetcher := newFakeFetcher().fail(firstURL, apperr.NewTransport(firstURL, 0, errors.New("dial tcp")))
	indexer := &mockIndexer{}

	_, err := NewOrchestrator(testConfig(), fetcher, newTrackingStore(), WithIndexer(indexer)).
		Run(context.Background(), goClauses, nil)

	require.Error(t, err)
	indexer.AssertNotCalled(t, "IndexNews", mock.Anything, mock.Anything)
}

func TestRun_CountsOutcomes(t *testing.T) {
	committedBefore := testutil.ToFloat64(RunsTotal.WithLabelValues(string(StateCommitted)))
	rolledBackBefore := testutil.ToFloat64(RunsTotal.WithLabelValues(string(StateRolledBack)))

	ok := newFakeFetcher().on(firstURL, &provider.Page{Posts: posts("a")})
	_, err := NewOrchestrator(testConfig(), ok, newTrackingStore()).Run(context.Background(), goClauses, nil)
	require.NoError(t, err)

	bad := newFakeFetcher().fail(firstURL, apperr.NewTransport(firstURL, http.StatusInternalServerError, nil))
	_, err = NewOrchestrator(testConfig(), bad, newTrackingStore()).Run(context.Background(), goClauses, nil)
	require.Error(t, err)

	assert.Equal(t, committedBefore+1, testutil.ToFloat64(RunsTotal.WithLabelValues(string(StateCommitted))))
	assert.Equal(t, rolledBackBefore+1, testutil.ToFloat64(RunsTotal.WithLabelValues(string(StateRolledBack))))
}

func TestRunRemaining(t *testing.T) {
	assert.Equal(t, 0, (&Run{Fetched: 3}).Remaining())
	assert.Equal(t, 7, (&Run{Fetched: 3, TotalResults: 10, TotalKnown: true}).Remaining())
	assert.Equal(t, 0, (&Run{Fetched: 12, TotalResults: 10, TotalKnown: true}).Remaining())
}
