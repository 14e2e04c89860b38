package ingest

import (
	"context"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/news-ingest/internal/apperr"
	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
	"github.com/DjordjeVuckovic/news-ingest/internal/i18n"
	"github.com/DjordjeVuckovic/news-ingest/internal/provider"
	"github.com/DjordjeVuckovic/news-ingest/internal/query"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage"
)

type Orchestrator struct {
	cfg       provider.Config
	fetcher   PageFetcher
	store     storage.TxBeginner
	persister *Persister
	indexer   storage.Indexer
	msgs      *i18n.Messages
	maxPages  int
}

type OrchestratorOption func(o *Orchestrator)

// WithIndexer mirrors committed rows into a search index. Index failures
// are logged and never fail the run.
func WithIndexer(indexer storage.Indexer) OrchestratorOption {
	return func(o *Orchestrator) {
		o.indexer = indexer
	}
}

// WithMaxPages stops a run after n pages. Zero means no limit.
func WithMaxPages(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		o.maxPages = n
	}
}

func WithMessages(msgs *i18n.Messages) OrchestratorOption {
	return func(o *Orchestrator) {
		if msgs != nil {
			o.msgs = msgs
		}
	}
}

func WithPersister(p *Persister) OrchestratorOption {
	return func(o *Orchestrator) {
		if p != nil {
			o.persister = p
		}
	}
}

func NewOrchestrator(cfg provider.Config, fetcher PageFetcher, store storage.TxBeginner, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		cfg:       cfg,
		fetcher:   fetcher,
		store:     store,
		persister: NewPersister(),
		msgs:      i18n.For(i18n.DefaultLanguage),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run fetches every page of the query and stores all records in a single
// transaction. Either every page is committed or nothing is. onProgress may
// be nil; otherwise it is called once after a successful commit.
func (o *Orchestrator) Run(ctx context.Context, clauses []query.Clause, onProgress ProgressFunc) (*Summary, error) {
	start := time.Now()

	if err := o.cfg.Validate(); err != nil {
		slog.Error(o.msgs.APIKeyNotFound, "error", err)
		RunsTotal.WithLabelValues(resultConfigError).Inc()
		return nil, err
	}

	run := &Run{
		State:   StateIdle,
		NextURL: o.cfg.FirstPageURL(query.Build(clauses)),
	}
	slog.Info("Ingestion run started", "clauses", len(clauses))

	tx, err := o.store.BeginTx(ctx)
	if err != nil {
		run.State = StateRolledBack
		o.finish(start, run)
		return nil, apperr.NewPipeline(o.msgs.TransactionFailed, err)
	}

	committed, err := o.loop(ctx, tx, run)
	if err != nil {
		failedIn := run.State
		run.State = StateRollingBack
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			slog.Error("Rollback failed", "error", rbErr)
		}
		run.State = StateRolledBack
		o.finish(start, run)

		slog.Error(o.msgs.DataFetchError, "error", err, "failedIn", failedIn, "pages", run.Pages, "fetched", run.Fetched)
		return nil, apperr.NewPipeline(o.msgs.TransactionFailed, err)
	}

	run.State = StateCommitting
	if err := tx.Commit(ctx); err != nil {
		// a failed commit ends the transaction
		run.State = StateRolledBack
		o.finish(start, run)

		slog.Error(o.msgs.TransactionFailed, "error", err, "failedIn", StateCommitting)
		return nil, apperr.NewPipeline(o.msgs.TransactionFailed, err)
	}
	run.State = StateCommitted
	RecordsInserted.Add(float64(run.Inserted))

	o.index(ctx, committed)

	duration := o.finish(start, run)
	summary := &Summary{
		State:     run.State,
		Fetched:   run.Fetched,
		Inserted:  run.Inserted,
		Total:     run.TotalResults,
		Remaining: run.Remaining(),
		Pages:     run.Pages,
		Duration:  duration,
	}

	slog.Info(o.msgs.NewsFetchedSuccessfully,
		"fetched", summary.Fetched,
		"inserted", summary.Inserted,
		"remaining", summary.Remaining,
		"pages", summary.Pages,
		"state", summary.State,
		"duration", duration)

	if onProgress != nil {
		onProgress(summary.Fetched, summary.Remaining)
	}
	return summary, nil
}

// loop drives the fetch/persist cycle. It returns the rows written so they
// can be indexed after commit.
func (o *Orchestrator) loop(ctx context.Context, tx storage.Tx, run *Run) ([]domain.News, error) {
	var written []domain.News
	url := run.NextURL

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		run.State = StateFetching
		page, err := o.fetcher.FetchPage(ctx, url)
		if err != nil {
			return nil, err
		}
		run.Pages++
		run.MoreAvailable = page.MoreResultsAvailable
		PagesFetched.Inc()

		if len(page.Posts) == 0 {
			slog.Info(o.msgs.NoMorePosts, "pages", run.Pages)
			return written, nil
		}
		RecordsFetched.Add(float64(len(page.Posts)))

		run.State = StatePersisting
		news := o.persister.Project(page.Posts)
		inserted, err := o.persister.Write(ctx, tx, news)
		if err != nil {
			return nil, err
		}
		run.Inserted += int64(len(inserted))
		if o.indexer != nil {
			written = append(written, inserted...)
		}

		run.NextURL = o.cfg.NextPageURL(page.Next)
		run.Fetched += len(page.Posts)
		if page.TotalResults != nil {
			run.TotalResults = *page.TotalResults
			run.TotalKnown = true
		}

		slog.Debug("Page persisted",
			"page", run.Pages,
			"records", len(page.Posts),
			"inserted", len(inserted),
			"fetched", run.Fetched,
			"total", run.TotalResults,
			"moreAvailable", run.MoreAvailable)

		if !o.shouldContinue(run, url) {
			return written, nil
		}
		url = run.NextURL
	}
}

// shouldContinue applies the termination rules: a cursor must exist and the
// fetched count must differ from the provider total. A cursor pointing back
// at the page just read, or the page cap, also end the run.
func (o *Orchestrator) shouldContinue(run *Run, current string) bool {
	if run.NextURL == "" {
		return false
	}
	if run.Fetched == run.TotalResults {
		return false
	}
	if run.NextURL == current {
		slog.Warn("Provider cursor points at the current page, stopping", "url", provider.RedactToken(current))
		return false
	}
	if o.maxPages > 0 && run.Pages >= o.maxPages {
		slog.Warn("Page limit reached, stopping", "maxPages", o.maxPages)
		return false
	}
	return true
}

func (o *Orchestrator) index(ctx context.Context, news []domain.News) {
	if o.indexer == nil || len(news) == 0 {
		return
	}
	if err := o.indexer.IndexNews(context.WithoutCancel(ctx), news); err != nil {
		IndexFailures.Inc()
		slog.Error("Failed to index committed news", "error", err, "count", len(news))
	}
}

// finish records a run that reached committed or rolled_back; the state
// doubles as the result label.
func (o *Orchestrator) finish(start time.Time, run *Run) time.Duration {
	d := time.Since(start)
	RunsTotal.WithLabelValues(string(run.State)).Inc()
	RunDuration.Observe(d.Seconds())
	slog.Debug("Ingestion run finished", "state", run.State, "pages", run.Pages, "duration", d)
	return d
}
