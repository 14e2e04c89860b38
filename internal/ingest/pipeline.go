package ingest

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/news-ingest/internal/provider"
)

// PageFetcher retrieves one provider page.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (*provider.Page, error)
}

// ProgressFunc receives the final counts of a successful run.
type ProgressFunc func(fetched, remaining int)

// State is the stage a run is in. Failures are logged with the stage they
// happened in, and the final state is the runs_total result label.
type State string

const (
	StateIdle        State = "idle"
	StateFetching    State = "fetching"
	StatePersisting  State = "persisting"
	StateCommitting  State = "committing"
	StateRollingBack State = "rolling_back"
	StateCommitted   State = "committed"
	StateRolledBack  State = "rolled_back"
)

// Run is the mutable state of one ingestion. It is owned by a single
// Orchestrator.Run call and never shared.
type Run struct {
	State        State
	Fetched      int
	Inserted     int64
	TotalResults int
	// TotalKnown is false until a page reports totalResults.
	TotalKnown    bool
	NextURL       string
	MoreAvailable int
	Pages         int
}

// Remaining is the provider total minus what this run fetched, never negative.
func (r *Run) Remaining() int {
	if !r.TotalKnown || r.TotalResults <= r.Fetched {
		return 0
	}
	return r.TotalResults - r.Fetched
}

// Summary describes a committed run.
type Summary struct {
	State     State         `json:"state"`
	Fetched   int           `json:"fetched"`
	Inserted  int64         `json:"inserted"`
	Total     int           `json:"total"`
	Remaining int           `json:"remaining"`
	Pages     int           `json:"pages"`
	Duration  time.Duration `json:"duration"`
}
