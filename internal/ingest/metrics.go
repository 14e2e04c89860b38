package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Runs that never open a transaction are counted under this result. All
// other runs use their final State.
const resultConfigError = "config_error"

var (
	// RunsTotal counts finished runs by result (committed, rolled_back, config_error)
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_ingest_runs_total",
			Help: "Total number of ingestion runs by result",
		},
		[]string{"result"},
	)

	PagesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_ingest_pages_fetched_total",
			Help: "Total number of provider pages fetched",
		},
	)

	RecordsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_ingest_records_fetched_total",
			Help: "Total number of provider records received",
		},
	)

	// RecordsInserted only counts rows of committed runs
	RecordsInserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_ingest_records_inserted_total",
			Help: "Total number of news rows committed",
		},
	)

	IndexFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "news_ingest_index_failures_total",
			Help: "Total number of failed search index updates after commit",
		},
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "news_ingest_run_duration_seconds",
			Help:    "Duration of ingestion runs",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)
)
