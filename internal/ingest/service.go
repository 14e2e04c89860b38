package ingest

import (
	"context"
	"log/slog"

	"github.com/DjordjeVuckovic/news-ingest/internal/apperr"
	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
	"github.com/DjordjeVuckovic/news-ingest/internal/query"
	"github.com/DjordjeVuckovic/news-ingest/internal/storage"
	"github.com/DjordjeVuckovic/news-ingest/pkg/pagination"
)

// Service is the entry point used by the HTTP and CLI front ends.
type Service struct {
	orchestrator *Orchestrator
	reader       storage.NewsReader
}

func NewService(orchestrator *Orchestrator, reader storage.NewsReader) *Service {
	return &Service{
		orchestrator: orchestrator,
		reader:       reader,
	}
}

// FetchNews validates the clauses and performs one ingestion run.
func (s *Service) FetchNews(ctx context.Context, clauses []query.Clause) (*Summary, error) {
	if err := query.ValidateAll(clauses); err != nil {
		return nil, apperr.NewValidationWrap("invalid query", err)
	}

	return s.orchestrator.Run(ctx, clauses, func(fetched, remaining int) {
		slog.Info("Ingestion progress", "fetched", fetched, "remaining", remaining)
	})
}

// ListNews returns one page of stored news, oldest first.
func (s *Service) ListNews(ctx context.Context, req pagination.OffsetRequest) (*pagination.OffsetResult[domain.News], error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.NewValidationWrap("invalid pagination", err)
	}

	total, err := s.reader.Count(ctx)
	if err != nil {
		return nil, err
	}

	news, err := s.reader.List(ctx, req.Offset(), req.Limit)
	if err != nil {
		return nil, err
	}

	return pagination.NewOffsetResult(news, total, req.Page, req.Limit), nil
}
