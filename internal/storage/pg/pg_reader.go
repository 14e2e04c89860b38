package pg

import (
	"context"
	"log/slog"

	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
)

const listNewsSQL = `
	SELECT
		id, uuid, COALESCE(url, ''), COALESCE(ord_in_thread, 0), parent_url, COALESCE(author, ''),
		published, COALESCE(title, ''), COALESCE(text, ''), COALESCE(highlight_text, ''),
		COALESCE(highlight_title, ''), COALESCE(highlight_thread_title, ''), COALESCE(language, ''),
		sentiment, categories, topics, ai_allow, has_canonical, webz_reporter,
		external_links, external_images, thread, entities, syndication, rating,
		crawled, updated, created_at
	FROM news
	ORDER BY created_at, id
	LIMIT $1 OFFSET $2
`

func (s *Storer) List(ctx context.Context, offset, limit int) ([]domain.News, error) {
	const op = "pg.Storer.List"

	slog.Debug("Listing news", "offset", offset, "limit", limit)

	rows, err := s.db.Query(ctx, listNewsSQL, limit, offset)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer rows.Close()

	news := make([]domain.News, 0, limit)
	for rows.Next() {
		var (
			n           domain.News
			thread      *domain.Thread
			entities    *domain.Entities
			syndication *domain.Syndication
		)
		if err := rows.Scan(
			&n.ID,
			&n.UUID,
			&n.URL,
			&n.OrdInThread,
			&n.ParentURL,
			&n.Author,
			&n.Published,
			&n.Title,
			&n.Text,
			&n.HighlightText,
			&n.HighlightTitle,
			&n.HighlightThreadTitle,
			&n.Language,
			&n.Sentiment,
			&n.Categories,
			&n.Topics,
			&n.AIAllow,
			&n.HasCanonical,
			&n.WebzReporter,
			&n.ExternalLinks,
			&n.ExternalImages,
			&thread,
			&entities,
			&syndication,
			&n.Rating,
			&n.Crawled,
			&n.Updated,
			&n.CreatedAt,
		); err != nil {
			return nil, wrapErr(op, err)
		}

		if thread != nil {
			n.Thread = *thread
		}
		if entities != nil {
			n.Entities = *entities
		}
		if syndication != nil {
			n.Syndication = *syndication
		}
		news = append(news, n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}

	return news, nil
}

func (s *Storer) Count(ctx context.Context) (int64, error) {
	const op = "pg.Storer.Count"

	var total int64
	if err := s.db.QueryRow(ctx, "SELECT COUNT(*) FROM news").Scan(&total); err != nil {
		return 0, wrapErr(op, err)
	}
	return total, nil
}
