package es

import (
	"time"

	"github.com/DjordjeVuckovic/news-ingest/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

const textAnalyzer = "news_analyzer"

// NewsDocument is the searchable subset of a stored news row.
type NewsDocument struct {
	ID            string     `json:"id"`
	UUID          string     `json:"uuid"`
	Title         string     `json:"title"`
	Text          string     `json:"text"`
	Author        string     `json:"author"`
	URL           string     `json:"url"`
	Language      string     `json:"language"`
	Sentiment     string     `json:"sentiment,omitempty"`
	Categories    []string   `json:"categories"`
	Topics        []string   `json:"topics"`
	Site          string     `json:"site"`
	Country       string     `json:"country"`
	FacebookLikes int        `json:"facebook_likes"`
	Persons       []string   `json:"persons"`
	Organizations []string   `json:"organizations"`
	Locations     []string   `json:"locations"`
	Published     *time.Time `json:"published,omitempty"`
	Crawled       *time.Time `json:"crawled,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	IndexedAt     time.Time  `json:"indexed_at"`
}

type IndexBuilder struct {
	now func() time.Time
}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{now: time.Now}
}

func (b *IndexBuilder) toDocument(n domain.News) NewsDocument {
	doc := NewsDocument{
		ID:            n.ID.String(),
		UUID:          n.UUID,
		Title:         n.Title,
		Text:          n.Text,
		Author:        n.Author,
		URL:           n.URL,
		Language:      n.Language,
		Categories:    n.Categories,
		Topics:        n.Topics,
		Site:          n.Thread.Site,
		Country:       n.Thread.Country,
		FacebookLikes: n.Thread.Social.Facebook.Likes,
		Persons:       entityNames(n.Entities.Persons),
		Organizations: entityNames(n.Entities.Organizations),
		Locations:     entityNames(n.Entities.Locations),
		Published:     n.Published,
		Crawled:       n.Crawled,
		CreatedAt:     n.CreatedAt,
		IndexedAt:     b.now().UTC(),
	}
	if n.Sentiment != nil {
		doc.Sentiment = *n.Sentiment
	}
	return doc
}

func entityNames(entities []domain.Entity) []string {
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Name)
	}
	return names
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				textAnalyzer: types.StandardAnalyzer{
					Stopwords: []string{"_none_"},
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":             types.NewKeywordProperty(),
			"uuid":           types.NewKeywordProperty(),
			"title":          b.textWithKeyword(textAnalyzer),
			"text":           b.text(textAnalyzer),
			"author":         b.textWithKeyword(""),
			"url":            types.NewKeywordProperty(),
			"language":       types.NewKeywordProperty(),
			"sentiment":      types.NewKeywordProperty(),
			"categories":     types.NewKeywordProperty(),
			"topics":         types.NewKeywordProperty(),
			"site":           types.NewKeywordProperty(),
			"country":        types.NewKeywordProperty(),
			"facebook_likes": types.NewIntegerNumberProperty(),
			"persons":        types.NewKeywordProperty(),
			"organizations":  types.NewKeywordProperty(),
			"locations":      types.NewKeywordProperty(),
			"published":      types.NewDateProperty(),
			"crawled":        types.NewDateProperty(),
			"created_at":     types.NewDateProperty(),
			"indexed_at":     types.NewDateProperty(),
		},
	}
}

func (b *IndexBuilder) text(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	return textProp
}

func (b *IndexBuilder) textWithKeyword(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
