package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RawNews is a post as the provider returns it. Timestamps stay as text
// until the record is projected into News.
type RawNews struct {
	UUID                 string      `json:"uuid"`
	URL                  string      `json:"url"`
	OrdInThread          int         `json:"ord_in_thread"`
	ParentURL            *string     `json:"parent_url"`
	Author               string      `json:"author"`
	Published            string      `json:"published"`
	Title                string      `json:"title"`
	Text                 string      `json:"text"`
	HighlightText        string      `json:"highlightText"`
	HighlightTitle       string      `json:"highlightTitle"`
	HighlightThreadTitle string      `json:"highlightThreadTitle"`
	Language             string      `json:"language"`
	Sentiment            *string     `json:"sentiment"`
	Categories           []string    `json:"categories"`
	Topics               []string    `json:"topics"`
	AIAllow              bool        `json:"ai_allow"`
	HasCanonical         bool        `json:"has_canonical"`
	WebzReporter         bool        `json:"webz_reporter"`
	ExternalLinks        []string    `json:"external_links"`
	ExternalImages       []string    `json:"external_images"`
	Entities             Entities    `json:"entities"`
	Syndication          Syndication `json:"syndication"`
	Rating               *float64    `json:"rating"`
	Crawled              string      `json:"crawled"`
	Updated              string      `json:"updated"`
	Thread               Thread      `json:"thread"`
}

type Thread struct {
	UUID              string   `json:"uuid,omitempty"`
	URL               string   `json:"url"`
	SiteFull          string   `json:"site_full"`
	Site              string   `json:"site"`
	SiteSection       string   `json:"site_section"`
	SiteCategories    []string `json:"site_categories"`
	SectionTitle      string   `json:"section_title"`
	Title             string   `json:"title"`
	TitleFull         string   `json:"title_full"`
	Published         string   `json:"published"`
	RepliesCount      int      `json:"replies_count"`
	ParticipantsCount int      `json:"participants_count"`
	SiteType          string   `json:"site_type"`
	Country           string   `json:"country"`
	MainImage         string   `json:"main_image"`
	PerformanceScore  int      `json:"performance_score"`
	DomainRank        *int     `json:"domain_rank"`
	DomainRankUpdated *string  `json:"domain_rank_updated"`
	Social            Social   `json:"social"`
}

type Social struct {
	Updated  *string        `json:"updated,omitempty"`
	Facebook FacebookSocial `json:"facebook"`
	VK       VKSocial       `json:"vk"`
}

type FacebookSocial struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

type VKSocial struct {
	Shares int `json:"shares"`
}

type Entities struct {
	Persons       []Entity `json:"persons"`
	Organizations []Entity `json:"organizations"`
	Locations     []Entity `json:"locations"`
}

type Entity struct {
	Name      string `json:"name"`
	Sentiment string `json:"sentiment,omitempty"`
}

// UnmarshalJSON accepts both {"name":..,"sentiment":..} and a bare name.
func (e *Entity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.Name)
	}

	type plain Entity
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Entity(p)
	return nil
}

type Syndication struct {
	Syndicated      *bool   `json:"syndicated"`
	SyndicateID     *string `json:"syndicate_id"`
	FirstSyndicated bool    `json:"first_syndicated"`
}

// News is the stored projection of a RawNews. UUID is the provider's natural
// key, ID is ours.
type News struct {
	ID                   uuid.UUID   `json:"id"`
	UUID                 string      `json:"uuid"`
	URL                  string      `json:"url,omitempty"`
	OrdInThread          int         `json:"ordInThread"`
	ParentURL            *string     `json:"parentUrl,omitempty"`
	Author               string      `json:"author,omitempty"`
	Published            *time.Time  `json:"published,omitempty"`
	Title                string      `json:"title"`
	Text                 string      `json:"text"`
	HighlightText        string      `json:"highlightText,omitempty"`
	HighlightTitle       string      `json:"highlightTitle,omitempty"`
	HighlightThreadTitle string      `json:"highlightThreadTitle,omitempty"`
	Language             string      `json:"language,omitempty"`
	Sentiment            *string     `json:"sentiment,omitempty"`
	Categories           []string    `json:"categories"`
	Topics               []string    `json:"topics"`
	AIAllow              bool        `json:"aiAllow"`
	HasCanonical         bool        `json:"hasCanonical"`
	WebzReporter         bool        `json:"webzReporter"`
	ExternalLinks        []string    `json:"externalLinks"`
	ExternalImages       []string    `json:"externalImages"`
	Thread               Thread      `json:"thread"`
	Entities             Entities    `json:"entities"`
	Syndication          Syndication `json:"syndication"`
	Rating               *float64    `json:"rating,omitempty"`
	Crawled              *time.Time  `json:"crawled,omitempty"`
	Updated              *time.Time  `json:"updated,omitempty"`
	CreatedAt            time.Time   `json:"createdAt"`
}

// NewNews projects a provider record. Unparseable timestamps become nil.
func NewNews(raw RawNews, id uuid.UUID, createdAt time.Time) News {
	return News{
		ID:                   id,
		UUID:                 raw.UUID,
		URL:                  raw.URL,
		OrdInThread:          raw.OrdInThread,
		ParentURL:            raw.ParentURL,
		Author:               raw.Author,
		Published:            ParseTime(raw.Published),
		Title:                raw.Title,
		Text:                 raw.Text,
		HighlightText:        raw.HighlightText,
		HighlightTitle:       raw.HighlightTitle,
		HighlightThreadTitle: raw.HighlightThreadTitle,
		Language:             raw.Language,
		Sentiment:            raw.Sentiment,
		Categories:           nonNil(raw.Categories),
		Topics:               nonNil(raw.Topics),
		AIAllow:              raw.AIAllow,
		HasCanonical:         raw.HasCanonical,
		WebzReporter:         raw.WebzReporter,
		ExternalLinks:        nonNil(raw.ExternalLinks),
		ExternalImages:       nonNil(raw.ExternalImages),
		Thread:               raw.Thread,
		Entities:             raw.Entities,
		Syndication:          raw.Syndication,
		Rating:               raw.Rating,
		Crawled:              ParseTime(raw.Crawled),
		Updated:              ParseTime(raw.Updated),
		CreatedAt:            createdAt,
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func ParseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
