package provider

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/news-ingest/internal/apperr"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	APIKeyEnv  = "PROVIDER_API_KEY"
	BaseURLEnv = "PROVIDER_BASE_URL"
)

type Config struct {
	APIKey    string        `yaml:"api_key" env:"PROVIDER_API_KEY,WEBZ_IO_API_KEY"`
	BaseURL   string        `yaml:"base_url" env:"PROVIDER_BASE_URL,WEBZ_NEWS_URL"`
	Language  string        `yaml:"language" env:"SYSTEM_LANGUAGE" env-default:"EN"`
	Timeout   time.Duration `yaml:"timeout" env:"PROVIDER_TIMEOUT" env-default:"30s"`
	UserAgent string        `yaml:"user_agent" env:"PROVIDER_USER_AGENT" env-default:"news-ingest/1.0"`
}

// LoadConfig reads the provider settings from the environment. Missing
// credentials are not an error here; a run reports them before doing any I/O.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read provider config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	return &cfg, nil
}

// ClientOptions maps the transport settings onto a Client.
func (c Config) ClientOptions() []Option {
	return []Option{
		WithTimeout(c.Timeout),
		WithUserAgent(c.UserAgent),
	}
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return apperr.NewConfiguration(APIKeyEnv, "provider api key is not set")
	}
	if c.BaseURL == "" {
		return apperr.NewConfiguration(BaseURLEnv, "provider base url is not set")
	}
	return nil
}

// FirstPageURL expects q to be encoded already.
func (c Config) FirstPageURL(q string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/search?token=" + url.QueryEscape(c.APIKey) + "&q=" + q
}

// NextPageURL resolves a provider cursor. Cursors are usually a path plus
// query appended to the base URL; absolute ones are used as they are.
func (c Config) NextPageURL(cursor string) string {
	if cursor == "" {
		return ""
	}
	if u, err := url.Parse(cursor); err == nil && u.IsAbs() {
		return cursor
	}

	base := strings.TrimRight(c.BaseURL, "/")
	if !strings.HasPrefix(cursor, "/") && !strings.HasPrefix(cursor, "?") {
		cursor = "/" + cursor
	}
	return base + cursor
}

// RedactToken hides the token query parameter so URLs can be logged.
func RedactToken(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}

	q := u.Query()
	if q.Has("token") {
		q.Set("token", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
