package server

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/DjordjeVuckovic/news-ingest/pkg/utils"
)

const (
	DefaultPort           = "8080"
	DefaultRequestTimeout = 5 * time.Minute
)

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
	// RequestTimeout bounds a single request. Fetch runs can page through
	// many provider responses, so it is generous.
	RequestTimeout time.Duration
}

func LoadConfig() (*Config, error) {
	useHttp2 := os.Getenv("USE_HTTP2") == "true"

	port := os.Getenv("PORT")
	if port == "" {
		port = DefaultPort
	}

	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := utils.SplitCSV(os.Getenv("CORS_ORIGINS"))
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	timeout := DefaultRequestTimeout
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid REQUEST_TIMEOUT value: %s", v)
		}
		timeout = d
	}

	return &Config{
		Port:           port,
		UseHttp2:       useHttp2,
		CorsOrigins:    origins,
		RequestTimeout: timeout,
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
