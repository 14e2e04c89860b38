package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

const (
	PathEnv = "ENV_PATH"
	AppEnv  = "APP_ENV"
)

// LoadDotEnv loads a .env file from ENV_PATH, or from defaultPath when
// ENV_PATH is unset. A missing file is only an error in local mode.
// Variables already present in the process environment win.
func LoadDotEnv(defaultPath string) error {
	envPath := os.Getenv(PathEnv)
	if envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	err := godotenv.Load(envPath)
	if err == nil {
		slog.Info("Loaded .env file", "path", envPath)
		return nil
	}

	if isLocal() && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to load environment variables in local mode", "error", err)
		return err
	}
	slog.Debug("Skipping .env ...", "path", envPath, "error", err)
	return nil
}

func isLocal() bool {
	appEnv := os.Getenv(AppEnv)
	return appEnv == "" || appEnv == "local"
}
