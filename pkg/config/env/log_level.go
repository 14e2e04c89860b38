package env

import (
	"log/slog"
	"os"
	"strings"
)

const LogLevelEnv = "LOG_LEVEL"

// LogLevel reads LOG_LEVEL (debug, info, warn, error). Anything else is info.
func LogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
