package logging

import (
	"log/slog"
	"os"
)

func level() slog.Level {
	l, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		return slog.LevelInfo
	}
	switch l {
	case "dev", "development", "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "production", "prod":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Init installs a text handler on the default logger. Used by the CLI, where
// logs share the terminal with chat output.
func Init() {
	slog.SetDefault(slog.New(
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level()}),
	))
}

// InitJSON installs a JSON handler on the default logger. Used by the server.
func InitJSON() {
	slog.SetDefault(slog.New(
		slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level()}),
	))
}
