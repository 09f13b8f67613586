package main

import (
	"log/slog"
	"os"

	"labrain/commands"
	"labrain/config"
)

func main() {
	config.Load()

	logger := setupLogger()
	slog.SetDefault(logger)

	commands.Execute(config.AppConfig.DataDir)
}

// setupLogger writes to stderr so command output on stdout stays clean.
func setupLogger() *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     getLogLevel(),
		AddSource: config.AppConfig.Env == "development" && config.AppConfig.LogLevel == "debug",
	}

	if config.AppConfig.Env == "production" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func getLogLevel() slog.Level {
	switch config.AppConfig.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
