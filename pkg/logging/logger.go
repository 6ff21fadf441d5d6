// Package logging is the shared structured-logging wrapper used across
// nhsim's commands and packages, mirroring the lazily-initialized
// slog.JSONHandler pattern of the retrieval pack's internal/log package.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the package-level structured logger. It is nil until the
// first call to Info/Warn/Error/Debug or an explicit Initialize.
var Logger *slog.Logger

// Initialize sets up the global structured logger, reading its level from
// the LOG_LEVEL environment variable (debug|info|warn|error, default info).
func Initialize() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	}))
	Logger = logger
	slog.SetDefault(logger)
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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

func ensure() {
	if Logger == nil {
		Initialize()
	}
}

// Info logs an informational message.
func Info(msg string, args ...any) { ensure(); Logger.Info(msg, args...) }

// Warn logs a warning message.
func Warn(msg string, args ...any) { ensure(); Logger.Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { ensure(); Logger.Error(msg, args...) }

// Debug logs a debug message.
func Debug(msg string, args ...any) { ensure(); Logger.Debug(msg, args...) }

// WithContext returns a logger with additional structured fields attached,
// such as a turn counter or worker ID to tag every line with.
func WithContext(args ...any) *slog.Logger {
	ensure()
	return Logger.With(args...)
}
