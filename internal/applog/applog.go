// Package applog configures drozosearch's structured logging. All output
// goes to os.Stderr so stdout stays clean for piped search results.
//
// Adapted from AbdelazizMoustafa10m-Harvx's internal/config logging setup:
// the same log/slog text-or-JSON handler selection and idempotent
// SetupLogging, narrowed to the two environment variables drozosearch
// itself defines.
package applog

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup configures the global slog default logger at level, writing to
// os.Stderr in text or JSON format. Safe to call more than once.
func Setup(level slog.Level, format string) {
	SetupWithWriter(level, format, os.Stderr)
}

// SetupWithWriter is Setup with an explicit writer, for tests that want to
// capture log output instead of sending it to os.Stderr.
func SetupWithWriter(level slog.Level, format string, w io.Writer) {
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// ResolveLevel honors DROZOSEARCH_DEBUG=1 over the verbose flag, and the
// verbose flag over the default Info level.
func ResolveLevel(verbose bool) slog.Level {
	if os.Getenv("DROZOSEARCH_DEBUG") == "1" {
		return slog.LevelDebug
	}
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// ResolveFormat reads DROZOSEARCH_LOG_FORMAT ("json" or anything else,
// defaulting to text).
func ResolveFormat() string {
	if strings.EqualFold(os.Getenv("DROZOSEARCH_LOG_FORMAT"), "json") {
		return "json"
	}
	return "text"
}
