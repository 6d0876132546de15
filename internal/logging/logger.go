// Package logging configures the process-wide slog logger for winnow.
// Operational output goes to stderr so stdout carries only results.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ParseLevel maps a level name to a slog.Level.
// Supported values: "error", "warn", "info", "debug" (case-insensitive).
// An empty name means error, the quiet default.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return slog.LevelError, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	default:
		return slog.LevelError, fmt.Errorf("invalid log level: %s (valid: error, warn, info, debug)", s)
	}
}

// NewLogger creates a leveled text logger writing to w.
func NewLogger(level slog.Level, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Setup installs a leveled text logger writing to w as the slog default.
func Setup(level slog.Level, w io.Writer) {
	slog.SetDefault(NewLogger(level, w))
}
