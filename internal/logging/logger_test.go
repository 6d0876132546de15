package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/chriscorrea/winnow/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input       string
		expected    slog.Level
		expectError bool
	}{
		{"", slog.LevelError, false},
		{"error", slog.LevelError, false},
		{"WARN", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"info", slog.LevelInfo, false},
		{" debug ", slog.LevelDebug, false},
		{"trace", slog.LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := logging.ParseLevel(tt.input)
			if tt.expectError {
				if err == nil {
					t.Errorf("ParseLevel(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) unexpected error: %v", tt.input, err)
			}
			if level != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, level, tt.expected)
			}
		})
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLogger(slog.LevelInfo, &buf)

	logger.Debug("hidden message")
	logger.Info("visible message", "clusters", 4)

	output := buf.String()
	if strings.Contains(output, "hidden message") {
		t.Errorf("debug message logged at info level: %q", output)
	}
	if !strings.Contains(output, "visible message") || !strings.Contains(output, "clusters=4") {
		t.Errorf("info message missing from output: %q", output)
	}
}

func TestSetup(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	logging.Setup(slog.LevelDebug, &buf)

	slog.Debug("graph built", "edges", 3)
	if !strings.Contains(buf.String(), "edges=3") {
		t.Errorf("default logger did not write to buffer: %q", buf.String())
	}
}
