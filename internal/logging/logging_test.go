// ABOUTME: Tests for log level parsing and the tint logger.
package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", DefaultLevel, false},
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", DefaultLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden message")
	logger.Warn("visible message", "swimmers", 3)

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "swimmers") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if _, err := Setup("loud"); err == nil {
		t.Error("Setup should reject an unknown level")
	}
}
