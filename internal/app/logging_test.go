package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{" TRACE ", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"off", LogLevelDisabled},
		{"loud", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if LogLevelDisabled.Zerolog() != zerolog.Disabled {
		t.Error("disabled level should map to zerolog.Disabled")
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := WithComponent(NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf}), "bowmode")

	log.Info().Msg("hidden")
	log.Warn().Str("bow", "00013985").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}
	rec := gjson.Parse(lines[0])
	if rec.Get("component").String() != "bowmode" || rec.Get("bow").String() != "00013985" {
		t.Errorf("unexpected record %s", lines[0])
	}
	if !rec.Get("time").Exists() {
		t.Error("missing timestamp")
	}
}

func TestNewLoggerConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Console: true})
	log.Debug().Msg("phase")
	if !strings.Contains(buf.String(), "phase") || strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("unexpected console output %q", buf.String())
	}
}
