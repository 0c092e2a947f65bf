package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewConsole_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsole(&buf, "warn")
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("console output = %q", out)
	}
}

func TestNewFile_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pasta.log")
	log, closer, err := NewFile(path, "debug")
	if err != nil {
		t.Fatalf("NewFile returned error: %v", err)
	}
	log.Debug().Str("id", "abc").Msg("loading paste")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if entry["message"] != "loading paste" || entry["id"] != "abc" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestNewFile_EmptyPath(t *testing.T) {
	if _, _, err := NewFile(" ", "info"); err == nil {
		t.Fatalf("NewFile accepted an empty path")
	}
}
