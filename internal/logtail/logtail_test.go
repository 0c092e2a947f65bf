package logtail

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, expectedAll},
		{"read all (negative)", -1, expectedAll},
		{"read partial (5)", 5, expectedAll[5:]},
		{"read exactly all (10)", 10, expectedAll},
		{"read more than exists (20)", 20, expectedAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v", got, err)
	}
}

func TestFilter(t *testing.T) {
	lines := []string{
		`{"level":"debug","message":"loading paste"}`,
		`{"level":"info","message":"paste saved"}`,
		`plain text`,
		`{"level":"warn","message":"paste metadata fetch failed"}`,
		`{"level":"error","message":"save failed"}`,
	}

	tests := []struct {
		name string
		min  zerolog.Level
		want int
	}{
		{"trace keeps all", zerolog.TraceLevel, 5},
		{"info drops debug", zerolog.InfoLevel, 4},
		{"warn", zerolog.WarnLevel, 3},
		{"error", zerolog.ErrorLevel, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(lines, tt.min)
			if len(got) != tt.want {
				t.Fatalf("Filter() kept %d lines (%v), want %d", len(got), got, tt.want)
			}
		})
	}

	if got := Filter(lines, zerolog.ErrorLevel); got[0] != "plain text" {
		t.Fatalf("non-JSON line not kept first: %v", got)
	}
}

func TestRender(t *testing.T) {
	lines := []string{
		`{"level":"info","id":"abc12345","time":"2026-01-02T03:04:05Z","message":"paste saved"}`,
		`not json`,
	}

	var out bytes.Buffer
	if err := Render(&out, lines, false); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	got := out.String()
	for _, want := range []string{"INF", "paste saved", "id=abc12345", "not json"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() output %q missing %q", got, want)
		}
	}
	if strings.Contains(got, `"message"`) {
		t.Errorf("JSON entry not formatted: %q", got)
	}
}
