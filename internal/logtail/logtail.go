package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line; a missing file returns none.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var (
		ring  []string
		count int
		idx   int
	)
	if maxLines > 0 {
		ring = make([]string, maxLines)
	}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if maxLines <= 0 {
			ring = append(ring, scanner.Text())
			continue
		}
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if maxLines <= 0 {
		return ring, nil
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Filter keeps entries logged at min or above. Lines that are not JSON log
// entries are kept.
func Filter(lines []string, min zerolog.Level) []string {
	if min <= zerolog.TraceLevel {
		return lines
	}
	out := lines[:0:0]
	for _, line := range lines {
		if lvl, ok := level(line); ok && lvl < min {
			continue
		}
		out = append(out, line)
	}
	return out
}

func level(line string) (zerolog.Level, bool) {
	var entry struct {
		Level string `json:"level"`
	}
	if err := json.Unmarshal([]byte(line), &entry); err != nil || entry.Level == "" {
		return zerolog.NoLevel, false
	}
	lvl, err := zerolog.ParseLevel(entry.Level)
	if err != nil {
		return zerolog.NoLevel, false
	}
	return lvl, true
}

// Render writes lines to out in zerolog's console format. Lines that are not
// JSON are copied unchanged.
func Render(out io.Writer, lines []string, color bool) error {
	console := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !color,
		TimeFormat: time.DateTime,
	}
	for _, line := range lines {
		if _, err := console.Write([]byte(line)); err == nil {
			continue
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}
