package logger

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestLogBuffer collects log output; safe for concurrent writers.
type TestLogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *TestLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Entries decodes the captured JSON lines, skipping blank ones.
func (b *TestLogBuffer) Entries() ([]map[string]any, error) {
	var entries []map[string]any
	sc := bufio.NewScanner(strings.NewReader(b.String()))
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		entry := map[string]any{}
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, sc.Err()
}

// NewTestLogger returns a JSON logger at DEBUG that writes to the returned buffer.
func NewTestLogger(t *testing.T) (*slog.Logger, *TestLogBuffer) {
	t.Helper()
	buf := new(TestLogBuffer)
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), buf
}

// NewTestContext is NewTestLogger with the logger attached to a context.
func NewTestContext(t *testing.T) (context.Context, *TestLogBuffer) {
	t.Helper()
	l, buf := NewTestLogger(t)
	return WithLogger(context.Background(), l), buf
}

func AssertLogContains(t *testing.T, buf *TestLogBuffer, want string) {
	t.Helper()
	if got := buf.String(); !strings.Contains(got, want) {
		t.Errorf("log output does not contain %q:\n%s", want, got)
	}
}
