package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// LogCapture collects JSON log lines written during a test.
type LogCapture struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *LogCapture) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *LogCapture) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}

// Entries decodes every captured line, failing the test on malformed output.
func (c *LogCapture) Entries(t *testing.T) []map[string]any {
	t.Helper()

	var entries []map[string]any
	scanner := bufio.NewScanner(bytes.NewReader([]byte(c.String())))
	scanner.Buffer(nil, 1<<26)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry), "log line: %s", line)
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

// Find returns the last entry whose message is msg, or nil.
func (c *LogCapture) Find(t *testing.T, msg string) map[string]any {
	t.Helper()

	var found map[string]any
	for _, entry := range c.Entries(t) {
		if entry[slog.MessageKey] == msg {
			found = entry
		}
	}
	return found
}

// AssertContains fails the test unless some captured output contains s.
func (c *LogCapture) AssertContains(t *testing.T, s string) {
	t.Helper()
	assert.Contains(t, c.String(), s)
}

// CaptureLogs installs a debug-level JSON logger as the slog default for the
// duration of the test and returns it along with its output.
func CaptureLogs(t *testing.T) (*LogCapture, *slog.Logger) {
	t.Helper()

	capture := &LogCapture{}
	log := slog.New(slog.NewJSONHandler(capture, &slog.HandlerOptions{Level: slog.LevelDebug}))

	previous := slog.Default()
	slog.SetDefault(log)
	t.Cleanup(func() { slog.SetDefault(previous) })

	return capture, log
}
