package unittest

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var verbose = flag.Bool("vv", false, "print debugging logs")

// Logger returns the logger handed to clients and providers under test.
// use -vv flag to print debugging logs for tests
func Logger() zerolog.Logger {
	var writer io.Writer = io.Discard
	if *verbose {
		writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339Nano}
	}
	return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Str("node", "test").Logger()
}

// LogEntry is one JSON line written by a logger from RecordingLogger.
type LogEntry map[string]interface{}

func (e LogEntry) Message() string {
	msg, _ := e[zerolog.MessageFieldName].(string)
	return msg
}

func (e LogEntry) Str(field string) string {
	s, _ := e[field].(string)
	return s
}

// LogRecorder keeps the lines written by a recording logger.
type LogRecorder struct {
	t   testing.TB
	mu  sync.Mutex
	buf bytes.Buffer
}

func (r *LogRecorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.buf.Write(p)
}

// Entries returns the lines logged so far.
func (r *LogRecorder) Entries() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var entries []LogEntry
	for _, line := range bytes.Split(bytes.TrimSpace(r.buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var entry LogEntry
		require.NoError(r.t, json.Unmarshal(line, &entry))
		entries = append(entries, entry)
	}
	return entries
}

// Find returns the entries with the given message.
func (r *LogRecorder) Find(msg string) []LogEntry {
	var found []LogEntry
	for _, entry := range r.Entries() {
		if entry.Message() == msg {
			found = append(found, entry)
		}
	}
	return found
}

// RecordingLogger returns a debug level logger whose lines can be inspected.
func RecordingLogger(t testing.TB) (zerolog.Logger, *LogRecorder) {
	recorder := &LogRecorder{t: t}
	return zerolog.New(recorder).Level(zerolog.DebugLevel), recorder
}
