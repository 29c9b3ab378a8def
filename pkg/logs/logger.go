package logs

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger writes JSON lines with a timestamp and event fields.
// A nil *Logger is valid and discards every event.
type Logger struct {
	mu      sync.Mutex
	w       *bufio.Writer
	c       io.Closer
	enabled bool
}

// NewFromEnv returns a logger if TEXTSPELL_LOG is set to a truthy value
// or if TEXTSPELL_LOG_FILE is provided. Otherwise it returns a disabled logger.
// When enabled and no file is specified, it writes to ./textspell.log.
func NewFromEnv() *Logger {
	lf := os.Getenv("TEXTSPELL_LOG_FILE")
	enabled := false
	if v := os.Getenv("TEXTSPELL_LOG"); v != "" && v != "0" && v != "false" {
		enabled = true
	}
	if lf != "" {
		enabled = true
	}
	if !enabled {
		return &Logger{enabled: false}
	}
	if lf == "" {
		lf = filepath.Join(".", "textspell.log")
	}
	f, err := os.OpenFile(lf, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		// If we cannot open the requested file, disable logging silently.
		return &Logger{enabled: false}
	}
	return &Logger{w: bufio.NewWriter(f), c: f, enabled: true}
}

// New returns a logger writing JSON lines to w. Tests use it with a
// bytes.Buffer to assert on emitted events.
func New(w io.Writer) *Logger {
	l := &Logger{w: bufio.NewWriter(w), enabled: true}
	if c, ok := w.(io.Closer); ok {
		l.c = c
	}
	return l
}

// Enabled reports whether events are written anywhere.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Close flushes and closes the underlying file if enabled.
func (l *Logger) Close() {
	if !l.Enabled() {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.w.Flush()
	if l.c != nil {
		_ = l.c.Close()
	}
}

// Event writes a JSON line with the event name and fields.
// Common fields: language, start, end, force, word, file.
func (l *Logger) Event(event string, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	rec := map[string]any{
		"time":  time.Now().Format(time.RFC3339Nano),
		"event": event,
	}
	for k, v := range fields {
		rec[k] = v
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	enc := json.NewEncoder(l.w)
	_ = enc.Encode(rec)
	_ = l.w.Flush()
}

// Since writes event with an elapsed_ms field measured from start.
func (l *Logger) Since(event string, start time.Time, fields map[string]any) {
	if !l.Enabled() {
		return
	}
	rec := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		rec[k] = v
	}
	rec["elapsed_ms"] = float64(time.Since(start).Microseconds()) / 1000
	l.Event(event, rec)
}
