package logs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func decode(t *testing.T, line string) map[string]any {
	t.Helper()
	var rec map[string]any
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		t.Fatalf("decode %q: %v", line, err)
	}
	return rec
}

func TestEventWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Event("spell.add", map[string]any{"word": "teh", "language": "en"})
	l.Since("check.done", time.Now().Add(-5*time.Millisecond), map[string]any{"files": 2})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	rec := decode(t, lines[0])
	if rec["event"] != "spell.add" || rec["word"] != "teh" || rec["time"] == nil {
		t.Fatalf("record = %v", rec)
	}
	rec = decode(t, lines[1])
	if ms, ok := rec["elapsed_ms"].(float64); !ok || ms < 5 || rec["files"] != float64(2) {
		t.Fatalf("record = %v", rec)
	}
}

func TestNilAndDisabledLoggers(t *testing.T) {
	var l *Logger
	if l.Enabled() {
		t.Fatal("nil logger enabled")
	}
	l.Event("x", nil)
	l.Since("x", time.Now(), nil)
	l.Close()

	t.Setenv("TEXTSPELL_LOG", "")
	t.Setenv("TEXTSPELL_LOG_FILE", "")
	if NewFromEnv().Enabled() {
		t.Fatal("logger enabled without env")
	}
}

func TestNewFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spell.log")
	t.Setenv("TEXTSPELL_LOG_FILE", path)
	l := NewFromEnv()
	if !l.Enabled() {
		t.Fatal("expected enabled logger")
	}
	l.Event("open.success", map[string]any{"file": "a.txt"})
	l.Close()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if rec := decode(t, strings.TrimSpace(string(data))); rec["event"] != "open.success" {
		t.Fatalf("record = %v", rec)
	}
}
