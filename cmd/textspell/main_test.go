package main_test

import (
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"example.com/textspell/internal/testhelpers"
)

// run executes the textspell binary with an isolated HOME and returns its
// combined output and exit code.
func run(t *testing.T, bin, stdin string, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(bin, append([]string{"--color", "off"}, args...)...)
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir(), "TEXTSPELL_LOG=", "TEXTSPELL_LOG_FILE=")
	cmd.Stdin = strings.NewReader(stdin)
	out, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return string(out), 0
	case errors.As(err, &exitErr):
		return string(out), exitErr.ExitCode()
	default:
		t.Fatalf("run %v: %v\n%s", args, err, out)
		return "", -1
	}
}

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestCheckCommand(t *testing.T) {
	bin := testhelpers.BuildBin(t, "textspell", "./cmd/textspell")
	dir := t.TempDir()
	txt := writeFile(t, dir, "a.txt", "hello world teh\n")
	md := writeFile(t, dir, "b.md", "hello `zzqq` world\n\n```\nqqzz\n```\n")

	out, code := run(t, bin, "", "check", txt)
	if code != 1 {
		t.Fatalf("exit code = %d, output %q", code, out)
	}
	if !strings.Contains(out, txt+":1:13: teh") {
		t.Fatalf("output = %q", out)
	}

	out, code = run(t, bin, "", "check", md)
	if code != 0 || out != "" {
		t.Fatalf("markdown code was checked: %d %q", code, out)
	}

	out, code = run(t, bin, "", "check", "--tagger", "none", md)
	if code != 1 || !strings.Contains(out, "zzqq") || !strings.Contains(out, "qqzz") {
		t.Fatalf("--tagger none: %d %q", code, out)
	}
}

func TestCheckJSONFromStdin(t *testing.T) {
	bin := testhelpers.BuildBin(t, "textspell", "./cmd/textspell")
	out, code := run(t, bin, "the cat\nsat on teh mat\n", "check", "--format", "json", "--suggestions", "0", "-")
	if code != 1 {
		t.Fatalf("exit code = %d, output %q", code, out)
	}
	var findings []struct {
		Path   string `json:"path"`
		Word   string `json:"word"`
		Line   int    `json:"line"`
		Column int    `json:"column"`
	}
	if err := json.Unmarshal([]byte(out), &findings); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	words := map[string]bool{}
	for _, f := range findings {
		words[f.Word] = true
		if f.Path != "<stdin>" {
			t.Fatalf("path = %q", f.Path)
		}
	}
	if !words["teh"] || words["the"] || words["cat"] {
		t.Fatalf("findings = %+v", findings)
	}
}

func TestCheckErrors(t *testing.T) {
	bin := testhelpers.BuildBin(t, "textspell", "./cmd/textspell")
	dir := t.TempDir()
	txt := writeFile(t, dir, "a.txt", "hello\n")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown language", []string{"--language", "xx", "check", txt}, "unknown language"},
		{"missing file", []string{"check", filepath.Join(dir, "nope.txt")}, "nope.txt"},
		{"bad format", []string{"check", "--format", "xml", txt}, "unknown format"},
		{"bad tagger", []string{"check", "--tagger", "cobol", txt}, "unknown tagger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := run(t, bin, "", tt.args...)
			if code != 2 || !strings.Contains(out, tt.want) {
				t.Fatalf("exit %d, output %q", code, out)
			}
		})
	}
}

func TestCheckConfigFilters(t *testing.T) {
	bin := testhelpers.BuildBin(t, "textspell", "./cmd/textspell")
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", "[filters]\nline = ['^#.*$']\n")
	txt := writeFile(t, dir, "a.txt", "# teh heading\nhello\n")
	out, code := run(t, bin, "", "--config", cfg, "check", txt)
	if code != 0 {
		t.Fatalf("exit %d, output %q", code, out)
	}
}

func TestSuggestAndLanguages(t *testing.T) {
	bin := testhelpers.BuildBin(t, "textspell", "./cmd/textspell")
	out, code := run(t, bin, "", "suggest", "helo", "hello")
	if code != 0 {
		t.Fatalf("exit %d, output %q", code, out)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "helo: ") || !strings.Contains(lines[0], "hello") {
		t.Fatalf("suggest output = %q", out)
	}
	if lines[1] != "hello: correct" {
		t.Fatalf("suggest output = %q", out)
	}

	out, code = run(t, bin, "", "languages")
	if code != 0 || !strings.Contains(out, "* en") || !strings.Contains(out, "English") {
		t.Fatalf("languages: %d %q", code, out)
	}
}
