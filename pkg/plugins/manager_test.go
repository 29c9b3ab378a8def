package plugins

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type dummyPlugin struct{ name string }

func (d dummyPlugin) Name() string { return d.name }

func TestManagerRegisterAndGet(t *testing.T) {
	m := NewManager()
	p := dummyPlugin{name: "dummy"}
	m.Register(p)
	got, ok := m.Get("dummy")
	if !ok {
		t.Fatalf("expected plugin to be registered")
	}
	if got.Name() != "dummy" {
		t.Fatalf("unexpected plugin name: %s", got.Name())
	}
	if _, ok := m.Tagger("dummy"); ok {
		t.Fatalf("dummy plugin is not a tagger")
	}
}

func TestDefaultManager(t *testing.T) {
	m := NewDefaultManager()
	want := []string{"go-code", "markdown-code", "tree-sitter-go"}
	if got := m.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	if _, ok := m.Tagger("markdown-code"); !ok {
		t.Fatalf("markdown tagger missing")
	}
}

func TestDetectLanguageByPath(t *testing.T) {
	cfg := DefaultLanguageConfig()
	tests := []struct {
		path string
		id   string
	}{
		{"main.go", "go"},
		{"README.MD", "markdown"},
		{"notes.txt", "text"},
		{"Makefile", ""},
		{"image.png", ""},
	}
	for _, tt := range tests {
		lang := DetectLanguageByPath(cfg, tt.path)
		got := ""
		if lang != nil {
			got = lang.ID
		}
		if got != tt.id {
			t.Errorf("%s: got %q want %q", tt.path, got, tt.id)
		}
	}
	if TaggerForPath(cfg, "notes.txt") != nil {
		t.Fatalf("plain text has no tagger")
	}
	if TaggerForPath(cfg, "doc.md") == nil {
		t.Fatalf("markdown tagger expected")
	}
}

func TestLoadLanguageConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadLanguageConfig(filepath.Join(dir, "missing.json"))
	if err != nil || len(cfg.Languages) != len(DefaultLanguageConfig().Languages) {
		t.Fatalf("missing file: %v %v", cfg, err)
	}

	path := filepath.Join(dir, "languages.json")
	data := `{"languages":[{"id":"readme","name":"Readme","extensions":[".txt"],"tagger":"markdown-code"}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadLanguageConfig(path)
	if err != nil {
		t.Fatalf("LoadLanguageConfig: %v", err)
	}
	if lang := DetectLanguageByPath(cfg, "notes.txt"); lang == nil || lang.ID != "readme" {
		t.Fatalf("file entry should win, got %+v", lang)
	}
	if lang := DetectLanguageByPath(cfg, "main.go"); lang == nil || lang.ID != "go" {
		t.Fatalf("defaults kept, got %+v", lang)
	}

	for name, body := range map[string]string{
		"bad.json":    `{"languages":`,
		"tagger.json": `{"languages":[{"id":"x","extensions":[".x"],"tagger":"cobol"}]}`,
	} {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadLanguageConfig(p); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
