package plugins

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LanguageSpec defines a language entry in config.
type LanguageSpec struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
	Tagger     string   `json:"tagger"`
}

// LanguageConfig is the root schema.
type LanguageConfig struct {
	Languages []LanguageSpec `json:"languages"`
}

var defaultLanguageConfig = LanguageConfig{
	Languages: []LanguageSpec{
		{ID: "go", Name: "Go", Extensions: []string{".go"}, Tagger: "go-code"},
		{ID: "markdown", Name: "Markdown", Extensions: []string{".md", ".markdown"}, Tagger: "markdown-code"},
		{ID: "text", Name: "Plain text", Extensions: []string{".txt"}},
	},
}

// DefaultLanguageConfig returns a copy of the built-in language table.
func DefaultLanguageConfig() *LanguageConfig {
	return &LanguageConfig{Languages: append([]LanguageSpec(nil), defaultLanguageConfig.Languages...)}
}

// knownTaggers are the names a language entry may refer to.
var knownTaggers = map[string]bool{"": true, "go-code": true, "markdown-code": true}

// LoadLanguageConfig reads extra language entries from a JSON file. They
// take precedence over the built-in table. A missing file yields the
// defaults.
func LoadLanguageConfig(path string) (*LanguageConfig, error) {
	cfg := DefaultLanguageConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	var extra LanguageConfig
	if err := json.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("language config %s: %w", path, err)
	}
	for _, l := range extra.Languages {
		if !knownTaggers[l.Tagger] {
			return nil, fmt.Errorf("language config %s: %s: unknown tagger %q", path, l.ID, l.Tagger)
		}
	}
	cfg.Languages = append(extra.Languages, cfg.Languages...)
	return cfg, nil
}

// DetectLanguageByPath returns the first matching language by extension.
func DetectLanguageByPath(cfg *LanguageConfig, path string) *LanguageSpec {
	ext := strings.ToLower(filepath.Ext(path))
	if cfg == nil || ext == "" {
		return nil
	}
	for _, lang := range cfg.Languages {
		for _, e := range lang.Extensions {
			if strings.EqualFold(e, ext) {
				l := lang
				return &l
			}
		}
	}
	return nil
}

// TaggerForPath detects the language of path and returns its tagger, or
// nil for prose files and unknown extensions.
func TaggerForPath(cfg *LanguageConfig, path string) Tagger {
	return TaggerFor(DetectLanguageByPath(cfg, path))
}

// TaggerFor is provided by build-specific files (see language_provider_*.go).
