//go:build tree_sitter

package plugins

// TaggerFor returns the tagger for the language when tree-sitter providers
// are available.
func TaggerFor(lang *LanguageSpec) Tagger {
	if lang == nil {
		return nil
	}
	switch lang.Tagger {
	case "go-code":
		return NewTreeSitterPlugin()
	case "markdown-code":
		return NewMarkdownTagger()
	default:
		return nil
	}
}
