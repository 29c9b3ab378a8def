//go:build !tree_sitter

package plugins

// TaggerFor returns the tagger for the language when tree-sitter providers
// are not available. Go sources fall back to the standard library scanner.
func TaggerFor(lang *LanguageSpec) Tagger {
	if lang == nil {
		return nil
	}
	switch lang.Tagger {
	case "go-code":
		return NewGoTagger()
	case "markdown-code":
		return NewMarkdownTagger()
	default:
		return nil
	}
}
