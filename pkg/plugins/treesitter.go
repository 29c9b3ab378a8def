package plugins

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"example.com/textspell/pkg/search"
)

// TreeSitterPlugin protects Go code outside comments and string literals
// using the tree-sitter Go grammar.
type TreeSitterPlugin struct {
	parser *sitter.Parser
}

// NewTreeSitterPlugin initializes the parser with the Go language grammar.
func NewTreeSitterPlugin() *TreeSitterPlugin {
	p := sitter.NewParser()
	p.SetLanguage(golang.GetLanguage())
	return &TreeSitterPlugin{parser: p}
}

// Name identifies the plugin.
func (t *TreeSitterPlugin) Name() string { return "tree-sitter-go" }

// Parse returns a syntax tree for the provided source code.
func (t *TreeSitterPlugin) Parse(src []byte) *sitter.Tree {
	return t.parser.Parse(nil, src)
}

var proseNodes = map[string]bool{
	"comment":                    true,
	"interpreted_string_literal": true,
	"raw_string_literal":         true,
	"rune_literal":               true,
}

// Protected returns the leaf tokens that are not part of a comment or a
// string literal.
func (t *TreeSitterPlugin) Protected(src []byte) []search.Range {
	if len(src) == 0 {
		return nil
	}
	tree := t.Parse(src)
	if tree == nil {
		return nil
	}
	defer tree.Close()
	ri := &runeIndex{src: src}
	var out []search.Range
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if proseNodes[n.Type()] {
			return
		}
		count := int(n.ChildCount())
		if count == 0 {
			if start, end := int(n.StartByte()), int(n.EndByte()); end > start {
				out = append(out, ri.span(start, end, "code"))
			}
			return
		}
		for i := 0; i < count; i++ {
			walk(n.Child(i))
		}
	}
	walk(tree.RootNode())
	return out
}
