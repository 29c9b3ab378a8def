package plugins

import (
	"go/scanner"
	"go/token"

	"example.com/textspell/pkg/search"
)

// GoTagger protects Go code outside comments and string literals, so only
// prose gets checked. It runs on the standard library scanner and is the
// fallback when the tree-sitter build tag is off.
type GoTagger struct{}

func NewGoTagger() *GoTagger { return &GoTagger{} }

func (g *GoTagger) Name() string { return "go-code" }

func (g *GoTagger) Protected(src []byte) []search.Range {
	if len(src) == 0 {
		return nil
	}
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(src))
	var s scanner.Scanner
	// Errors are ignored: half-typed code still yields usable tokens.
	s.Init(file, src, func(token.Position, string) {}, scanner.ScanComments)
	ri := &runeIndex{src: src}
	var out []search.Range
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		switch tok {
		case token.COMMENT, token.STRING, token.CHAR:
			continue
		case token.SEMICOLON:
			if lit == "\n" {
				continue
			}
		}
		start := file.Offset(pos)
		n := len(lit)
		if n == 0 {
			n = len(tok.String())
		}
		if start+n > len(src) {
			n = len(src) - start
		}
		out = append(out, ri.span(start, start+n, "code"))
	}
	return out
}
