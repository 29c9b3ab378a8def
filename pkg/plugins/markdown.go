package plugins

import (
	"bytes"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"example.com/textspell/pkg/search"
)

// MarkdownTagger protects the parts of a Markdown document that are not
// prose:
// - code spans and indented or fenced code blocks (with the info string)
// - raw HTML, inline and block
// - link and image destinations, autolinks
type MarkdownTagger struct {
	md goldmark.Markdown
}

func NewMarkdownTagger() *MarkdownTagger {
	return &MarkdownTagger{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

func (m *MarkdownTagger) Name() string { return "markdown-code" }

type byteSpan struct {
	start, end int
	group      string
}

func (m *MarkdownTagger) Protected(src []byte) []search.Range {
	if len(src) == 0 {
		return nil
	}
	doc := m.md.Parser().Parse(text.NewReader(src))
	var spans []byteSpan
	add := func(start, end int, group string) {
		if end > start {
			spans = append(spans, byteSpan{start: start, end: end, group: group})
		}
	}
	addLines := func(segs *text.Segments, group string) {
		for i := 0; i < segs.Len(); i++ {
			seg := segs.At(i)
			add(seg.Start, seg.Stop, group)
		}
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.CodeSpan:
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*ast.Text); ok {
					add(t.Segment.Start, t.Segment.Stop, "code")
				}
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock:
			if n.Info != nil {
				add(n.Info.Segment.Start, n.Info.Segment.Stop, "code")
			}
			addLines(n.Lines(), "code")
			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			addLines(n.Lines(), "code")
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			addLines(n.Lines(), "html")
			if n.HasClosure() {
				add(n.ClosureLine.Start, n.ClosureLine.Stop, "html")
			}
			return ast.WalkSkipChildren, nil
		case *ast.RawHTML:
			addLines(n.Segments, "html")
		case *ast.Link:
			if s, ok := destinationSpan(src, lastTextStop(n), n.Destination); ok {
				add(s.start, s.end, "link")
			}
		case *ast.Image:
			if s, ok := destinationSpan(src, lastTextStop(n), n.Destination); ok {
				add(s.start, s.end, "link")
			}
		case *ast.AutoLink:
			if s, ok := destinationSpan(src, inlineStart(n), n.Label(src)); ok {
				add(s.start, s.end, "link")
			}
		}
		return ast.WalkContinue, nil
	})
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	ri := &runeIndex{src: src}
	out := make([]search.Range, 0, len(spans))
	for _, s := range spans {
		out = append(out, ri.span(s.start, s.end, s.group))
	}
	return out
}

// destinationSpan locates the first occurrence of dest in src at or after from.
func destinationSpan(src []byte, from int, dest []byte) (byteSpan, bool) {
	if len(dest) == 0 || from < 0 || from > len(src) {
		return byteSpan{}, false
	}
	idx := bytes.Index(src[from:], dest)
	if idx < 0 {
		return byteSpan{}, false
	}
	return byteSpan{start: from + idx, end: from + idx + len(dest)}, true
}

// lastTextStop returns the end of the last text segment inside n, falling
// back to inlineStart.
func lastTextStop(n ast.Node) int {
	stop := -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := c.(*ast.Text); ok && entering && t.Segment.Stop > stop {
			stop = t.Segment.Stop
		}
		return ast.WalkContinue, nil
	})
	if stop < 0 {
		return inlineStart(n)
	}
	return stop
}

// inlineStart estimates where an inline node without text children begins:
// after its previous text sibling, or at the start of its block.
func inlineStart(n ast.Node) int {
	for p := n.PreviousSibling(); p != nil; p = p.PreviousSibling() {
		if t, ok := p.(*ast.Text); ok {
			return t.Segment.Stop
		}
	}
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == ast.TypeBlock && p.Lines().Len() > 0 {
			return p.Lines().At(0).Start
		}
	}
	return 0
}
