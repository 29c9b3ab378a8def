// Package editor manages a set of open documents, each with its own buffer
// and spell checker sharing one dictionary provider.
package editor

import (
	"fmt"
	"os"
	"strings"

	"example.com/textspell/pkg/buffer"
	"example.com/textspell/pkg/plugins"
	"example.com/textspell/pkg/spell"
	"example.com/textspell/pkg/spellhost"
)

// Document is one open text with the checker attached to it.
type Document struct {
	Path  string
	Buf   *buffer.TextBuffer
	Spell *spell.Checker
	// Protected counts the regions excluded by the file's tagger.
	Protected int
}

// Finding is a misspelled word located in a document. Line and Column are
// 1-based; Start and End are rune offsets.
type Finding struct {
	Path        string   `json:"path,omitempty"`
	Word        string   `json:"word"`
	Line        int      `json:"line"`
	Column      int      `json:"column"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Context     string   `json:"context,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Editor manages multiple documents and the focused document index.
type Editor struct {
	Docs    []*Document
	Current int

	provider  spell.Provider
	languages *plugins.LanguageConfig
	opts      []spell.Option
}

// New creates an empty Editor. A nil language config disables taggers.
func New(provider spell.Provider, languages *plugins.LanguageConfig, opts ...spell.Option) *Editor {
	return &Editor{provider: provider, languages: languages, opts: opts}
}

// Open adds text as a new document and makes it current. path selects the
// no-spell-check tagger and may be empty.
func (e *Editor) Open(path, text string) (*Document, error) {
	return e.OpenWith(path, text, plugins.TaggerForPath(e.languages, path))
}

// OpenWith is Open with an explicit tagger. A nil tagger protects nothing.
func (e *Editor) OpenWith(path, text string, tagger plugins.Tagger) (*Document, error) {
	tb := buffer.NewTextBuffer(text)
	n := 0
	if tagger != nil {
		var err error
		if n, err = plugins.ApplyNoSpellCheck(tb, tagger); err != nil {
			return nil, fmt.Errorf("tag %s: %w", path, err)
		}
	}
	c, err := spell.New(spellhost.New(tb), e.provider, e.opts...)
	if err != nil {
		return nil, err
	}
	d := &Document{Path: path, Buf: tb, Spell: c, Protected: n}
	e.Docs = append(e.Docs, d)
	e.Current = len(e.Docs) - 1
	return d, nil
}

// LoadFile reads a file and opens it as a new document.
func (e *Editor) LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	return e.Open(path, normalized)
}

// CurrentDocument returns the focused document or nil.
func (e *Editor) CurrentDocument() *Document {
	if e.Current >= 0 && e.Current < len(e.Docs) {
		return e.Docs[e.Current]
	}
	return nil
}

// Next advances focus to the next document and returns it.
func (e *Editor) Next() *Document {
	if len(e.Docs) == 0 {
		return nil
	}
	e.Current = (e.Current + 1) % len(e.Docs)
	return e.Docs[e.Current]
}

// Prev moves focus to the previous document and returns it.
func (e *Editor) Prev() *Document {
	if len(e.Docs) == 0 {
		return nil
	}
	e.Current = (e.Current - 1 + len(e.Docs)) % len(e.Docs)
	return e.Docs[e.Current]
}

// SetLanguage switches every document to code.
func (e *Editor) SetLanguage(code string) error {
	for _, d := range e.Docs {
		if err := d.Spell.SetLanguage(code); err != nil {
			return err
		}
	}
	return nil
}

// Findings returns the misspelled words of every document in order, with
// up to suggest suggestions each.
func (e *Editor) Findings(suggest int) []Finding {
	var out []Finding
	for _, d := range e.Docs {
		out = append(out, d.Findings(suggest)...)
	}
	return out
}

// Close detaches every checker. Buffers keep their markers.
func (e *Editor) Close() {
	for _, d := range e.Docs {
		d.Spell.Close()
	}
}

// Findings lists the document's misspelled words.
func (d *Document) Findings(suggest int) []Finding {
	var out []Finding
	for _, sp := range d.Spell.Misspelled() {
		line, col := d.Buf.LineAt(sp.Start)
		ls, le := d.Buf.LineBounds(line)
		f := Finding{
			Path:    d.Path,
			Word:    d.Buf.Text(sp.Start, sp.End),
			Line:    line + 1,
			Column:  col + 1,
			Start:   sp.Start,
			End:     sp.End,
			Context: d.Buf.Text(ls, le),
		}
		if suggest > 0 {
			s := d.Spell.Suggest(f.Word)
			if len(s) > suggest {
				s = s[:suggest]
			}
			f.Suggestions = s
		}
		out = append(out, f)
	}
	return out
}
