// Package spellhost adapts buffer.TextBuffer to the spell.Buffer interface.
package spellhost

import (
	"example.com/textspell/pkg/buffer"
	"example.com/textspell/pkg/spell"
)

// Host wraps a TextBuffer so a spell.Checker can drive it.
type Host struct {
	tb *buffer.TextBuffer
}

var _ spell.Buffer = (*Host)(nil)

// New returns a Host for tb.
func New(tb *buffer.TextBuffer) *Host { return &Host{tb: tb} }

// TextBuffer returns the wrapped buffer.
func (h *Host) TextBuffer() *buffer.TextBuffer { return h.tb }

type mark struct{ m *buffer.Mark }

func (m mark) Offset() int { return m.m.Offset() }

type tag struct{ t *buffer.Tag }

func (t tag) Name() string                    { return t.t.Name() }
func (t tag) Property(key string) (any, bool) { return t.t.Property(key) }

// Unwrap returns the TextBuffer tag behind a spell.Tag, or nil.
func Unwrap(t spell.Tag) *buffer.Tag {
	if x, ok := t.(tag); ok {
		return x.t
	}
	return nil
}

// Wrap returns the spell.Tag for a TextBuffer tag.
func Wrap(t *buffer.Tag) spell.Tag {
	if t == nil {
		return nil
	}
	return tag{t}
}

func unwrapMark(m spell.Mark) *buffer.Mark {
	if x, ok := m.(mark); ok {
		return x.m
	}
	return nil
}

func (h *Host) Len() int                      { return h.tb.Len() }
func (h *Host) Text(start, end int) string    { return h.tb.Text(start, end) }
func (h *Host) StartsWord(off int) bool       { return h.tb.StartsWord(off) }
func (h *Host) InsideWord(off int) bool       { return h.tb.InsideWord(off) }
func (h *Host) EndsWord(off int) bool         { return h.tb.EndsWord(off) }
func (h *Host) ForwardWordEnd(off int) int    { return h.tb.ForwardWordEnd(off) }
func (h *Host) BackwardWordStart(off int) int { return h.tb.BackwardWordStart(off) }

func (h *Host) LineAt(off int) (line, col int)       { return h.tb.LineAt(off) }
func (h *Host) LineBounds(line int) (start, end int) { return h.tb.LineBounds(line) }

func (h *Host) CreateMark(name string, off int, leftGravity bool) spell.Mark {
	return mark{h.tb.CreateMark(name, off, leftGravity)}
}

func (h *Host) MoveMark(m spell.Mark, off int) { h.tb.MoveMark(unwrapMark(m), off) }
func (h *Host) DeleteMark(m spell.Mark)        { h.tb.DeleteMark(unwrapMark(m)) }
func (h *Host) Cursor() spell.Mark             { return mark{h.tb.Cursor()} }

func (h *Host) Tags() spell.TagTable { return table{h.tb.Tags()} }

func (h *Host) ApplyTag(t spell.Tag, start, end int)  { h.tb.ApplyTag(Unwrap(t), start, end) }
func (h *Host) RemoveTag(t spell.Tag, start, end int) { h.tb.RemoveTag(Unwrap(t), start, end) }
func (h *Host) HasTag(t spell.Tag, off int) bool      { return h.tb.HasTag(Unwrap(t), off) }

func (h *Host) TagSpans(t spell.Tag, start, end int) []spell.Span {
	spans := h.tb.TagSpans(Unwrap(t), start, end)
	if len(spans) == 0 {
		return nil
	}
	out := make([]spell.Span, len(spans))
	for i, s := range spans {
		out[i] = spell.Span{Start: s.Start, End: s.End}
	}
	return out
}

func (h *Host) Insert(off int, text string) error { return h.tb.Insert(off, text) }
func (h *Host) Delete(start, end int) error       { return h.tb.Delete(start, end) }
func (h *Host) BeginUserAction()                  { h.tb.BeginUserAction() }
func (h *Host) EndUserAction()                    { h.tb.EndUserAction() }

func (h *Host) Subscribe(o spell.BufferObserver) func() {
	return h.tb.Subscribe(observer{o})
}

type observer struct{ o spell.BufferObserver }

func (x observer) BeforeInsert(off int, text string) { x.o.BeforeInsert(off, text) }
func (x observer) AfterInsert(start, end int)        { x.o.AfterInsert(start, end) }
func (x observer) AfterDelete(start, end int)        { x.o.AfterDelete(start, end) }
func (x observer) MarkSet(m *buffer.Mark)            { x.o.MarkSet(mark{m}) }

type table struct{ tt *buffer.TagTable }

func (t table) Lookup(name string) spell.Tag { return Wrap(t.tt.Lookup(name)) }

func (t table) Create(name string, props map[string]any) (spell.Tag, error) {
	x, err := t.tt.Create(name, props)
	if err != nil {
		return nil, err
	}
	return tag{x}, nil
}

func (t table) ForEach(fn func(spell.Tag)) {
	t.tt.ForEach(func(x *buffer.Tag) { fn(tag{x}) })
}

func (t table) Subscribe(o spell.TagTableObserver) func() {
	return t.tt.Subscribe(tagObserver{o})
}

type tagObserver struct{ o spell.TagTableObserver }

func (x tagObserver) TagAdded(t *buffer.Tag)   { x.o.TagAdded(tag{t}) }
func (x tagObserver) TagRemoved(t *buffer.Tag) { x.o.TagRemoved(tag{t}) }
