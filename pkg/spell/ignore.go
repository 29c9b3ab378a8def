package spell

import (
	"fmt"
	"slices"
)

// NoSpellCheckTag is the name of the built-in tag that excludes its span
// from checking.
const NoSpellCheckTag = "no-spell-check"

// spellCheckProperty is the tag property that, when false, makes the tag
// an ignore tag automatically.
const spellCheckProperty = "spell_check"

// ignoreTags tracks the tags whose spans are never checked. It follows the
// tag table so tags flagged spell_check=false join and leave on their own.
type ignoreTags struct {
	tags []Tag
}

func (it *ignoreTags) TagAdded(t Tag) {
	if v, ok := t.Property(spellCheckProperty); ok {
		if b, ok := v.(bool); ok && !b {
			it.add(t)
		}
	}
}

func (it *ignoreTags) TagRemoved(t Tag) {
	it.tags = slices.DeleteFunc(it.tags, func(x Tag) bool { return x == t })
}

func (it *ignoreTags) add(t Tag) {
	if !slices.Contains(it.tags, t) {
		it.tags = append(it.tags, t)
	}
}

func (it *ignoreTags) contains(t Tag) bool { return slices.Contains(it.tags, t) }

// AppendIgnoreTag excludes spans carrying t from checking.
func (c *Checker) AppendIgnoreTag(t Tag) error {
	if t == nil {
		return ErrNilTag
	}
	c.ignored.add(t)
	c.log.Event("spell.ignore_tag", map[string]any{"tag": t.Name(), "op": "append"})
	return nil
}

// AppendIgnoreTagName resolves name in the buffer's tag table and appends
// the tag.
func (c *Checker) AppendIgnoreTagName(name string) error {
	t, err := c.lookupTag(name)
	if err != nil {
		return err
	}
	return c.AppendIgnoreTag(t)
}

// RemoveIgnoreTag makes spans carrying t checkable again.
func (c *Checker) RemoveIgnoreTag(t Tag) error {
	if t == nil {
		return ErrNilTag
	}
	if !c.ignored.contains(t) {
		return fmt.Errorf("%w: %s", ErrTagNotIgnored, t.Name())
	}
	c.ignored.TagRemoved(t)
	c.log.Event("spell.ignore_tag", map[string]any{"tag": t.Name(), "op": "remove"})
	return nil
}

// RemoveIgnoreTagName resolves name and removes the tag from the ignore set.
func (c *Checker) RemoveIgnoreTagName(name string) error {
	t, err := c.lookupTag(name)
	if err != nil {
		return err
	}
	return c.RemoveIgnoreTag(t)
}

// IgnoredTags returns the tags currently excluded from checking, not
// counting the built-in no-spell-check tag.
func (c *Checker) IgnoredTags() []Tag {
	return slices.Clone(c.ignored.tags)
}

func (c *Checker) lookupTag(name string) (Tag, error) {
	if c.buf == nil {
		return nil, ErrDetached
	}
	t := c.buf.Tags().Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, name)
	}
	return t, nil
}

// excluded reports whether off carries the no-spell-check tag or an ignore
// tag.
func (c *Checker) excluded(off int) bool {
	if c.buf.HasTag(c.noSpellCheck, off) {
		return true
	}
	for _, t := range c.ignored.tags {
		if c.buf.HasTag(t, off) {
			return true
		}
	}
	return false
}

// protectedSpans returns the sorted, merged spans in [start, end) that
// carry the no-spell-check tag or an ignore tag.
func (c *Checker) protectedSpans(start, end int) []Span {
	var spans []Span
	spans = append(spans, c.buf.TagSpans(c.noSpellCheck, start, end)...)
	for _, t := range c.ignored.tags {
		spans = append(spans, c.buf.TagSpans(t, start, end)...)
	}
	if len(spans) < 2 {
		return spans
	}
	slices.SortFunc(spans, func(a, b Span) int { return a.Start - b.Start })
	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.Start <= last.End {
			last.End = max(last.End, s.End)
			continue
		}
		out = append(out, s)
	}
	return out
}

// unprotected calls fn for each piece of [start, end) outside protected
// spans.
func (c *Checker) unprotected(start, end int, fn func(start, end int)) {
	pos := start
	for _, s := range c.protectedSpans(start, end) {
		if s.Start > pos {
			fn(pos, s.Start)
		}
		pos = max(pos, s.End)
	}
	if pos < end {
		fn(pos, end)
	}
}
