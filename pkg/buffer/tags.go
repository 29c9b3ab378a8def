package buffer

import (
	"errors"
	"slices"
	"sort"
)

// ErrTagExists is returned when adding a tag whose name is already taken.
var ErrTagExists = errors.New("buffer: tag already exists")

// Span is a half-open rune range [Start, End).
type Span struct {
	Start int
	End   int
}

// Tag marks regions of a TextBuffer. Tags are compared by identity.
type Tag struct {
	name  string
	props map[string]any
	spans []Span // sorted, disjoint and non-adjacent
	table *TagTable
}

// NewTag creates a tag that is not yet part of any table.
func NewTag(name string, props map[string]any) *Tag {
	p := make(map[string]any, len(props))
	for k, v := range props {
		p[k] = v
	}
	return &Tag{name: name, props: p}
}

// Name returns the tag name. Anonymous tags have an empty name.
func (t *Tag) Name() string { return t.name }

// Property returns a property attached to the tag.
func (t *Tag) Property(key string) (any, bool) {
	v, ok := t.props[key]
	return v, ok
}

// SetProperty attaches a property to the tag.
func (t *Tag) SetProperty(key string, v any) { t.props[key] = v }

func (t *Tag) has(off int) bool {
	i := sort.Search(len(t.spans), func(i int) bool { return t.spans[i].End > off })
	return i < len(t.spans) && t.spans[i].Start <= off
}

func (t *Tag) apply(start, end int) {
	if start >= end {
		return
	}
	// Spans touching [start, end) are merged into it.
	lo := sort.Search(len(t.spans), func(i int) bool { return t.spans[i].End >= start })
	hi := sort.Search(len(t.spans), func(i int) bool { return t.spans[i].Start > end })
	merged := Span{Start: start, End: end}
	if lo < hi {
		merged.Start = min(merged.Start, t.spans[lo].Start)
		merged.End = max(merged.End, t.spans[hi-1].End)
	}
	t.spans = slices.Replace(t.spans, lo, hi, merged)
}

func (t *Tag) remove(start, end int) {
	if start >= end || len(t.spans) == 0 {
		return
	}
	lo := sort.Search(len(t.spans), func(i int) bool { return t.spans[i].End > start })
	hi := sort.Search(len(t.spans), func(i int) bool { return t.spans[i].Start >= end })
	if lo >= hi {
		return
	}
	var keep []Span
	if s := t.spans[lo]; s.Start < start {
		keep = append(keep, Span{Start: s.Start, End: start})
	}
	if s := t.spans[hi-1]; s.End > end {
		keep = append(keep, Span{Start: end, End: s.End})
	}
	t.spans = slices.Replace(t.spans, lo, hi, keep...)
}

// within returns the tagged spans clipped to [start, end).
func (t *Tag) within(start, end int) []Span {
	var out []Span
	i := sort.Search(len(t.spans), func(i int) bool { return t.spans[i].End > start })
	for ; i < len(t.spans) && t.spans[i].Start < end; i++ {
		s := t.spans[i]
		out = append(out, Span{Start: max(s.Start, start), End: min(s.End, end)})
	}
	return out
}

// shiftInsert moves spans after pos; text inserted strictly inside a span
// becomes part of it.
func (t *Tag) shiftInsert(pos, n int) {
	for i := range t.spans {
		s := &t.spans[i]
		switch {
		case pos <= s.Start:
			s.Start += n
			s.End += n
		case pos < s.End:
			s.End += n
		}
	}
}

func (t *Tag) shiftDelete(start, end int) {
	d := end - start
	adjust := func(p int) int {
		switch {
		case p >= end:
			return p - d
		case p > start:
			return start
		}
		return p
	}
	out := t.spans[:0:0]
	for _, s := range t.spans {
		ns := Span{Start: adjust(s.Start), End: adjust(s.End)}
		if ns.Start >= ns.End {
			continue
		}
		if n := len(out); n > 0 && out[n-1].End >= ns.Start {
			out[n-1].End = max(out[n-1].End, ns.End)
			continue
		}
		out = append(out, ns)
	}
	t.spans = out
}

// TagObserver receives tag table changes.
type TagObserver interface {
	TagAdded(t *Tag)
	TagRemoved(t *Tag)
}

// TagTable holds the tags known to a TextBuffer.
type TagTable struct {
	byName map[string]*Tag
	order  []*Tag
	obs    observerList[TagObserver]
}

// NewTagTable creates an empty table.
func NewTagTable() *TagTable {
	return &TagTable{byName: make(map[string]*Tag)}
}

// Add inserts t into the table and notifies observers.
func (tt *TagTable) Add(t *Tag) error {
	if t.table != nil {
		return ErrTagExists
	}
	if t.name != "" {
		if _, ok := tt.byName[t.name]; ok {
			return ErrTagExists
		}
		tt.byName[t.name] = t
	}
	t.table = tt
	tt.order = append(tt.order, t)
	tt.obs.each(func(o TagObserver) { o.TagAdded(t) })
	return nil
}

// Create builds a tag with the given properties and adds it.
func (tt *TagTable) Create(name string, props map[string]any) (*Tag, error) {
	t := NewTag(name, props)
	if err := tt.Add(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Lookup returns the tag with the given name, or nil.
func (tt *TagTable) Lookup(name string) *Tag {
	return tt.byName[name]
}

// Remove deletes t from the table, clearing all of its spans.
func (tt *TagTable) Remove(t *Tag) {
	if t == nil || t.table != tt {
		return
	}
	for i, x := range tt.order {
		if x == t {
			tt.order = append(tt.order[:i], tt.order[i+1:]...)
			break
		}
	}
	if t.name != "" {
		delete(tt.byName, t.name)
	}
	t.table = nil
	t.spans = nil
	tt.obs.each(func(o TagObserver) { o.TagRemoved(t) })
}

// ForEach calls fn for every tag in insertion order.
func (tt *TagTable) ForEach(fn func(*Tag)) {
	for _, t := range append([]*Tag(nil), tt.order...) {
		fn(t)
	}
}

// Len returns the number of tags.
func (tt *TagTable) Len() int { return len(tt.order) }

// Subscribe registers o and returns a function that unregisters it.
func (tt *TagTable) Subscribe(o TagObserver) func() {
	return tt.obs.add(o)
}

func (tt *TagTable) shiftInsert(pos, n int) {
	for _, t := range tt.order {
		t.shiftInsert(pos, n)
	}
}

func (tt *TagTable) shiftDelete(start, end int) {
	for _, t := range tt.order {
		t.shiftDelete(start, end)
	}
}
