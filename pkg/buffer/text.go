package buffer

import "unicode/utf8"

// Observer receives TextBuffer change notifications. Notifications are
// delivered synchronously, in the order the mutations happen.
type Observer interface {
	// BeforeInsert is called before text is inserted at off.
	BeforeInsert(off int, text string)
	// AfterInsert is called once the inserted text occupies [start, end).
	AfterInsert(start, end int)
	// AfterDelete is called with the collapsed range left by a deletion.
	AfterDelete(start, end int)
	// MarkSet is called when a mark is explicitly moved.
	MarkSet(m *Mark)
}

// Recorder receives edits for undo history.
type Recorder interface {
	RecordInsert(pos int, text string)
	RecordDelete(pos int, text string)
	BeginGroup()
	EndGroup()
}

// TextBuffer is an editable text with marks, tags and change notifications.
// It is not safe for concurrent use.
type TextBuffer struct {
	store  TextStorage
	marks  map[*Mark]struct{}
	named  map[string]*Mark
	cursor *Mark
	table  *TagTable
	obs    observerList[Observer]
	rec    Recorder
	action int
}

// NewTextBuffer creates a buffer holding text with the cursor at the start.
func NewTextBuffer(text string) *TextBuffer {
	b := &TextBuffer{
		store: NewGapBufferFromString(text),
		marks: make(map[*Mark]struct{}),
		named: make(map[string]*Mark),
		table: NewTagTable(),
	}
	b.cursor = b.CreateMark(CursorMark, 0, false)
	return b
}

// SetRecorder attaches an undo recorder. Pass nil to detach.
func (b *TextBuffer) SetRecorder(r Recorder) { b.rec = r }

// Subscribe registers o and returns a function that unregisters it.
func (b *TextBuffer) Subscribe(o Observer) func() { return b.obs.add(o) }

// Len returns the number of runes in the buffer.
func (b *TextBuffer) Len() int { return b.store.Len() }

// String returns the whole text.
func (b *TextBuffer) String() string { return b.store.String() }

// Text returns the text in [start, end).
func (b *TextBuffer) Text(start, end int) string {
	return string(b.store.Slice(start, end))
}

// RuneAt returns the rune at off, or 0 when off is out of range.
func (b *TextBuffer) RuneAt(off int) rune { return b.store.RuneAt(off) }

// Lines returns the text split into lines.
func (b *TextBuffer) Lines() []string {
	if g, ok := b.store.(*GapBuffer); ok {
		return g.Lines()
	}
	return splitLines(b.store.String())
}

// Insert inserts text at off and notifies observers.
func (b *TextBuffer) Insert(off int, text string) error {
	if off < 0 || off > b.Len() {
		return ErrOutOfRange
	}
	if text == "" {
		return nil
	}
	b.obs.each(func(o Observer) { o.BeforeInsert(off, text) })
	runes := []rune(text)
	if err := b.store.Insert(off, runes); err != nil {
		return err
	}
	n := len(runes)
	for m := range b.marks {
		m.shiftInsert(off, n)
	}
	b.table.shiftInsert(off, n)
	if b.rec != nil {
		b.rec.RecordInsert(off, text)
	}
	b.obs.each(func(o Observer) { o.AfterInsert(off, off+n) })
	return nil
}

// InsertAtCursor inserts text at the cursor. The cursor ends up after it.
func (b *TextBuffer) InsertAtCursor(text string) error {
	return b.Insert(b.cursor.off, text)
}

// Delete removes [start, end) and notifies observers.
func (b *TextBuffer) Delete(start, end int) error {
	if start < 0 || end < start || end > b.Len() {
		return ErrInvalidRange
	}
	if start == end {
		return nil
	}
	removed := b.Text(start, end)
	if err := b.store.Delete(start, end); err != nil {
		return err
	}
	for m := range b.marks {
		m.shiftDelete(start, end)
	}
	b.table.shiftDelete(start, end)
	if b.rec != nil {
		b.rec.RecordDelete(start, removed)
	}
	b.obs.each(func(o Observer) { o.AfterDelete(start, start) })
	return nil
}

// BeginUserAction opens a group of edits that undo treats as one step.
// Calls nest; only the outermost pair is significant.
func (b *TextBuffer) BeginUserAction() {
	b.action++
	if b.action == 1 && b.rec != nil {
		b.rec.BeginGroup()
	}
}

// EndUserAction closes the group opened by BeginUserAction.
func (b *TextBuffer) EndUserAction() {
	if b.action == 0 {
		return
	}
	b.action--
	if b.action == 0 && b.rec != nil {
		b.rec.EndGroup()
	}
}

// CreateMark creates a mark at off. If a mark with that name exists it is
// moved to off and returned. An empty name creates an anonymous mark.
func (b *TextBuffer) CreateMark(name string, off int, leftGravity bool) *Mark {
	off = b.clamp(off)
	if m, ok := b.named[name]; ok {
		m.off = off
		return m
	}
	m := &Mark{name: name, off: off, leftGravity: leftGravity}
	b.marks[m] = struct{}{}
	if name != "" {
		b.named[name] = m
	}
	return m
}

// Mark returns the mark with the given name, or nil.
func (b *TextBuffer) Mark(name string) *Mark { return b.named[name] }

// MoveMark moves m to off and notifies observers.
func (b *TextBuffer) MoveMark(m *Mark, off int) {
	if m == nil || m.deleted {
		return
	}
	m.off = b.clamp(off)
	b.obs.each(func(o Observer) { o.MarkSet(m) })
}

// DeleteMark removes m from the buffer. The cursor cannot be deleted.
func (b *TextBuffer) DeleteMark(m *Mark) {
	if m == nil || m == b.cursor {
		return
	}
	if b.named[m.name] == m {
		delete(b.named, m.name)
	}
	delete(b.marks, m)
	m.deleted = true
}

// Cursor returns the insertion cursor mark.
func (b *TextBuffer) Cursor() *Mark { return b.cursor }

// PlaceCursor moves the cursor to off.
func (b *TextBuffer) PlaceCursor(off int) { b.MoveMark(b.cursor, off) }

// Tags returns the tag table.
func (b *TextBuffer) Tags() *TagTable { return b.table }

// ApplyTag tags [start, end) with t.
func (b *TextBuffer) ApplyTag(t *Tag, start, end int) {
	if t == nil || t.table != b.table {
		return
	}
	t.apply(b.clamp(start), b.clamp(end))
}

// RemoveTag removes t from [start, end).
func (b *TextBuffer) RemoveTag(t *Tag, start, end int) {
	if t == nil || t.table != b.table {
		return
	}
	t.remove(b.clamp(start), b.clamp(end))
}

// HasTag reports whether the rune at off carries t. The end position never
// carries a tag.
func (b *TextBuffer) HasTag(t *Tag, off int) bool {
	if t == nil || t.table != b.table || off < 0 || off >= b.Len() {
		return false
	}
	return t.has(off)
}

// TagSpans returns the spans of t intersecting [start, end), clipped.
func (b *TextBuffer) TagSpans(t *Tag, start, end int) []Span {
	if t == nil || t.table != b.table {
		return nil
	}
	return t.within(start, end)
}

// TagsAt returns the tags covering the rune at off.
func (b *TextBuffer) TagsAt(off int) []*Tag {
	var out []*Tag
	b.table.ForEach(func(t *Tag) {
		if b.HasTag(t, off) {
			out = append(out, t)
		}
	})
	return out
}

// StartsWord reports whether off is at the start of a word.
func (b *TextBuffer) StartsWord(off int) bool { return StartsWord(b.store, off) }

// InsideWord reports whether the rune at off belongs to a word.
func (b *TextBuffer) InsideWord(off int) bool { return InsideWord(b.store, off) }

// EndsWord reports whether off is just past the end of a word.
func (b *TextBuffer) EndsWord(off int) bool { return EndsWord(b.store, off) }

// ForwardWordEnd returns the end of the next word after off.
func (b *TextBuffer) ForwardWordEnd(off int) int { return ForwardWordEnd(b.store, off) }

// BackwardWordStart returns the start of the word before off.
func (b *TextBuffer) BackwardWordStart(off int) int { return BackwardWordStart(b.store, off) }

// LineAt returns the 0-based line and column of off.
func (b *TextBuffer) LineAt(off int) (line, col int) {
	off = b.clamp(off)
	line, start := b.store.LineOf(off)
	return line, off - start
}

// LineBounds returns the start of line and the offset of its end, excluding
// the newline.
func (b *TextBuffer) LineBounds(line int) (start, end int) {
	start, end = b.store.LineAt(line)
	if end > start && b.store.RuneAt(end-1) == '\n' {
		end--
	}
	return start, end
}

// LineCount returns the number of lines; an empty buffer has one line.
func (b *TextBuffer) LineCount() int { return b.store.LineCount() }

// ByteOffset converts a rune offset to a byte offset in String().
func (b *TextBuffer) ByteOffset(off int) int {
	return len(string(b.store.Slice(0, off)))
}

// RuneOffset converts a byte offset in String() to a rune offset.
func (b *TextBuffer) RuneOffset(byteOff int) int {
	s := b.store.String()
	if byteOff > len(s) {
		byteOff = len(s)
	}
	return utf8.RuneCountInString(s[:byteOff])
}

func (b *TextBuffer) clamp(off int) int {
	if off < 0 {
		return 0
	}
	if n := b.Len(); off > n {
		return n
	}
	return off
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
