package buffer

// CursorMark is the name of the mark tracking the insertion cursor.
const CursorMark = "insert"

// Mark is a named position that tracks a logical location across edits.
// A mark with left gravity stays before text inserted at its offset; a mark
// with right gravity moves past it.
type Mark struct {
	name        string
	off         int
	leftGravity bool
	deleted     bool
}

// Name returns the mark's name.
func (m *Mark) Name() string { return m.name }

// Offset returns the rune offset of the mark.
func (m *Mark) Offset() int { return m.off }

// LeftGravity reports whether the mark stays left of text inserted at it.
func (m *Mark) LeftGravity() bool { return m.leftGravity }

// Deleted reports whether the mark was removed from its buffer.
func (m *Mark) Deleted() bool { return m.deleted }

func (m *Mark) shiftInsert(pos, n int) {
	if m.off > pos || (m.off == pos && !m.leftGravity) {
		m.off += n
	}
}

func (m *Mark) shiftDelete(start, end int) {
	switch {
	case m.off >= end:
		m.off -= end - start
	case m.off > start:
		m.off = start
	}
}
