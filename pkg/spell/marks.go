package spell

import "fmt"

// Anchor names accepted by MoveAnchor. The buffer marks behind them are
// named "<prefix>-<anchor>".
const (
	AnchorInsertStart = "insert-start"
	AnchorInsertEnd   = "insert-end"
	AnchorClick       = "click"
)

// anchors holds the three left-gravity marks the engine keeps in the buffer.
type anchors struct {
	insertStart Mark
	insertEnd   Mark
	click       Mark
}

func newAnchors(buf Buffer, prefix string) anchors {
	mk := func(name string) Mark {
		return buf.CreateMark(prefix+"-"+name, 0, true)
	}
	return anchors{
		insertStart: mk(AnchorInsertStart),
		insertEnd:   mk(AnchorInsertEnd),
		click:       mk(AnchorClick),
	}
}

func (a anchors) byName(name string) Mark {
	switch name {
	case AnchorInsertStart:
		return a.insertStart
	case AnchorInsertEnd:
		return a.insertEnd
	case AnchorClick:
		return a.click
	}
	return nil
}

func (a anchors) release(buf Buffer) {
	for _, m := range []Mark{a.insertStart, a.insertEnd, a.click} {
		if m != nil {
			buf.DeleteMark(m)
		}
	}
}

// MoveAnchor moves one of the engine's anchors to off.
func (c *Checker) MoveAnchor(name string, off int) error {
	if c.buf == nil {
		return ErrDetached
	}
	m := c.marks.byName(name)
	if m == nil {
		return fmt.Errorf("%w: %q", ErrUnknownAnchor, name)
	}
	c.buf.MoveMark(m, off)
	return nil
}

// Anchor returns the offset of the named anchor.
func (c *Checker) Anchor(name string) (int, error) {
	if c.buf == nil {
		return 0, ErrDetached
	}
	m := c.marks.byName(name)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownAnchor, name)
	}
	return m.Offset(), nil
}

// wordAt returns the bounds of the word around a mark, extending backward
// to the word start and forward to the word end.
func (c *Checker) wordAt(m Mark) (start, end int) {
	start, end = m.Offset(), m.Offset()
	if !c.buf.StartsWord(start) {
		start = c.buf.BackwardWordStart(start)
	}
	if c.buf.InsideWord(end) {
		end = c.buf.ForwardWordEnd(end)
	}
	return start, end
}

// bufferHooks turns buffer notifications into range checks.
type bufferHooks struct {
	c *Checker
}

func (h bufferHooks) BeforeInsert(off int, _ string) {
	c := h.c
	start := off
	if c.deferred {
		start = min(start, c.marks.insertStart.Offset())
	}
	c.buf.MoveMark(c.marks.insertStart, start)
}

func (h bufferHooks) AfterInsert(start, end int) {
	c := h.c
	// insertStart has left gravity, so it still sits at the insertion point.
	from := min(start, c.marks.insertStart.Offset())
	to := end
	if c.deferred {
		to = max(to, c.marks.insertEnd.Offset())
	}
	c.buf.MoveMark(c.marks.insertEnd, to)
	c.CheckRange(from, end, false)
}

func (h bufferHooks) AfterDelete(start, end int) {
	h.c.CheckRange(start, end, false)
}

func (h bufferHooks) MarkSet(m Mark) {
	c := h.c
	if m == c.buf.Cursor() && c.deferred {
		c.reconcile(false)
	}
}
