package app

import (
	"errors"

	"example.com/textspell/pkg/history"
)

// cursor returns the cursor offset in runes.
func (r *Runner) cursor() int { return r.Buf.Cursor().Offset() }

// insertText inserts text at the cursor. The buffer records history and
// notifies the checker.
func (r *Runner) insertText(text string) {
	if text == "" {
		return
	}
	if err := r.Buf.InsertAtCursor(text); err != nil {
		r.Logger.Event("edit.error", map[string]any{"op": "insert", "error": err.Error()})
		return
	}
	r.Dirty = true
}

// deleteRange deletes [start,end) clamped to the buffer.
func (r *Runner) deleteRange(start, end int) error {
	if start < 0 {
		start = 0
	}
	if end > r.Buf.Len() {
		end = r.Buf.Len()
	}
	if start >= end {
		return nil
	}
	if err := r.Buf.Delete(start, end); err != nil {
		return err
	}
	r.Dirty = true
	return nil
}

func (r *Runner) backspace() {
	if c := r.cursor(); c > 0 {
		_ = r.deleteRange(c-1, c)
	}
}

func (r *Runner) deleteForward() {
	c := r.cursor()
	_ = r.deleteRange(c, c+1)
}

func (r *Runner) moveCursor(delta int) {
	r.Buf.PlaceCursor(r.cursor() + delta)
}

// moveCursorVertical moves the cursor up or down by delta lines, preserving the column when possible.
func (r *Runner) moveCursorVertical(delta int) {
	line, col := r.Buf.LineAt(r.cursor())
	target := line + delta
	if target < 0 || target >= r.Buf.LineCount() {
		return
	}
	start, end := r.Buf.LineBounds(target)
	if col > end-start {
		col = end - start
	}
	r.Buf.PlaceCursor(start + col)
}

// currentLineBounds returns the rune start and end of the cursor's line,
// excluding the newline.
func (r *Runner) currentLineBounds() (start, end int) {
	line, _ := r.Buf.LineAt(r.cursor())
	return r.Buf.LineBounds(line)
}

func (r *Runner) wordForward() {
	r.Buf.PlaceCursor(r.Buf.ForwardWordEnd(r.cursor()))
}

func (r *Runner) wordBackward() {
	r.Buf.PlaceCursor(r.Buf.BackwardWordStart(r.cursor()))
}

// performUndo reverts the last user action.
func (r *Runner) performUndo() {
	if err := r.History.Undo(r.Buf); err != nil {
		if errors.Is(err, history.ErrNothingToUndo) {
			r.Message = "Nothing to undo"
		} else {
			r.Message = "Undo failed: " + err.Error()
		}
		return
	}
	r.Dirty = true
	r.Logger.Event("action", map[string]any{"name": "undo", "cursor": r.cursor()})
}

// performRedo reapplies the last undone user action.
func (r *Runner) performRedo() {
	if err := r.History.Redo(r.Buf); err != nil {
		if errors.Is(err, history.ErrNothingToRedo) {
			r.Message = "Nothing to redo"
		} else {
			r.Message = "Redo failed: " + err.Error()
		}
		return
	}
	r.Dirty = true
	r.Logger.Event("action", map[string]any{"name": "redo", "cursor": r.cursor()})
}
