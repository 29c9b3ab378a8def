package history

import (
	"errors"
	"fmt"
)

var (
	ErrNothingToUndo = errors.New("history: nothing to undo")
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// OpType represents the type of an edit operation.
type OpType int

const (
	InsertOp OpType = iota
	DeleteOp
)

// Operation captures a single edit for undo/redo.
// Pos is a rune index; Text is the inserted/deleted text.
type Operation struct {
	Type OpType
	Pos  int
	Text string
}

// Editable is the surface History replays operations against.
type Editable interface {
	Insert(off int, text string) error
	Delete(start, end int) error
	PlaceCursor(off int)
}

// step is the unit of undo: a user action or a single ungrouped edit.
type step []Operation

// History keeps stacks of past/future steps for undo/redo. It satisfies
// buffer.Recorder, so a TextBuffer can feed it directly.
type History struct {
	past     []step
	future   []step
	open     step
	depth    int
	applying bool
}

// New creates an empty History.
func New() *History { return &History{} }

// RecordInsert records an insertion at pos.
func (h *History) RecordInsert(pos int, text string) {
	h.record(Operation{Type: InsertOp, Pos: pos, Text: text})
}

// RecordDelete records a deletion at pos of the given text.
func (h *History) RecordDelete(pos int, text string) {
	h.record(Operation{Type: DeleteOp, Pos: pos, Text: text})
}

func (h *History) record(op Operation) {
	if op.Text == "" || h.applying {
		return
	}
	h.future = nil
	if h.depth > 0 {
		h.open = append(h.open, op)
		return
	}
	h.past = append(h.past, step{op})
}

// BeginGroup starts collecting operations into one undo step.
func (h *History) BeginGroup() {
	if h.applying {
		return
	}
	h.depth++
}

// EndGroup closes the step started by BeginGroup.
func (h *History) EndGroup() {
	if h.applying || h.depth == 0 {
		return
	}
	h.depth--
	if h.depth == 0 && len(h.open) > 0 {
		h.past = append(h.past, h.open)
		h.open = nil
	}
}

// CanUndo reports whether there is an operation to undo.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether there is an operation to redo.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Undo reverts the last step on ed and leaves the cursor where the first
// reverted edit happened. If an edit fails, the edits already reverted are
// reapplied and the step stays on the undo stack.
func (h *History) Undo(ed Editable) error {
	if !h.CanUndo() {
		return ErrNothingToUndo
	}
	s := h.past[len(h.past)-1]
	h.applying = true
	defer func() { h.applying = false }()
	for i := len(s) - 1; i >= 0; i-- {
		if err := invert(s[i]).apply(ed); err != nil {
			for _, op := range s[i+1:] {
				_ = op.apply(ed)
			}
			return fmt.Errorf("undo: %w", err)
		}
	}
	h.past = h.past[:len(h.past)-1]
	ed.PlaceCursor(s[0].Pos)
	h.future = append(h.future, s)
	return nil
}

// Redo reapplies the next step on ed. A failed edit rolls the step back
// and leaves it on the redo stack.
func (h *History) Redo(ed Editable) error {
	if !h.CanRedo() {
		return ErrNothingToRedo
	}
	s := h.future[len(h.future)-1]
	h.applying = true
	defer func() { h.applying = false }()
	for i, op := range s {
		if err := op.apply(ed); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = invert(s[j]).apply(ed)
			}
			return fmt.Errorf("redo: %w", err)
		}
	}
	h.future = h.future[:len(h.future)-1]
	last := s[len(s)-1]
	if last.Type == InsertOp {
		ed.PlaceCursor(last.Pos + len([]rune(last.Text)))
	} else {
		ed.PlaceCursor(last.Pos)
	}
	h.past = append(h.past, s)
	return nil
}

func invert(op Operation) Operation {
	if op.Type == InsertOp {
		op.Type = DeleteOp
	} else {
		op.Type = InsertOp
	}
	return op
}

func (op Operation) apply(ed Editable) error {
	switch op.Type {
	case InsertOp:
		return ed.Insert(op.Pos, op.Text)
	case DeleteOp:
		return ed.Delete(op.Pos, op.Pos+len([]rune(op.Text)))
	default:
		return fmt.Errorf("unknown op type %d", op.Type)
	}
}
