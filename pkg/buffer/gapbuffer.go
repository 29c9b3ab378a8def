package buffer

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrOutOfRange is returned when an offset lies outside [0, Len()].
	ErrOutOfRange = errors.New("buffer: position out of range")
	// ErrInvalidRange is returned for a range with end < start or past Len().
	ErrInvalidRange = errors.New("buffer: invalid range")
)

// GapBuffer is a simple gap-buffer implementation for runes.
// The underlying slice stores runes with a gap between gapStart and gapEnd.
type GapBuffer struct {
	buf      []rune
	gapStart int
	gapEnd   int

	cacheString string
	cacheLines  []string
	cacheValid  bool

	// lineStarts holds the offset of every line start; nil until needed
	// after an edit.
	lineStarts []int
}

// NewGapBuffer creates an empty GapBuffer with an initial capacity.
func NewGapBuffer(cap int) *GapBuffer {
	if cap < 1 {
		cap = 128
	}
	b := make([]rune, cap)
	return &GapBuffer{buf: b, gapStart: 0, gapEnd: cap}
}

// NewGapBufferFromString initializes a GapBuffer with the provided text.
func NewGapBufferFromString(s string) *GapBuffer {
	runes := []rune(s)
	cap := len(runes) + 128
	b := NewGapBuffer(cap)
	copy(b.buf, runes)
	b.gapStart = len(runes)
	b.gapEnd = cap
	return b
}

func (g *GapBuffer) ensureGap(n int) {
	gap := g.gapEnd - g.gapStart
	if gap >= n {
		return
	}
	needed := n - gap
	newCap := len(g.buf)*2 + needed
	newBuf := make([]rune, newCap)
	copy(newBuf, g.buf[:g.gapStart])
	suffixLen := len(g.buf) - g.gapEnd
	copy(newBuf[newCap-suffixLen:], g.buf[g.gapEnd:])
	g.gapEnd = newCap - suffixLen
	g.buf = newBuf
}

// moveGap moves the gap so that gapStart == pos.
func (g *GapBuffer) moveGap(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > g.Len() {
		pos = g.Len()
	}
	switch {
	case pos < g.gapStart:
		d := g.gapStart - pos
		copy(g.buf[g.gapEnd-d:g.gapEnd], g.buf[pos:g.gapStart])
		g.gapEnd -= d
		g.gapStart = pos
	case pos > g.gapStart:
		d := pos - g.gapStart
		copy(g.buf[g.gapStart:g.gapStart+d], g.buf[g.gapEnd:g.gapEnd+d])
		g.gapStart += d
		g.gapEnd += d
	}
}

// Insert inserts runes at position pos (0..Len()).
func (g *GapBuffer) Insert(pos int, s []rune) error {
	if pos < 0 || pos > g.Len() {
		return ErrOutOfRange
	}
	g.moveGap(pos)
	g.ensureGap(len(s))
	copy(g.buf[g.gapStart:], s)
	g.gapStart += len(s)
	g.cacheValid = false
	g.lineStarts = nil
	return nil
}

// Delete removes runes in [start,end).
func (g *GapBuffer) Delete(start, end int) error {
	if start < 0 || end < start || end > g.Len() {
		return ErrInvalidRange
	}
	g.moveGap(start)
	g.gapEnd += end - start
	g.cacheValid = false
	g.lineStarts = nil
	return nil
}

// Slice returns a copy of the runes in [start,end). The range is clamped
// to the buffer bounds.
func (g *GapBuffer) Slice(start, end int) []rune {
	if start < 0 {
		start = 0
	}
	if end > g.Len() {
		end = g.Len()
	}
	if start >= end {
		return []rune{}
	}
	out := make([]rune, 0, end-start)
	if start < g.gapStart {
		stop := end
		if stop > g.gapStart {
			stop = g.gapStart
		}
		out = append(out, g.buf[start:stop]...)
	}
	if end > g.gapStart {
		from := start
		if from < g.gapStart {
			from = g.gapStart
		}
		gap := g.gapEnd - g.gapStart
		out = append(out, g.buf[from+gap:end+gap]...)
	}
	return out
}

// Len returns the logical length (excluding gap).
func (g *GapBuffer) Len() int {
	return len(g.buf) - (g.gapEnd - g.gapStart)
}

// RuneAt returns the rune at index i. If i is out of bounds, it returns 0.
func (g *GapBuffer) RuneAt(i int) rune {
	if i < 0 || i >= g.Len() {
		return 0
	}
	return g.runeAt(i)
}

func (g *GapBuffer) runeAt(i int) rune {
	if i < g.gapStart {
		return g.buf[i]
	}
	return g.buf[g.gapEnd+(i-g.gapStart)]
}

// LineAt returns the rune start and end indices for the given line number
// (0-based). If the line index is past the end, it returns the last line's
// bounds. The end index is one past the last rune of the line, so it
// includes the terminating '\n' when present.
func (g *GapBuffer) LineAt(idx int) (start, end int) {
	starts := g.lineIndex()
	idx = max(0, min(idx, len(starts)-1))
	start = starts[idx]
	if idx+1 < len(starts) {
		return start, starts[idx+1]
	}
	return start, g.Len()
}

// LineOf returns the 0-based line holding offset i and the offset where
// that line starts.
func (g *GapBuffer) LineOf(i int) (line, start int) {
	starts := g.lineIndex()
	line = sort.Search(len(starts), func(k int) bool { return starts[k] > i }) - 1
	if line < 0 {
		line = 0
	}
	return line, starts[line]
}

// LineCount returns the number of lines; an empty buffer has one line.
func (g *GapBuffer) LineCount() int { return len(g.lineIndex()) }

func (g *GapBuffer) lineIndex() []int {
	if g.lineStarts != nil {
		return g.lineStarts
	}
	starts := []int{0}
	n := g.Len()
	for i := 0; i < n; i++ {
		if g.runeAt(i) == '\n' {
			starts = append(starts, i+1)
		}
	}
	g.lineStarts = starts
	return starts
}

// String returns the buffer contents. The result is cached until the
// buffer is modified.
func (g *GapBuffer) String() string {
	if g.cacheValid {
		return g.cacheString
	}
	g.cacheString = string(g.Slice(0, g.Len()))
	g.cacheLines = strings.Split(g.cacheString, "\n")
	g.cacheValid = true
	return g.cacheString
}

// Lines returns the buffer split into lines. The result is cached until the
// buffer is modified.
func (g *GapBuffer) Lines() []string {
	if !g.cacheValid {
		_ = g.String()
	}
	return g.cacheLines
}
