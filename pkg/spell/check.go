package spell

import "strings"

// pass caches filter matches for one CheckRange call.
type pass struct {
	textLoaded bool
	textSpans  []Span

	lineLoaded bool
	line       int
	lineStart  int
	lineSpans  []Span
}

// CheckRange re-evaluates the words overlapping [start, end). With forceAll
// false the word under the cursor is deferred until the cursor leaves it,
// unless it is already marked misspelled.
func (c *Checker) CheckRange(start, end int, forceAll bool) {
	if !c.enabled || c.buf == nil {
		return
	}
	n := c.buf.Len()
	start = clamp(start, 0, n)
	end = clamp(end, 0, n)
	if start > end {
		start, end = end, start
	}
	if c.buf.InsideWord(end) {
		end = c.buf.ForwardWordEnd(end)
	}
	if !c.buf.StartsWord(start) && (c.buf.InsideWord(start) || c.buf.EndsWord(start)) {
		start = c.buf.BackwardWordStart(start)
	}

	cursor := c.buf.Cursor().Offset()
	highlight := c.buf.HasTag(c.misspelled, cursor) ||
		(cursor > 0 && c.buf.HasTag(c.misspelled, cursor-1))

	c.unprotected(start, end, func(s, e int) { c.buf.RemoveTag(c.misspelled, s, e) })

	if start == 0 {
		start = c.buf.BackwardWordStart(c.buf.ForwardWordEnd(start))
	}

	c.pass = pass{}
	deferred := false
	wordStart := start
	for wordStart < end {
		wordEnd := c.buf.ForwardWordEnd(wordStart)
		ws := wordStart
		if !c.buf.StartsWord(ws) {
			if s := c.buf.BackwardWordStart(wordEnd); s > ws {
				ws = s
			}
		}
		inWord := ws < cursor && cursor <= wordEnd
		if inWord && !forceAll {
			if highlight {
				c.checkWord(ws, wordEnd)
			} else {
				c.deferWord(ws, wordEnd)
				deferred = true
			}
		} else {
			c.checkWord(ws, wordEnd)
		}
		next := c.buf.BackwardWordStart(c.buf.ForwardWordEnd(wordEnd))
		if next <= ws {
			break
		}
		wordStart = next
	}
	c.pass = pass{}

	// The flag belongs to the word between the insert anchors, so only a
	// range that covered that word may clear it.
	if !deferred && c.deferred && start <= c.marks.insertStart.Offset() && c.marks.insertEnd.Offset() <= end {
		c.deferred = false
	}
}

// Recheck checks the whole buffer, including the word under the cursor.
func (c *Checker) Recheck() {
	if c.buf == nil {
		return
	}
	c.log.Event("spell.recheck", map[string]any{"language": c.language, "len": c.buf.Len()})
	c.CheckRange(0, c.buf.Len(), true)
}

// checkWord marks [start, end) when the dictionary rejects it and no
// exclusion applies.
func (c *Checker) checkWord(start, end int) {
	if start >= end || c.excluded(start) {
		return
	}
	word := strings.TrimSpace(c.buf.Text(start, end))
	if word == "" {
		return
	}
	if c.filters.matchWord(word) {
		return
	}
	if c.filters.re[FilterLine] != nil {
		line, col := c.buf.LineAt(start)
		if !c.pass.lineLoaded || line != c.pass.line {
			ls, le := c.buf.LineBounds(line)
			c.pass.lineLoaded, c.pass.line, c.pass.lineStart = true, line, ls
			c.pass.lineSpans = c.filters.matchSpans(FilterLine, c.buf.Text(ls, le))
		}
		if m, ok := bracketing(c.pass.lineSpans, col); ok {
			c.clearFiltered(c.pass.lineStart+m.Start, c.pass.lineStart+m.End)
			return
		}
	}
	if c.filters.re[FilterText] != nil {
		if !c.pass.textLoaded {
			c.pass.textSpans = c.filters.matchSpans(FilterText, c.buf.Text(0, c.buf.Len()))
			c.pass.textLoaded = true
		}
		if m, ok := bracketing(c.pass.textSpans, start); ok {
			c.clearFiltered(m.Start, m.End)
			return
		}
	}
	if c.dict.Check(word) {
		return
	}
	c.unprotected(start, end, func(s, e int) { c.buf.ApplyTag(c.misspelled, s, e) })
}

func (c *Checker) clearFiltered(start, end int) {
	c.unprotected(start, end, func(s, e int) { c.buf.RemoveTag(c.misspelled, s, e) })
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
