package spell

// deferWord records that the word in [start, end) still needs checking
// once the cursor leaves it. The insert anchors are widened to cover it.
func (c *Checker) deferWord(start, end int) {
	if c.deferred {
		start = min(start, c.marks.insertStart.Offset())
		end = max(end, c.marks.insertEnd.Offset())
	}
	c.buf.MoveMark(c.marks.insertStart, start)
	c.buf.MoveMark(c.marks.insertEnd, end)
	c.deferred = true
}

// reconcile re-checks the range between the insert anchors.
func (c *Checker) reconcile(forceAll bool) {
	start := c.marks.insertStart.Offset()
	end := c.marks.insertEnd.Offset()
	c.log.Event("spell.deferred", map[string]any{"start": start, "end": end, "force": forceAll})
	c.CheckRange(start, end, forceAll)
}

// Deferred reports whether a word is waiting to be checked.
func (c *Checker) Deferred() bool { return c.deferred }
