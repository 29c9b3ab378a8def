package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"example.com/textspell/pkg/search"
)

func buildSearchHighlights(raw []search.Range, current int) []search.Range {
	ranges := make([]search.Range, 0, len(raw))
	for i, rge := range raw {
		g := "match"
		if i == current {
			g = "current"
		}
		ranges = append(ranges, search.Range{Start: rge.Start, End: rge.End, Group: g})
	}
	return ranges
}

// runSearchPrompt runs a modal prompt in the mini-buffer. Typing updates the
// query (case-insensitive); Ctrl+N/Ctrl+P or the arrows pick a match; Enter
// jumps to it; Esc or Ctrl+G cancels.
func (r *Runner) runSearchPrompt() {
	if r.Screen == nil {
		return
	}
	defer r.clearMiniBuffer()
	query := ""
	sel := 0
	for {
		text := r.Buf.String()
		raw := search.SearchFold(text, query)
		if sel >= len(raw) {
			sel = 0
		}
		lines := []string{"Search: " + query}
		switch {
		case query == "":
		case len(raw) == 0:
			lines = append(lines, "No matches")
		default:
			line, _ := r.Buf.LineAt(raw[sel].Start)
			lines = append(lines, fmt.Sprintf("match %d of %d on line %d", sel+1, len(raw), line+1))
		}
		r.setMiniBuffer(lines)
		r.draw(buildSearchHighlights(raw, sel))

		ev := r.waitEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch {
		case r.isCancelKey(key):
			return
		case key.Key() == tcell.KeyEnter:
			if len(raw) > 0 {
				r.Buf.PlaceCursor(raw[sel].Start)
				r.Logger.Event("action", map[string]any{"name": "search", "query": query, "cursor": raw[sel].Start})
			}
			return
		case key.Key() == tcell.KeyCtrlN || key.Key() == tcell.KeyDown:
			if len(raw) > 0 {
				sel = (sel + 1) % len(raw)
			}
		case key.Key() == tcell.KeyCtrlP || key.Key() == tcell.KeyUp:
			if len(raw) > 0 {
				sel = (sel - 1 + len(raw)) % len(raw)
			}
		case key.Key() == tcell.KeyBackspace || key.Key() == tcell.KeyBackspace2:
			if q := []rune(query); len(q) > 0 {
				query = string(q[:len(q)-1])
			}
			sel = 0
		case key.Key() == tcell.KeyRune && key.Modifiers()&tcell.ModCtrl == 0:
			query += string(key.Rune())
			// start from the first match at or after the cursor
			sel = search.SearchNext(search.SearchFold(text, query), r.cursor())
			if sel < 0 {
				sel = 0
			}
		}
	}
}
