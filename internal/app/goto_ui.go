package app

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// goToLine moves the cursor to the start of line n (1-based), clamped to
// the last line.
func (r *Runner) goToLine(n int) {
	if n < 1 {
		n = 1
	}
	if last := r.Buf.LineCount(); n > last {
		n = last
	}
	start, _ := r.Buf.LineBounds(n - 1)
	r.Buf.PlaceCursor(start)
}

// runGoToPrompt prompts for a line number and moves the cursor to the start of that line.
func (r *Runner) runGoToPrompt() {
	if r.Screen == nil {
		return
	}
	defer r.clearMiniBuffer()
	input := ""
	for {
		r.setMiniBuffer([]string{"Go to line: " + input})
		r.draw(nil)
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
			n, err := strconv.Atoi(strings.TrimSpace(input))
			if err != nil || n <= 0 {
				// invalid number; keep prompt open
				continue
			}
			r.goToLine(n)
			return
		case key.Key() == tcell.KeyBackspace || key.Key() == tcell.KeyBackspace2:
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case key.Key() == tcell.KeyRune && key.Rune() >= '0' && key.Rune() <= '9':
			input += string(key.Rune())
		}
	}
}
