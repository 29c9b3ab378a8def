package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"example.com/textspell/pkg/config"
	"example.com/textspell/pkg/search"
	"example.com/textspell/pkg/spell"
)

// renderState captures a snapshot of editor state for drawing.
type renderState struct {
	lines      []string
	filePath   string
	cursor     int
	dirty      bool
	topLine    int
	miniBuf    []string
	status     string
	misspelled []spell.Span
	protected  []spell.Span
	highlights []search.Range
	showHelp   bool
	theme      config.Theme
}

var helpLines = []string{
	"Help:",
	"- F1: Show this help",
	"- Ctrl+Q: Quit",
	"- Ctrl+S: Save (Save As if no file)",
	"- Ctrl+W: Search",
	"- Alt+G: Go to line",
	"- Ctrl+Z / Ctrl+Y: Undo / Redo",
	"- Ctrl+T or right click: Suggestions for the word",
	"- Ctrl+A: Add word to dictionary",
	"- Ctrl+G: Ignore word for this session",
	"- Ctrl+L: Next language",
	"- Ctrl+E: Toggle spell checking",
	"- Alt+F / Alt+B: Next / previous word",
	"- Arrow keys, Home, End: Move cursor",
}

func drawHelp(s tcell.Screen, theme config.Theme) {
	width, height := s.Size()
	s.Clear()
	style := tcell.StyleDefault.Foreground(theme.UIForeground).Background(theme.UIBackground)
	y := (height - len(helpLines)) / 2
	for i, line := range helpLines {
		x := (width - len(line)) / 2
		for j, r := range line {
			s.SetContent(x+j, y+i, r, nil, style)
		}
	}
	s.Show()
}

// renderSnapshot captures the current runner state into a renderState.
func (r *Runner) renderSnapshot(highlights []search.Range) renderState {
	r.ensureCursorVisible()
	st := renderState{
		filePath:   r.FilePath,
		dirty:      r.Dirty,
		topLine:    r.TopLine,
		miniBuf:    append([]string(nil), r.MiniBuf...),
		highlights: append([]search.Range(nil), highlights...),
		showHelp:   r.ShowHelp,
		theme:      r.Theme,
		status:     r.statusText(),
	}
	if r.Buf != nil {
		st.lines = r.Buf.Lines()
		st.cursor = r.Buf.Cursor().Offset()
		if tag := r.Buf.Tags().Lookup(spell.NoSpellCheckTag); tag != nil {
			for _, sp := range r.Buf.TagSpans(tag, 0, r.Buf.Len()) {
				st.protected = append(st.protected, spell.Span{Start: sp.Start, End: sp.End})
			}
		}
	}
	if r.Spell != nil {
		st.misspelled = r.Spell.Misspelled()
	}
	return st
}

func (r *Runner) statusText() string {
	display := r.FilePath
	if display == "" {
		display = "[No File]"
	}
	if r.Dirty {
		display += " [+]"
	}
	if r.Spell != nil {
		state := "off"
		if r.Spell.Enabled() {
			state = fmt.Sprintf("%d misspelled", len(r.Spell.Misspelled()))
		}
		display += fmt.Sprintf(" | %s | spell: %s", r.Spell.Language(), state)
	}
	if r.Message != "" {
		display += " | " + r.Message
	}
	return display
}

// draw renders the buffer with optional search highlights.
func (r *Runner) draw(highlights []search.Range) {
	if r.Screen == nil {
		return
	}
	renderToScreen(r.Screen, r.renderSnapshot(highlights))
}

// renderToScreen draws the provided snapshot to the tcell screen.
func renderToScreen(s tcell.Screen, st renderState) {
	if st.showHelp {
		drawHelp(s, st.theme)
		return
	}
	drawFile(s, st)
}

func inSpans(spans []spell.Span, off int) bool {
	for _, sp := range spans {
		if sp.Start <= off && off < sp.End {
			return true
		}
	}
	return false
}

func inRanges(ranges []search.Range, off int) (search.Range, bool) {
	for _, h := range ranges {
		if h.Start <= off && off < h.End {
			return h, true
		}
	}
	return search.Range{}, false
}

// styleAt picks the cell style for the rune at off.
func styleAt(st renderState, off int) tcell.Style {
	th := st.theme
	style := tcell.StyleDefault.Foreground(th.TextDefault).Background(th.UIBackground)
	if off == st.cursor {
		return tcell.StyleDefault.Foreground(th.CursorText).Background(th.CursorBG)
	}
	if h, ok := inRanges(st.highlights, off); ok {
		style = style.Foreground(th.HighlightSearchFG).Background(th.HighlightSearchBG)
		if h.Group == "current" {
			style = style.Reverse(true)
		}
		return style
	}
	if inSpans(st.protected, off) {
		style = style.Foreground(th.NoSpellCheck)
	}
	if inSpans(st.misspelled, off) {
		style = style.Underline(true).Foreground(th.Misspelled)
	}
	return style
}

func drawFile(s tcell.Screen, st renderState) {
	width, height := s.Size()
	s.Clear()
	th := st.theme
	mbHeight := len(st.miniBuf)
	maxLines := height - 1 - mbHeight
	if maxLines < 0 {
		maxLines = 0
	}
	lineStart := 0
	for i := 0; i < st.topLine && i < len(st.lines); i++ {
		lineStart += len([]rune(st.lines[i])) + 1
	}
	for i := 0; i < maxLines && st.topLine+i < len(st.lines); i++ {
		runes := []rune(st.lines[st.topLine+i])
		for j := 0; j < width && j < len(runes); j++ {
			s.SetContent(j, i, runes[j], nil, styleAt(st, lineStart+j))
		}
		// cursor at end of line gets a placeholder cell
		if lineStart+len(runes) == st.cursor && len(runes) < width {
			s.SetContent(len(runes), i, ' ', nil, tcell.StyleDefault.Foreground(th.CursorText).Background(th.CursorBG))
		}
		lineStart += len(runes) + 1
	}
	barStyle := tcell.StyleDefault.Foreground(th.StatusForeground).Background(th.StatusBackground)
	status := []rune(st.status + " | F1 help")
	for x := 0; x < width; x++ {
		ch := ' '
		if x < len(status) {
			ch = status[x]
		}
		s.SetContent(x, height-1, ch, nil, barStyle)
	}
	miniStyle := tcell.StyleDefault.Foreground(th.MiniForeground).Background(th.MiniBackground)
	for i, line := range st.miniBuf {
		y := height - 1 - mbHeight + i
		runes := []rune(line)
		for x := 0; x < width; x++ {
			ch := ' '
			if x < len(runes) {
				ch = runes[x]
			}
			s.SetContent(x, y, ch, nil, miniStyle)
		}
	}
	s.Show()
}

// viewHeight is the number of text rows left after the status bar and
// mini-buffer.
func (r *Runner) viewHeight() int {
	if r.Screen == nil {
		return 0
	}
	_, height := r.Screen.Size()
	h := height - 1 - len(r.MiniBuf)
	if h < 0 {
		return 0
	}
	return h
}

// ensureCursorVisible scrolls TopLine so the cursor line is on screen.
func (r *Runner) ensureCursorVisible() {
	if r.Buf == nil || r.Screen == nil {
		return
	}
	line, _ := r.Buf.LineAt(r.Buf.Cursor().Offset())
	h := r.viewHeight()
	if h == 0 {
		return
	}
	if line < r.TopLine {
		r.TopLine = line
	} else if line >= r.TopLine+h {
		r.TopLine = line - h + 1
	}
}

// offsetAt maps a screen cell to a buffer offset, clamping to the line.
func (r *Runner) offsetAt(x, y int) int {
	line := r.TopLine + y
	if line >= r.Buf.LineCount() {
		return r.Buf.Len()
	}
	start, end := r.Buf.LineBounds(line)
	if x > end-start {
		x = end - start
	}
	if x < 0 {
		x = 0
	}
	return start + x
}
