package app

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"example.com/textspell/pkg/config"
	"example.com/textspell/pkg/search"
)

func cellStyle(s tcell.SimulationScreen, x, y int) (rune, tcell.Style) {
	mainc, _, style, _ := s.GetContent(x, y)
	return mainc, style
}

func rowText(s tcell.SimulationScreen, y int) string {
	w, _ := s.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		ch, _ := cellStyle(s, x, y)
		b.WriteRune(ch)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestDrawUnderlinesMisspelledWords(t *testing.T) {
	s := newSimScreen(t)
	r := newTestRunner(t)
	r.Screen = s
	r.Theme = config.DefaultTheme()
	if err := r.SetText("the teh cat"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	r.draw(nil)

	if got := rowText(s, 0); got != "the teh cat" {
		t.Fatalf("row 0 = %q", got)
	}
	_, style := cellStyle(s, 5, 0)
	fg, _, attrs := style.Decompose()
	if fg != r.Theme.Misspelled {
		t.Fatalf("misspelled fg = %v, want %v", fg, r.Theme.Misspelled)
	}
	if attrs&tcell.AttrUnderline == 0 {
		t.Fatalf("misspelled cell not underlined")
	}
	_, style = cellStyle(s, 9, 0)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrUnderline != 0 {
		t.Fatalf("correct word underlined")
	}
}

func TestDrawDimsProtectedText(t *testing.T) {
	s := newSimScreen(t)
	r := newTestRunner(t)
	r.Screen = s
	r.FilePath = "notes.md"
	if err := r.SetText("see `teh` here"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	r.draw(nil)
	_, style := cellStyle(s, 6, 0)
	fg, _, attrs := style.Decompose()
	if fg != r.Theme.NoSpellCheck {
		t.Fatalf("protected fg = %v, want %v", fg, r.Theme.NoSpellCheck)
	}
	if attrs&tcell.AttrUnderline != 0 {
		t.Fatalf("code span marked misspelled")
	}
}

func TestDrawStatusBar(t *testing.T) {
	s := newSimScreen(t)
	r := newTestRunner(t)
	r.Screen = s
	r.FilePath = "a.txt"
	if err := r.SetText("teh"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	r.draw(nil)
	_, h := s.Size()
	want := "a.txt | en | spell: 1 misspelled | F1 help"
	if got := rowText(s, h-1); got != want {
		t.Fatalf("status = %q, want %q", got, want)
	}
}

func TestStyleAtSearchHighlight(t *testing.T) {
	th := config.DefaultTheme()
	st := renderState{
		cursor: 100,
		theme:  th,
		highlights: []search.Range{
			{Start: 0, End: 3, Group: "match"},
			{Start: 4, End: 7, Group: "current"},
		},
	}
	fg, bg, attrs := styleAt(st, 1).Decompose()
	if fg != th.HighlightSearchFG || bg != th.HighlightSearchBG || attrs&tcell.AttrReverse != 0 {
		t.Fatalf("match style = %v %v %v", fg, bg, attrs)
	}
	if _, _, attrs := styleAt(st, 5).Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Fatalf("current match not reversed")
	}
	fg, bg, _ = styleAt(st, 3).Decompose()
	if fg != th.TextDefault || bg != th.UIBackground {
		t.Fatalf("plain style = %v %v", fg, bg)
	}
}

func TestStyleAtCursorWins(t *testing.T) {
	th := config.DefaultTheme()
	st := renderState{cursor: 2, theme: th, highlights: []search.Range{{Start: 0, End: 5}}}
	fg, bg, _ := styleAt(st, 2).Decompose()
	if fg != th.CursorText || bg != th.CursorBG {
		t.Fatalf("cursor style = %v %v", fg, bg)
	}
}

func TestDrawHelp(t *testing.T) {
	s := newSimScreen(t)
	s.SetSize(80, 20)
	r := newTestRunner(t)
	r.Screen = s
	r.ShowHelp = true
	r.draw(nil)
	found := false
	_, h := s.Size()
	for y := 0; y < h; y++ {
		if strings.Contains(rowText(s, y), "Ctrl+L: Next language") {
			found = true
		}
	}
	if !found {
		t.Fatalf("help text not drawn")
	}
}

func TestOffsetAtClamps(t *testing.T) {
	r := newTestRunner(t)
	if err := r.SetText("ab\ncdef"); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	tests := []struct{ x, y, want int }{
		{0, 0, 0},
		{9, 0, 2},
		{2, 1, 5},
		{0, 5, 7},
	}
	for _, tt := range tests {
		if got := r.offsetAt(tt.x, tt.y); got != tt.want {
			t.Errorf("offsetAt(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}
