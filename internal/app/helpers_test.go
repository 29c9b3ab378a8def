package app

import (
	"sort"
	"testing"

	"github.com/gdamore/tcell/v2"

	"example.com/textspell/pkg/dict"
	"example.com/textspell/pkg/spell"
)

// testProvider serves small in-memory dictionaries.
type testProvider map[string]*dict.Dictionary

func (p testProvider) Languages() []string {
	out := make([]string, 0, len(p))
	for code := range p {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

func (p testProvider) Request(code string) (spell.Dictionary, error) {
	d, ok := p[code]
	if !ok {
		return nil, dict.ErrUnknownLanguage
	}
	return d, nil
}

func newTestProvider() testProvider {
	return testProvider{
		"en": dict.NewDictionary("en", []string{"the", "cat", "sat", "on", "a", "hello"}),
		"de": dict.NewDictionary("de", []string{"der", "die", "das", "Katze"}),
	}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	r, err := New(newTestProvider())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(r.Spell.Close)
	return r
}

func newSimScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("initializing simulation screen failed: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(60, 10)
	return s
}

func typeText(r *Runner, text string) {
	for _, ch := range text {
		if ch == '\n' {
			r.handleKeyEvent(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
			continue
		}
		r.handleKeyEvent(tcell.NewEventKey(tcell.KeyRune, ch, 0))
	}
}

func ctrl(ch rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, ch, tcell.ModCtrl)
}

func misspelledWords(r *Runner) []string {
	var out []string
	for _, sp := range r.Spell.Misspelled() {
		out = append(out, r.Buf.Text(sp.Start, sp.End))
	}
	return out
}
