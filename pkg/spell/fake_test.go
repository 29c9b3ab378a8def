package spell_test

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"example.com/textspell/pkg/buffer"
	"example.com/textspell/pkg/spell"
	"example.com/textspell/pkg/spellhost"
)

// fakeDict accepts the words in good, case-sensitively.
type fakeDict struct {
	good         map[string]bool
	ignored      map[string]bool
	added        []string
	replacements [][2]string
	addErr       error
}

func newFakeDict(words ...string) *fakeDict {
	d := &fakeDict{good: map[string]bool{}, ignored: map[string]bool{}}
	for _, w := range words {
		d.good[w] = true
	}
	return d
}

func (d *fakeDict) Check(word string) bool { return d.good[word] || d.ignored[word] }

func (d *fakeDict) Suggest(word string) []string {
	var out []string
	for w := range d.good {
		if word != "" && strings.EqualFold(w[:1], word[:1]) {
			out = append(out, w)
		}
	}
	sort.Strings(out)
	return out
}

func (d *fakeDict) Add(word string) error {
	if d.addErr != nil {
		return d.addErr
	}
	d.added = append(d.added, word)
	d.good[word] = true
	return nil
}

func (d *fakeDict) Ignore(word string) { d.ignored[word] = true }

func (d *fakeDict) StoreReplacement(bad, good string) {
	d.replacements = append(d.replacements, [2]string{bad, good})
}

type fakeProvider struct {
	dicts    map[string]*fakeDict
	order    []string
	requests []string
}

func newFakeProvider(langs ...string) *fakeProvider {
	p := &fakeProvider{dicts: map[string]*fakeDict{}}
	for _, l := range langs {
		p.dicts[l] = newFakeDict("cat", "sat", "the", "The", "a")
		p.order = append(p.order, l)
	}
	return p
}

func (p *fakeProvider) Languages() []string { return p.order }

func (p *fakeProvider) Request(code string) (spell.Dictionary, error) {
	d, ok := p.dicts[code]
	if !ok {
		return nil, errors.New("no such dictionary")
	}
	p.requests = append(p.requests, code)
	return d, nil
}

type fixture struct {
	tb   *buffer.TextBuffer
	host *spellhost.Host
	prov *fakeProvider
	c    *spell.Checker
}

func newFixture(t testing.TB, text string, opts ...spell.Option) *fixture {
	t.Helper()
	tb := buffer.NewTextBuffer(text)
	// Keep the cursor away from the text so nothing is deferred by accident.
	tb.PlaceCursor(tb.Len())
	host := spellhost.New(tb)
	prov := newFakeProvider("en", "de")
	c, err := spell.New(host, prov, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return &fixture{tb: tb, host: host, prov: prov, c: c}
}

func (f *fixture) dict() *fakeDict { return f.prov.dicts[f.c.Language()] }

// marked returns the text of each misspelled span.
func (f *fixture) marked() []string {
	var out []string
	for _, s := range f.c.Misspelled() {
		out = append(out, f.tb.Text(s.Start, s.End))
	}
	return out
}

// typeText inserts s one rune at a time at the cursor.
func (f *fixture) typeText(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		if err := f.tb.InsertAtCursor(string(r)); err != nil {
			t.Fatal(err)
		}
	}
}
