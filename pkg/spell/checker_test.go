package spell_test

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"example.com/textspell/pkg/buffer"
	"example.com/textspell/pkg/history"
	"example.com/textspell/pkg/logs"
	"example.com/textspell/pkg/spell"
	"example.com/textspell/pkg/spellhost"
)

func TestRecheckMarksOnlyRejectedWords(t *testing.T) {
	f := newFixture(t, "Teh cat sat.")
	if got := f.marked(); !reflect.DeepEqual(got, []string{"Teh"}) {
		t.Fatalf("marked = %v, want [Teh]", got)
	}
	if got := f.c.Misspelled(); !reflect.DeepEqual(got, []spell.Span{{Start: 0, End: 3}}) {
		t.Fatalf("spans = %v", got)
	}
}

func TestWordFilterSuppressesMarker(t *testing.T) {
	f := newFixture(t, "Teh cat sat.")
	if err := f.c.AddFilter("Teh", spell.FilterWord); err != nil {
		t.Fatal(err)
	}
	if len(f.marked()) != 1 {
		t.Fatal("adding a filter should not recheck by itself")
	}
	f.c.Recheck()
	if got := f.marked(); len(got) != 0 {
		t.Fatalf("marked = %v, want none", got)
	}
}

func TestWordFilterMatchesWholeWordOnly(t *testing.T) {
	f := newFixture(t, "Tehx cat")
	if err := f.c.AddFilter("Teh", spell.FilterWord); err != nil {
		t.Fatal(err)
	}
	f.c.Recheck()
	if got := f.marked(); !reflect.DeepEqual(got, []string{"Tehx"}) {
		t.Fatalf("marked = %v", got)
	}
}

func TestWordUnderCursorIsDeferred(t *testing.T) {
	f := newFixture(t, "Teh cat sat.")
	d := f.dict()
	d.good["Teh"] = true
	f.c.Recheck()
	delete(d.good, "Teh")

	f.tb.PlaceCursor(1)
	f.c.CheckRange(0, f.tb.Len(), false)
	if !f.c.Deferred() {
		t.Fatal("expected the cursor word to be deferred")
	}
	if got := f.marked(); len(got) != 0 {
		t.Fatalf("marked = %v while cursor inside word", got)
	}

	f.tb.PlaceCursor(f.tb.Len())
	if got := f.marked(); !reflect.DeepEqual(got, []string{"Teh"}) {
		t.Fatalf("marked after cursor left = %v", got)
	}
	if f.c.Deferred() {
		t.Fatal("deferred flag should be cleared after reconciling")
	}
}

func TestAddToDictionaryClearsMarker(t *testing.T) {
	f := newFixture(t, "Teh cat sat.")
	if err := f.c.AddToDictionary("Teh"); err != nil {
		t.Fatal(err)
	}
	if got := f.marked(); len(got) != 0 {
		t.Fatalf("marked = %v", got)
	}
	if !reflect.DeepEqual(f.dict().added, []string{"Teh"}) {
		t.Fatalf("added = %v", f.dict().added)
	}
}

func TestAddToDictionaryError(t *testing.T) {
	f := newFixture(t, "Teh")
	f.dict().addErr = errors.New("read-only")
	if err := f.c.AddToDictionary("Teh"); err == nil {
		t.Fatal("expected error")
	}
	if len(f.marked()) != 1 {
		t.Fatal("marker should stay after a failed add")
	}
}

func TestIgnoreForSession(t *testing.T) {
	f := newFixture(t, "Teh cat Teh")
	f.c.IgnoreForSession("Teh")
	if got := f.marked(); len(got) != 0 {
		t.Fatalf("marked = %v", got)
	}
}

func TestLineFilterClearsWholeMatch(t *testing.T) {
	f := newFixture(t, "# Teh comment\nTeh again")
	if got := f.marked(); !reflect.DeepEqual(got, []string{"Teh", "comment", "Teh", "again"}) {
		t.Fatalf("marked before filter = %v", got)
	}
	if err := f.c.AddFilter(`^#.*$`, spell.FilterLine); err != nil {
		t.Fatal(err)
	}
	f.c.Recheck()
	spans := f.c.Misspelled()
	if len(spans) != 2 || spans[0].Start != 14 {
		t.Fatalf("spans = %v, want only the second line", spans)
	}
}

func TestDefaultFilters(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"number", "cat 3.14 sat 1,000"},
		{"url", "see http://exampel.com/pth cat"},
		{"email", "mail bob@exmaple.org cat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.text)
			d := f.dict()
			d.good["see"], d.good["mail"] = true, true
			f.c.Recheck()
			if got := f.marked(); len(got) != 0 {
				t.Fatalf("marked = %v", got)
			}
		})
	}
}

func TestTextFilterSpansLines(t *testing.T) {
	text := "cat\n```\nzzq qqz\n```\nsat"
	f := newFixture(t, text)
	if got := f.marked(); !reflect.DeepEqual(got, []string{"zzq", "qqz"}) {
		t.Fatalf("marked before filter = %v", got)
	}
	if err := f.c.AddFilter("```[^`]*```", spell.FilterText); err != nil {
		t.Fatal(err)
	}
	f.c.Recheck()
	if got := f.marked(); len(got) != 0 {
		t.Fatalf("marked = %v", got)
	}
}

func TestFilterErrors(t *testing.T) {
	f := newFixture(t, "")
	before := f.c.Filters(spell.FilterWord)
	if err := f.c.AddFilter("(", spell.FilterWord); err == nil {
		t.Fatal("expected compile error")
	}
	if got := f.c.Filters(spell.FilterWord); !reflect.DeepEqual(got, before) {
		t.Fatalf("filters changed after failed add: %v", got)
	}
	if err := f.c.RemoveFilter("nope", spell.FilterLine); !errors.Is(err, spell.ErrFilterNotFound) {
		t.Fatalf("expected ErrFilterNotFound, got %v", err)
	}
	if err := f.c.AddFilter("x", spell.FilterKind(7)); !errors.Is(err, spell.ErrUnknownFilterKind) {
		t.Fatalf("expected ErrUnknownFilterKind, got %v", err)
	}
	if err := f.c.RemoveFilter(`[0-9.,]+`, spell.FilterWord); err != nil {
		t.Fatal(err)
	}
	if got := f.c.Filters(spell.FilterWord); len(got) != 0 {
		t.Fatalf("word filters = %v", got)
	}
}

func TestFiltersAreNotShared(t *testing.T) {
	a := newFixture(t, "")
	b := newFixture(t, "")
	if err := a.c.AddFilter("foo", spell.FilterWord); err != nil {
		t.Fatal(err)
	}
	if got := b.c.Filters(spell.FilterWord); len(got) != 1 {
		t.Fatalf("second checker sees %v", got)
	}
	if got := spell.DefaultFilters()[spell.FilterWord]; len(got) != 1 {
		t.Fatalf("defaults mutated: %v", got)
	}
}

func TestWithFiltersExtendsDefaults(t *testing.T) {
	f := newFixture(t, "Teh cat", spell.WithFilters(map[spell.FilterKind][]string{
		spell.FilterWord: {"Teh"},
	}))
	if got := f.marked(); len(got) != 0 {
		t.Fatalf("marked = %v", got)
	}
	if got := f.c.Filters(spell.FilterWord); len(got) != 2 {
		t.Fatalf("word filters = %v", got)
	}
}

func TestCheckRangeIsIdempotent(t *testing.T) {
	f := newFixture(t, "Teh cat\nzzq sat qqz. The")
	f.c.CheckRange(0, f.tb.Len(), true)
	first := f.c.Misspelled()
	f.c.CheckRange(0, f.tb.Len(), true)
	if second := f.c.Misspelled(); !reflect.DeepEqual(first, second) {
		t.Fatalf("first %v, second %v", first, second)
	}
}

func TestIgnoreTagsAreNeverTouched(t *testing.T) {
	f := newFixture(t, "Teh cat Zzz.")
	code, err := f.tb.Tags().Create("code", map[string]any{"spell_check": false})
	if err != nil {
		t.Fatal(err)
	}
	if tags := f.c.IgnoredTags(); len(tags) != 1 || tags[0].Name() != "code" {
		t.Fatalf("ignored = %v", tags)
	}

	// Already marked: stays marked even though the dictionary now accepts it.
	f.tb.ApplyTag(code, 0, 3)
	f.dict().good["Teh"] = true
	f.c.Recheck()
	if got := f.marked(); !reflect.DeepEqual(got, []string{"Teh", "Zzz"}) {
		t.Fatalf("marked = %v", got)
	}

	// Unmarked: stays unmarked.
	nsc := f.tb.Tags().Lookup(spell.NoSpellCheckTag)
	if nsc == nil {
		t.Fatal("no-spell-check tag not created")
	}
	f.c.SetEnabled(false)
	f.tb.ApplyTag(nsc, 8, 11)
	f.c.SetEnabled(true)
	if got := f.marked(); len(got) != 0 {
		t.Fatalf("marked = %v", got)
	}

	f.tb.Tags().Remove(code)
	if len(f.c.IgnoredTags()) != 0 {
		t.Fatal("removed tag still ignored")
	}
}

func TestIgnoreTagErrors(t *testing.T) {
	f := newFixture(t, "Teh cat")
	if err := f.c.AppendIgnoreTag(nil); !errors.Is(err, spell.ErrNilTag) {
		t.Fatalf("expected ErrNilTag, got %v", err)
	}
	if err := f.c.AppendIgnoreTagName("missing"); !errors.Is(err, spell.ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
	if _, err := f.tb.Tags().Create("quote", nil); err != nil {
		t.Fatal(err)
	}
	if err := f.c.RemoveIgnoreTagName("quote"); !errors.Is(err, spell.ErrTagNotIgnored) {
		t.Fatalf("expected ErrTagNotIgnored, got %v", err)
	}
	if err := f.c.AppendIgnoreTagName("quote"); err != nil {
		t.Fatal(err)
	}
	f.tb.ApplyTag(f.tb.Tags().Lookup("quote"), 0, 3)
	f.c.SetEnabled(false)
	f.c.SetEnabled(true)
	if got := f.marked(); len(got) != 0 {
		t.Fatalf("marked = %v", got)
	}
	if err := f.c.RemoveIgnoreTagName("quote"); err != nil {
		t.Fatal(err)
	}
	f.c.Recheck()
	if got := f.marked(); !reflect.DeepEqual(got, []string{"Teh"}) {
		t.Fatalf("marked after removing ignore tag = %v", got)
	}
}

func TestTypingNeverFlashesMarker(t *testing.T) {
	f := newFixture(t, "")
	for _, r := range "Teh" {
		f.typeText(t, string(r))
		if got := f.marked(); len(got) != 0 {
			t.Fatalf("marker flashed while typing: %v", got)
		}
	}
	if !f.c.Deferred() {
		t.Fatal("expected pending check")
	}
	f.typeText(t, " cat")
	if got := f.marked(); !reflect.DeepEqual(got, []string{"Teh"}) {
		t.Fatalf("marked = %v", got)
	}
	f.typeText(t, " ")
	if got := f.marked(); !reflect.DeepEqual(got, []string{"Teh"}) {
		t.Fatalf("marked after finishing cat = %v", got)
	}
}

func TestHighlightChecksMarkedWordImmediately(t *testing.T) {
	f := newFixture(t, "Teh cat")
	f.tb.PlaceCursor(2)
	f.dict().good["Teh"] = true
	f.c.CheckRange(0, 3, false)
	if got := f.marked(); len(got) != 0 {
		t.Fatalf("marked = %v", got)
	}
	if f.c.Deferred() {
		t.Fatal("a marked word under the cursor is checked, not deferred")
	}
}

func TestDeletingJoinsWords(t *testing.T) {
	f := newFixture(t, "ca t sat")
	if got := f.marked(); !reflect.DeepEqual(got, []string{"ca", "t"}) {
		t.Fatalf("marked = %v", got)
	}
	if err := f.tb.Delete(2, 3); err != nil {
		t.Fatal(err)
	}
	if got := f.marked(); len(got) != 0 {
		t.Fatalf("marked after join = %v", got)
	}
}

func TestSetLanguage(t *testing.T) {
	f := newFixture(t, "Teh cat")
	delete(f.prov.dicts["de"].good, "cat")
	requests := len(f.prov.requests)

	if err := f.c.SetLanguage("fr"); err != nil || f.c.Language() != "en" {
		t.Fatalf("unknown language should be ignored: %v %s", err, f.c.Language())
	}
	if err := f.c.SetLanguage("en"); err != nil || len(f.prov.requests) != requests {
		t.Fatal("same language should not request a dictionary")
	}
	if err := f.c.SetLanguage("de"); err != nil {
		t.Fatal(err)
	}
	if got := f.marked(); !reflect.DeepEqual(got, []string{"Teh", "cat"}) {
		t.Fatalf("marked with de = %v", got)
	}
	if names := f.c.Languages(); names.Name("de") != "German" || !names.Exists("en") {
		t.Fatalf("languages = %v", names)
	}
}

func TestConstructionFallback(t *testing.T) {
	tests := []struct {
		name      string
		installed []string
		requested string
		want      string
	}{
		{"installed", []string{"en", "de"}, "de", "de"},
		{"default", []string{"de", "en"}, "fr", "en"},
		{"first", []string{"de", "nl"}, "fr", "de"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := spellhost.New(buffer.NewTextBuffer("cat"))
			c, err := spell.New(host, newFakeProvider(tt.installed...), spell.WithLanguage(tt.requested))
			if err != nil {
				t.Fatal(err)
			}
			defer c.Close()
			if c.Language() != tt.want {
				t.Fatalf("language = %s, want %s", c.Language(), tt.want)
			}
		})
	}

	host := spellhost.New(buffer.NewTextBuffer(""))
	if _, err := spell.New(host, newFakeProvider()); !errors.Is(err, spell.ErrNoDictionaries) {
		t.Fatalf("expected ErrNoDictionaries, got %v", err)
	}
}

func TestSetEnabled(t *testing.T) {
	f := newFixture(t, "Teh cat")
	f.c.SetEnabled(false)
	if f.c.Enabled() || len(f.marked()) != 0 {
		t.Fatal("disabling should clear markers")
	}
	_ = f.tb.Insert(f.tb.Len(), " zzq")
	f.c.CheckRange(0, f.tb.Len(), true)
	if len(f.marked()) != 0 {
		t.Fatal("no checking while disabled")
	}
	f.c.SetEnabled(true)
	if got := f.marked(); !reflect.DeepEqual(got, []string{"Teh", "zzq"}) {
		t.Fatalf("marked = %v", got)
	}
}

func TestWithDisabledSkipsInitialCheck(t *testing.T) {
	f := newFixture(t, "Teh", spell.WithDisabled())
	if len(f.marked()) != 0 {
		t.Fatal("disabled checker marked text")
	}
}

func TestButtonPressAndReplace(t *testing.T) {
	f := newFixture(t, "Teh cat sat.")
	h := history.New()
	f.tb.SetRecorder(h)

	f.c.ButtonPress(1)
	word, span, ok := f.c.ClickedWord()
	if !ok || word != "Teh" || span != (spell.Span{Start: 0, End: 3}) {
		t.Fatalf("ClickedWord = %q %v %v", word, span, ok)
	}
	if got := f.c.Suggest(word); len(got) == 0 || got[0] != "The" {
		t.Fatalf("Suggest = %v", got)
	}
	if err := f.c.ReplaceWord(word, "The"); err != nil {
		t.Fatal(err)
	}
	if f.tb.String() != "The cat sat." || len(f.marked()) != 0 {
		t.Fatalf("after replace: %q marked=%v", f.tb.String(), f.marked())
	}
	if got := f.dict().replacements; !reflect.DeepEqual(got, [][2]string{{"Teh", "The"}}) {
		t.Fatalf("replacements = %v", got)
	}

	if err := h.Undo(f.tb); err != nil {
		t.Fatal(err)
	}
	if f.tb.String() != "Teh cat sat." {
		t.Fatalf("undo gave %q", f.tb.String())
	}
	if got := f.marked(); !reflect.DeepEqual(got, []string{"Teh"}) {
		t.Fatalf("marked after undo = %v", got)
	}
}

func TestButtonPressForcesPendingCheck(t *testing.T) {
	f := newFixture(t, "cat ")
	f.typeText(t, "Teh")
	if !f.c.Deferred() || len(f.marked()) != 0 {
		t.Fatal("expected a pending check")
	}
	f.c.ButtonPress(5)
	if f.c.Deferred() {
		t.Fatal("button press should reconcile")
	}
	if word, _, ok := f.c.ClickedWord(); !ok || word != "Teh" {
		t.Fatalf("ClickedWord = %q %v", word, ok)
	}
}

func TestPopupAtCursor(t *testing.T) {
	f := newFixture(t, "cat Teh")
	f.tb.PlaceCursor(5)
	f.c.PopupAtCursor()
	if off, _ := f.c.Anchor(spell.AnchorClick); off != 5 {
		t.Fatalf("click anchor at %d", off)
	}
	if word, _, ok := f.c.ClickedWord(); !ok || word != "Teh" {
		t.Fatalf("ClickedWord = %q %v", word, ok)
	}
}

func TestClickOutsideWord(t *testing.T) {
	f := newFixture(t, "Teh  cat")
	f.c.ButtonPress(4)
	if _, _, ok := f.c.ClickedWord(); ok {
		t.Fatal("no word at click")
	}
	if err := f.c.ReplaceWord("", "x"); !errors.Is(err, spell.ErrNoWordAtClick) {
		t.Fatalf("expected ErrNoWordAtClick, got %v", err)
	}
	f.c.ButtonPress(5)
	if _, _, ok := f.c.ClickedWord(); ok {
		t.Fatal("correct word should not be offered")
	}
}

func TestMoveAnchor(t *testing.T) {
	f := newFixture(t, "Teh cat")
	if err := f.c.MoveAnchor("bogus", 1); !errors.Is(err, spell.ErrUnknownAnchor) {
		t.Fatalf("expected ErrUnknownAnchor, got %v", err)
	}
	if err := f.c.MoveAnchor(spell.AnchorClick, 2); err != nil {
		t.Fatal(err)
	}
	if m := f.tb.Mark(spell.DefaultPrefix + "-click"); m == nil || m.Offset() != 2 {
		t.Fatal("click mark not moved")
	}
	_ = f.tb.Insert(2, "xx")
	if off, _ := f.c.Anchor(spell.AnchorClick); off != 2 {
		t.Fatalf("left gravity anchor moved to %d", off)
	}
}

func TestPrefixNamesMarksAndTag(t *testing.T) {
	f := newFixture(t, "Teh", spell.WithPrefix("ed"))
	if f.tb.Tags().Lookup("ed-misspelled") == nil {
		t.Fatal("misspelled tag not named with prefix")
	}
	for _, name := range []string{"ed-insert-start", "ed-insert-end", "ed-click"} {
		if f.tb.Mark(name) == nil {
			t.Fatalf("mark %s missing", name)
		}
	}
}

func TestAttachMovesToNewBuffer(t *testing.T) {
	f := newFixture(t, "Teh")
	old := f.tb
	tb2 := buffer.NewTextBuffer("zzq cat")
	tb2.PlaceCursor(tb2.Len())
	if err := f.c.Attach(spellhost.New(tb2)); err != nil {
		t.Fatal(err)
	}
	if old.Mark(spell.DefaultPrefix+"-click") != nil {
		t.Fatal("old marks not released")
	}
	_ = old.Insert(old.Len(), " qqz")
	spans := f.c.Misspelled()
	if len(spans) != 1 || tb2.Text(spans[0].Start, spans[0].End) != "zzq" {
		t.Fatalf("spans = %v", spans)
	}
}

func TestCloseStopsFollowingEdits(t *testing.T) {
	f := newFixture(t, "cat")
	tag := f.c.MisspelledTag()
	f.c.Close()
	_ = f.tb.Insert(f.tb.Len(), " zzq ")
	if spans := f.host.TagSpans(tag, 0, f.tb.Len()); len(spans) != 0 {
		t.Fatalf("closed checker still marks: %v", spans)
	}
}

func TestEventsAreLogged(t *testing.T) {
	var out bytes.Buffer
	f := newFixture(t, "Teh", spell.WithLogger(logs.New(&out)))
	f.c.IgnoreForSession("Teh")
	log := out.String()
	for _, ev := range []string{`"event":"spell.new"`, `"event":"spell.recheck"`, `"event":"spell.ignore"`} {
		if !strings.Contains(log, ev) {
			t.Errorf("log missing %s:\n%s", ev, log)
		}
	}
}

func TestPendingCheckSurvivesUnrelatedRange(t *testing.T) {
	f := newFixture(t, "cat sat ")
	f.typeText(t, "Teh")
	if !f.c.Deferred() {
		t.Fatal("expected pending check")
	}
	f.c.CheckRange(0, 3, false)
	if !f.c.Deferred() {
		t.Fatal("a range away from the pending word must keep it pending")
	}
	f.c.CheckRange(0, f.tb.Len(), true)
	if f.c.Deferred() {
		t.Fatal("a range covering the pending word must clear it")
	}
	if got := f.marked(); !reflect.DeepEqual(got, []string{"Teh"}) {
		t.Fatalf("marked = %v", got)
	}
}
