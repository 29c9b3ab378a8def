package plugins

import "testing"

const goSource = "package main\n\n// Teh comment\nfunc mian() { s := \"strng\"; _ = s }\n"

func TestGoTagger(t *testing.T) {
	ranges := NewGoTagger().Protected([]byte(goSource))
	for _, w := range []string{"package", "main", "func", "mian", ":="} {
		if !covered(t, goSource, w, ranges) {
			t.Errorf("expected %q to be protected", w)
		}
	}
	for _, w := range []string{"Teh", "strng"} {
		if covered(t, goSource, w, ranges) {
			t.Errorf("expected %q to be checked", w)
		}
	}
}

func TestGoTaggerBrokenSource(t *testing.T) {
	src := "func (( \"unterminated"
	ranges := NewGoTagger().Protected([]byte(src))
	if !covered(t, src, "func", ranges) {
		t.Fatalf("expected keyword to be protected: %v", ranges)
	}
}
