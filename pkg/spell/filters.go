package spell

import (
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"
)

// FilterKind selects what a filter pattern is matched against.
type FilterKind int

const (
	// FilterWord patterns must match a whole candidate word.
	FilterWord FilterKind = iota
	// FilterLine patterns are matched against the line holding the word.
	FilterLine
	// FilterText patterns are matched against the whole buffer with
	// multi-line semantics.
	FilterText
)

func (k FilterKind) String() string {
	switch k {
	case FilterWord:
		return "word"
	case FilterLine:
		return "line"
	case FilterText:
		return "text"
	}
	return fmt.Sprintf("FilterKind(%d)", int(k))
}

// ParseFilterKind maps "word", "line" or "text" to a FilterKind.
func ParseFilterKind(s string) (FilterKind, error) {
	switch strings.ToLower(s) {
	case "word":
		return FilterWord, nil
	case "line":
		return FilterLine, nil
	case "text":
		return FilterText, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilterKind, s)
}

// DefaultFilters returns a fresh copy of the built-in filter patterns.
func DefaultFilters() map[FilterKind][]string {
	return map[FilterKind][]string{
		FilterWord: {`[0-9.,]+`},
		FilterLine: {
			`(https?|ftp|file):((//)|(\\\\))+[\w\d:#@%/;$()~_?+-=\\.&]+`,
			`[\w\d]+@[\w\d.]+`,
		},
		FilterText: {},
	}
}

// filterSet keeps the patterns of each kind and their combined matcher.
type filterSet struct {
	patterns map[FilterKind][]string
	re       map[FilterKind]*regexp.Regexp
}

func newFilterSet(initial map[FilterKind][]string) (*filterSet, error) {
	fs := &filterSet{
		patterns: make(map[FilterKind][]string),
		re:       make(map[FilterKind]*regexp.Regexp),
	}
	for _, k := range []FilterKind{FilterWord, FilterLine, FilterText} {
		pats := slices.Clone(initial[k])
		re, err := compileFilters(k, pats)
		if err != nil {
			return nil, err
		}
		fs.patterns[k] = pats
		fs.re[k] = re
	}
	return fs, nil
}

func compileFilters(k FilterKind, pats []string) (*regexp.Regexp, error) {
	if len(pats) == 0 {
		return nil, nil
	}
	alts := make([]string, len(pats))
	for i, p := range pats {
		alts[i] = "(?:" + p + ")"
	}
	expr := strings.Join(alts, "|")
	switch k {
	case FilterWord:
		expr = `^(?:` + expr + `)$`
	case FilterText:
		expr = `(?m)` + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile %s filter: %w", k, err)
	}
	return re, nil
}

func (fs *filterSet) add(pattern string, k FilterKind) error {
	if k < FilterWord || k > FilterText {
		return fmt.Errorf("%w: %d", ErrUnknownFilterKind, int(k))
	}
	pats := append(slices.Clone(fs.patterns[k]), pattern)
	re, err := compileFilters(k, pats)
	if err != nil {
		return err
	}
	fs.patterns[k] = pats
	fs.re[k] = re
	return nil
}

func (fs *filterSet) remove(pattern string, k FilterKind) error {
	if k < FilterWord || k > FilterText {
		return fmt.Errorf("%w: %d", ErrUnknownFilterKind, int(k))
	}
	i := slices.Index(fs.patterns[k], pattern)
	if i < 0 {
		return fmt.Errorf("%w: %s filter %q", ErrFilterNotFound, k, pattern)
	}
	pats := slices.Delete(slices.Clone(fs.patterns[k]), i, i+1)
	// The remaining patterns compiled before, so this cannot fail.
	re, _ := compileFilters(k, pats)
	fs.patterns[k] = pats
	fs.re[k] = re
	return nil
}

func (fs *filterSet) list(k FilterKind) []string {
	return slices.Clone(fs.patterns[k])
}

// matchWord reports whether a WORD filter matches the whole word.
func (fs *filterSet) matchWord(word string) bool {
	re := fs.re[FilterWord]
	return re != nil && re.MatchString(word)
}

// matchSpans returns the rune spans of every match of kind k in s, in
// order.
func (fs *filterSet) matchSpans(k FilterKind, s string) []Span {
	re := fs.re[k]
	if re == nil {
		return nil
	}
	return runeSpans(s, re.FindAllStringIndex(s, -1))
}

// runeSpans converts sorted byte ranges of s to rune spans in one sweep.
func runeSpans(s string, matches [][]int) []Span {
	if len(matches) == 0 {
		return nil
	}
	out := make([]Span, len(matches))
	b, r := 0, 0
	for i, m := range matches {
		r += utf8.RuneCountInString(s[b:m[0]])
		start := r
		r += utf8.RuneCountInString(s[m[0]:m[1]])
		b = m[1]
		out[i] = Span{Start: start, End: r}
	}
	return out
}

// bracketing returns the first span containing at, end inclusive.
func bracketing(spans []Span, at int) (Span, bool) {
	i := sort.Search(len(spans), func(i int) bool { return spans[i].End >= at })
	if i < len(spans) && spans[i].Start <= at {
		return spans[i], true
	}
	return Span{}, false
}
