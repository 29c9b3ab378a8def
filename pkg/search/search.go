package search

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Range represents a half-open rune interval [Start, End). Group labels
// what produced the range when a caller mixes several sources.
type Range struct {
	Start int
	End   int
	Group string
}

// SearchAll returns all non-overlapping occurrences of query in text as
// rune ranges. An empty query returns nil.
func SearchAll(text, query string) []Range {
	return searchAll(text, query, strings.Index)
}

// SearchFold is SearchAll with Unicode case folding.
func SearchFold(text, query string) []Range {
	return searchAll(text, query, indexFold)
}

func searchAll(text, query string, index func(s, sub string) int) []Range {
	if query == "" {
		return nil
	}
	var res []Range
	off, runeOff := 0, 0
	for off < len(text) {
		idx := index(text[off:], query)
		if idx < 0 {
			break
		}
		start := runeOff + utf8.RuneCountInString(text[off:off+idx])
		n := matchLen(text[off+idx:], query)
		end := start + utf8.RuneCountInString(text[off+idx:off+idx+n])
		res = append(res, Range{Start: start, End: end})
		off += idx + n
		runeOff = end
	}
	return res
}

// matchLen returns the byte length of the match at the head of s. Folded
// matches may differ in byte length from query.
func matchLen(s, query string) int {
	want := utf8.RuneCountInString(query)
	n := 0
	for i := 0; i < want && n < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[n:])
		n += size
	}
	return n
}

func indexFold(s, sub string) int {
	n := utf8.RuneCountInString(sub)
	for i := range s {
		end := i
		for j := 0; j < n && end < len(s); j++ {
			_, size := utf8.DecodeRuneInString(s[end:])
			end += size
		}
		if strings.EqualFold(s[i:end], sub) {
			return i
		}
		if end == len(s) {
			break
		}
	}
	return -1
}

// SearchNext returns the index in ranges of the next match at or after pos.
// If pos is past all matches, it wraps and returns 0. Returns -1 if no ranges.
func SearchNext(ranges []Range, pos int) int {
	if len(ranges) == 0 {
		return -1
	}
	for i, r := range ranges {
		if pos < r.End {
			return i
		}
	}
	return 0
}

// Merge sorts ranges and joins the ones that overlap or touch. Groups of
// merged ranges are dropped.
func Merge(ranges []Range) []Range {
	if len(ranges) == 0 {
		return nil
	}
	sorted := append([]Range(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	out := []Range{sorted[0]}
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if r.Start <= last.End {
			if r.End > last.End {
				last.End = r.End
			}
			if r.Group != last.Group {
				last.Group = ""
			}
			continue
		}
		out = append(out, r)
	}
	return out
}
