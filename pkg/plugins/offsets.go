package plugins

import (
	"unicode/utf8"

	"example.com/textspell/pkg/search"
)

// runeIndex converts increasing byte offsets of one source into rune
// offsets without rescanning from the start each time.
type runeIndex struct {
	src     []byte
	byteOff int
	runeOff int
}

func (ri *runeIndex) at(b int) int {
	if b < ri.byteOff {
		ri.byteOff, ri.runeOff = 0, 0
	}
	if b > len(ri.src) {
		b = len(ri.src)
	}
	ri.runeOff += utf8.RuneCount(ri.src[ri.byteOff:b])
	ri.byteOff = b
	return ri.runeOff
}

func (ri *runeIndex) span(start, end int, group string) search.Range {
	s := ri.at(start)
	return search.Range{Start: s, End: ri.at(end), Group: group}
}
