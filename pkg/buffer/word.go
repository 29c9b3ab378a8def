package buffer

import "unicode"

// IsWordRune reports whether r is considered part of a word.
// Words consist of letters, digits, or combining marks.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// isJoiner reports whether r joins two word runes into one word, as the
// apostrophe does in "don't".
func isJoiner(r rune) bool {
	return r == '\'' || r == '’'
}

// isWordAt reports whether the rune at index i belongs to a word.
func isWordAt(s TextStorage, i int) bool {
	if i < 0 || i >= s.Len() {
		return false
	}
	r := s.RuneAt(i)
	if IsWordRune(r) {
		return true
	}
	if isJoiner(r) && i > 0 && i+1 < s.Len() {
		return IsWordRune(s.RuneAt(i-1)) && IsWordRune(s.RuneAt(i+1))
	}
	return false
}

// StartsWord reports whether pos is the first rune of a word.
func StartsWord(s TextStorage, pos int) bool {
	return isWordAt(s, pos) && !isWordAt(s, pos-1)
}

// EndsWord reports whether pos is just past the last rune of a word.
func EndsWord(s TextStorage, pos int) bool {
	return isWordAt(s, pos-1) && !isWordAt(s, pos)
}

// InsideWord reports whether the rune at pos is part of a word. A position
// at a word start is inside the word; a position at a word end is not.
func InsideWord(s TextStorage, pos int) bool {
	return isWordAt(s, pos)
}

// ForwardWordEnd returns the end of the next word strictly after pos. If pos
// is at a word end, the end of the following word is returned. When there is
// no word end after pos, pos is returned unchanged.
func ForwardWordEnd(s TextStorage, pos int) int {
	n := s.Len()
	if pos < 0 {
		pos = 0
	}
	i := pos
	for i < n && !isWordAt(s, i) {
		i++
	}
	if i >= n {
		return pos
	}
	for i < n && isWordAt(s, i) {
		i++
	}
	return i
}

// BackwardWordStart returns the start of the word before pos. If pos is at
// a word start, the start of the preceding word is returned. When there is no
// word start before pos, pos is returned unchanged.
func BackwardWordStart(s TextStorage, pos int) int {
	if pos > s.Len() {
		pos = s.Len()
	}
	i := pos - 1
	for i >= 0 && !isWordAt(s, i) {
		i--
	}
	if i < 0 {
		return pos
	}
	for i > 0 && isWordAt(s, i-1) {
		i--
	}
	return i
}
