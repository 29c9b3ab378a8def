package buffer

// TextStorage defines the minimal storage operations used by TextBuffer.
// Positions and lengths are expressed in runes (not bytes).
type TextStorage interface {
	Insert(pos int, s []rune) error
	Delete(start, end int) error
	Slice(start, end int) []rune
	Len() int
	RuneAt(i int) rune
	LineAt(idx int) (start, end int)
	LineOf(i int) (line, start int)
	LineCount() int
	String() string
}

var _ TextStorage = (*GapBuffer)(nil)
