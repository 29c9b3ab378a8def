package spell

// Span is a half-open rune range [Start, End).
type Span struct {
	Start int
	End   int
}

// Mark is an anchor into a Buffer that follows its logical position across
// edits. Marks are compared by identity.
type Mark interface {
	Offset() int
}

// Tag is a named region attribute. Tags are compared by identity.
type Tag interface {
	Name() string
	Property(key string) (any, bool)
}

// TagTableObserver is notified when tags enter or leave a TagTable.
type TagTableObserver interface {
	TagAdded(t Tag)
	TagRemoved(t Tag)
}

// TagTable is the set of tags a Buffer knows about.
type TagTable interface {
	// Lookup returns the tag with the given name, or nil.
	Lookup(name string) Tag
	// Create adds a new tag with the given properties.
	Create(name string, props map[string]any) (Tag, error)
	ForEach(fn func(Tag))
	// Subscribe registers o and returns a function that unregisters it.
	Subscribe(o TagTableObserver) func()
}

// BufferObserver receives change notifications in mutation order.
type BufferObserver interface {
	BeforeInsert(off int, text string)
	AfterInsert(start, end int)
	AfterDelete(start, end int)
	MarkSet(m Mark)
}

// Buffer is the editable text a Checker works on. Positions are rune
// offsets in [0, Len()].
type Buffer interface {
	Len() int
	Text(start, end int) string

	StartsWord(off int) bool
	InsideWord(off int) bool
	EndsWord(off int) bool
	ForwardWordEnd(off int) int
	BackwardWordStart(off int) int

	// LineAt returns the line of off and its column within that line.
	LineAt(off int) (line, col int)
	// LineBounds returns the offsets of the first rune of line and of its
	// end, excluding the line terminator.
	LineBounds(line int) (start, end int)

	CreateMark(name string, off int, leftGravity bool) Mark
	MoveMark(m Mark, off int)
	DeleteMark(m Mark)
	Cursor() Mark

	Tags() TagTable
	ApplyTag(t Tag, start, end int)
	RemoveTag(t Tag, start, end int)
	HasTag(t Tag, off int) bool
	TagSpans(t Tag, start, end int) []Span

	Insert(off int, text string) error
	Delete(start, end int) error
	BeginUserAction()
	EndUserAction()

	Subscribe(o BufferObserver) func()
}
