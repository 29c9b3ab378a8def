// Package spell keeps misspelled-word markers in an editable buffer up to
// date while the user types.
//
// A Checker subscribes to buffer notifications and re-examines only the
// words an edit touched. The word under the cursor is left alone until the
// cursor moves away, so a word being typed does not flicker.
package spell

import (
	"fmt"

	"example.com/textspell/pkg/logs"
)

const (
	// DefaultLanguage is used when the requested language is not installed.
	DefaultLanguage = "en"
	// DefaultPrefix qualifies the names of the engine's marks and tag.
	DefaultPrefix = "textspell"
)

// Option configures a Checker.
type Option func(*options)

type options struct {
	language string
	prefix   string
	log      *logs.Logger
	filters  map[FilterKind][]string
	disabled bool
}

// WithLanguage requests a dictionary language.
func WithLanguage(code string) Option { return func(o *options) { o.language = code } }

// WithPrefix sets the prefix of the mark and tag names.
func WithPrefix(prefix string) Option { return func(o *options) { o.prefix = prefix } }

// WithLogger sets the event logger.
func WithLogger(l *logs.Logger) Option { return func(o *options) { o.log = l } }

// WithFilters adds patterns on top of the default filters.
func WithFilters(extra map[FilterKind][]string) Option {
	return func(o *options) {
		for k, pats := range extra {
			o.filters[k] = append(o.filters[k], pats...)
		}
	}
}

// WithDisabled creates the checker with checking switched off.
func WithDisabled() Option { return func(o *options) { o.disabled = true } }

// Checker is a spell checking session bound to one Buffer. It is not safe
// for concurrent use; drive it from the goroutine that edits the buffer.
type Checker struct {
	buf       Buffer
	provider  Provider
	languages LanguageList
	language  string
	dict      Dictionary
	prefix    string
	log       *logs.Logger

	enabled  bool
	deferred bool

	filters      *filterSet
	ignored      ignoreTags
	misspelled   Tag
	noSpellCheck Tag
	marks        anchors
	pass         pass

	unsubscribe []func()
}

// New attaches a Checker to buf. The requested language falls back to
// DefaultLanguage and then to the first installed language; with no
// installed dictionaries New returns ErrNoDictionaries.
func New(buf Buffer, provider Provider, opts ...Option) (*Checker, error) {
	o := options{
		language: DefaultLanguage,
		prefix:   DefaultPrefix,
		filters:  DefaultFilters(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Checker{
		provider:  provider,
		languages: NewLanguageList(provider.Languages()),
		prefix:    o.prefix,
		log:       o.log,
		enabled:   !o.disabled,
	}
	if len(c.languages) == 0 {
		return nil, ErrNoDictionaries
	}
	fs, err := newFilterSet(o.filters)
	if err != nil {
		return nil, err
	}
	c.filters = fs

	lang := o.language
	switch {
	case c.languages.Exists(lang):
	case c.languages.Exists(DefaultLanguage):
		lang = DefaultLanguage
	default:
		lang = c.languages[0].Code
	}
	d, err := provider.Request(lang)
	if err != nil {
		return nil, fmt.Errorf("request dictionary %q: %w", lang, err)
	}
	c.language, c.dict = lang, d
	c.log.Event("spell.new", map[string]any{"language": lang, "requested": o.language, "prefix": c.prefix})

	if err := c.Attach(buf); err != nil {
		return nil, err
	}
	return c, nil
}

// Attach binds the checker to buf, releasing any previous buffer, and
// rechecks the whole text.
func (c *Checker) Attach(buf Buffer) error {
	c.Close()
	table := buf.Tags()
	mis, err := ensureTag(table, c.prefix+"-misspelled", map[string]any{"underline": "error"})
	if err != nil {
		return err
	}
	nsc, err := ensureTag(table, NoSpellCheckTag, nil)
	if err != nil {
		return err
	}
	c.buf = buf
	c.misspelled, c.noSpellCheck = mis, nsc
	c.marks = newAnchors(buf, c.prefix)
	c.deferred = false
	c.ignored = ignoreTags{}
	table.ForEach(c.ignored.TagAdded)
	c.unsubscribe = append(c.unsubscribe,
		table.Subscribe(&c.ignored),
		buf.Subscribe(bufferHooks{c}),
	)
	c.Recheck()
	return nil
}

func ensureTag(table TagTable, name string, props map[string]any) (Tag, error) {
	if t := table.Lookup(name); t != nil {
		return t, nil
	}
	t, err := table.Create(name, props)
	if err != nil {
		return nil, fmt.Errorf("create tag %q: %w", name, err)
	}
	return t, nil
}

// Close stops following the buffer. Existing markers are left in place.
func (c *Checker) Close() {
	for _, f := range c.unsubscribe {
		f()
	}
	c.unsubscribe = nil
	if c.buf != nil {
		c.marks.release(c.buf)
		c.buf = nil
	}
}

// Language returns the current dictionary code.
func (c *Checker) Language() string { return c.language }

// Languages returns the installed languages.
func (c *Checker) Languages() LanguageList { return c.languages }

// SetLanguage switches dictionaries and rechecks the buffer. Unknown codes
// and the current language are ignored.
func (c *Checker) SetLanguage(code string) error {
	if code == c.language || !c.languages.Exists(code) {
		return nil
	}
	d, err := c.provider.Request(code)
	if err != nil {
		return fmt.Errorf("request dictionary %q: %w", code, err)
	}
	c.log.Event("spell.language", map[string]any{"from": c.language, "to": code})
	c.language, c.dict = code, d
	c.Recheck()
	return nil
}

// Enabled reports whether checking is switched on.
func (c *Checker) Enabled() bool { return c.enabled }

// SetEnabled switches checking on or off. Switching on rechecks the buffer;
// switching off removes every marker.
func (c *Checker) SetEnabled(enabled bool) {
	if enabled == c.enabled {
		return
	}
	c.enabled = enabled
	c.log.Event("spell.enabled", map[string]any{"enabled": enabled})
	if c.buf == nil {
		return
	}
	if enabled {
		c.Recheck()
		return
	}
	c.deferred = false
	c.buf.RemoveTag(c.misspelled, 0, c.buf.Len())
}

// AddToDictionary stores word in the personal word list and rechecks.
func (c *Checker) AddToDictionary(word string) error {
	if err := c.dict.Add(word); err != nil {
		return fmt.Errorf("add %q to dictionary: %w", word, err)
	}
	c.log.Event("spell.add", map[string]any{"word": word, "language": c.language})
	c.Recheck()
	return nil
}

// IgnoreForSession accepts word until the program exits and rechecks.
func (c *Checker) IgnoreForSession(word string) {
	c.dict.Ignore(word)
	c.log.Event("spell.ignore", map[string]any{"word": word, "language": c.language})
	c.Recheck()
}

// Suggest returns replacement candidates for word.
func (c *Checker) Suggest(word string) []string { return c.dict.Suggest(word) }

// AddFilter adds a pattern of the given kind. Markers are not updated
// until the next check; call Recheck to apply it everywhere.
func (c *Checker) AddFilter(pattern string, kind FilterKind) error {
	return c.filters.add(pattern, kind)
}

// RemoveFilter removes one occurrence of pattern.
func (c *Checker) RemoveFilter(pattern string, kind FilterKind) error {
	return c.filters.remove(pattern, kind)
}

// Filters returns the patterns of kind.
func (c *Checker) Filters(kind FilterKind) []string { return c.filters.list(kind) }

// MisspelledTag returns the tag used to mark misspelled words.
func (c *Checker) MisspelledTag() Tag { return c.misspelled }

// Misspelled returns the marked spans in buffer order.
func (c *Checker) Misspelled() []Span {
	if c.buf == nil {
		return nil
	}
	return c.buf.TagSpans(c.misspelled, 0, c.buf.Len())
}

// ButtonPress handles a context click at off: pending checks are forced so
// the marker state is current, then the click anchor moves to off.
func (c *Checker) ButtonPress(off int) {
	if c.buf == nil {
		return
	}
	if c.deferred {
		c.reconcile(true)
	}
	c.buf.MoveMark(c.marks.click, off)
}

// PopupAtCursor handles a keyboard menu request by moving the click anchor
// to the cursor.
func (c *Checker) PopupAtCursor() {
	if c.buf == nil {
		return
	}
	if c.deferred {
		c.reconcile(true)
	}
	c.buf.MoveMark(c.marks.click, c.buf.Cursor().Offset())
}

// ClickedWord returns the misspelled word under the click anchor.
func (c *Checker) ClickedWord() (word string, span Span, ok bool) {
	if c.buf == nil || !c.enabled || !c.buf.InsideWord(c.marks.click.Offset()) {
		return "", Span{}, false
	}
	start, end := c.wordAt(c.marks.click)
	if !c.buf.HasTag(c.misspelled, start) {
		return "", Span{}, false
	}
	return c.buf.Text(start, end), Span{Start: start, End: end}, true
}

// ReplaceWord replaces the word under the click anchor with newWord as one
// user action and tells the dictionary about the substitution.
func (c *Checker) ReplaceWord(oldWord, newWord string) error {
	if c.buf == nil {
		return ErrDetached
	}
	if !c.buf.InsideWord(c.marks.click.Offset()) {
		return ErrNoWordAtClick
	}
	start, end := c.wordAt(c.marks.click)
	c.buf.BeginUserAction()
	err := c.buf.Delete(start, end)
	if err == nil {
		err = c.buf.Insert(start, newWord)
	}
	c.buf.EndUserAction()
	if err != nil {
		return fmt.Errorf("replace %q: %w", oldWord, err)
	}
	c.dict.StoreReplacement(oldWord, newWord)
	c.log.Event("spell.replace", map[string]any{"old": oldWord, "new": newWord, "start": start})
	return nil
}
