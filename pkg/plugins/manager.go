package plugins

import (
	"sort"

	"example.com/textspell/pkg/buffer"
	"example.com/textspell/pkg/search"
	"example.com/textspell/pkg/spell"
)

// Plugin represents a generic extension component.
type Plugin interface {
	Name() string
}

// Tagger finds the parts of a source text that must never be spell
// checked. Ranges are rune offsets into src.
type Tagger interface {
	Plugin
	Protected(src []byte) []search.Range
}

// Manager keeps track of registered plug-ins.
type Manager struct {
	registry map[string]Plugin
}

// NewManager creates an empty plug-in registry.
func NewManager() *Manager {
	return &Manager{registry: make(map[string]Plugin)}
}

// NewDefaultManager registers every built-in tagger.
func NewDefaultManager() *Manager {
	m := NewManager()
	m.Register(NewGoTagger())
	m.Register(NewMarkdownTagger())
	m.Register(NewTreeSitterPlugin())
	return m
}

// Register adds a plug-in to the registry.
func (m *Manager) Register(p Plugin) {
	m.registry[p.Name()] = p
}

// Get retrieves a plug-in by name.
func (m *Manager) Get(name string) (Plugin, bool) {
	p, ok := m.registry[name]
	return p, ok
}

// Tagger retrieves a registered plug-in that is a Tagger.
func (m *Manager) Tagger(name string) (Tagger, bool) {
	p, ok := m.registry[name]
	if !ok {
		return nil, false
	}
	t, ok := p.(Tagger)
	return t, ok
}

// Names lists the registered plug-in names in order.
func (m *Manager) Names() []string {
	var names []string
	for _, p := range m.List() {
		names = append(names, p.Name())
	}
	return names
}

// List returns all registered plug-ins ordered by name.
func (m *Manager) List() []Plugin {
	out := make([]Plugin, 0, len(m.registry))
	for _, p := range m.registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// ApplyNoSpellCheck tags every range the tagger protects with the
// no-spell-check tag, creating the tag when the buffer lacks it. Earlier
// no-spell-check spans are cleared first. It returns the number of spans
// applied.
func ApplyNoSpellCheck(tb *buffer.TextBuffer, t Tagger) (int, error) {
	tag := tb.Tags().Lookup(spell.NoSpellCheckTag)
	if tag == nil {
		var err error
		if tag, err = tb.Tags().Create(spell.NoSpellCheckTag, nil); err != nil {
			return 0, err
		}
	}
	tb.RemoveTag(tag, 0, tb.Len())
	if t == nil {
		return 0, nil
	}
	ranges := search.Merge(t.Protected([]byte(tb.String())))
	for _, r := range ranges {
		tb.ApplyTag(tag, r.Start, r.End)
	}
	return len(ranges), nil
}
