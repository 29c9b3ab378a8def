package app

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"example.com/textspell/pkg/buffer"
	"example.com/textspell/pkg/config"
	"example.com/textspell/pkg/history"
	"example.com/textspell/pkg/logs"
	"example.com/textspell/pkg/plugins"
	"example.com/textspell/pkg/spell"
	"example.com/textspell/pkg/spellhost"
)

// Runner owns the terminal lifecycle, the edited buffer and the spell
// checker attached to it.
type Runner struct {
	Screen   tcell.Screen
	FilePath string
	Buf      *buffer.TextBuffer
	Spell    *spell.Checker
	History  *history.History
	Logger   *logs.Logger
	Keymap   map[string]config.Keybinding
	Theme    config.Theme
	// Languages maps file extensions to no-spell-check taggers.
	Languages *plugins.LanguageConfig
	Dirty     bool
	ShowHelp  bool
	TopLine   int
	MiniBuf   []string
	// Message is a one-shot status shown until the next key.
	Message string
}

// New creates a Runner with an empty buffer checked against provider.
func New(provider spell.Provider, opts ...spell.Option) (*Runner, error) {
	r := &Runner{
		History:   history.New(),
		Keymap:    config.DefaultKeymap(),
		Theme:     config.DefaultTheme(),
		Languages: plugins.DefaultLanguageConfig(),
	}
	r.Buf = r.newBuffer("")
	c, err := spell.New(spellhost.New(r.Buf), provider, opts...)
	if err != nil {
		return nil, err
	}
	r.Spell = c
	return r, nil
}

func (r *Runner) newBuffer(text string) *buffer.TextBuffer {
	tb := buffer.NewTextBuffer(text)
	r.History = history.New()
	tb.SetRecorder(r.History)
	return tb
}

func (r *Runner) setMiniBuffer(lines []string) {
	r.MiniBuf = lines
}

func (r *Runner) clearMiniBuffer() {
	r.MiniBuf = nil
}

// SetText replaces the buffer contents and re-attaches the checker. Code
// regions found by the tagger for FilePath are excluded from checking.
func (r *Runner) SetText(text string) error {
	tb := r.newBuffer(text)
	if r.Languages != nil {
		if tagger := plugins.TaggerForPath(r.Languages, r.FilePath); tagger != nil {
			if _, err := plugins.ApplyNoSpellCheck(tb, tagger); err != nil {
				return err
			}
		}
	}
	r.Buf = tb
	r.TopLine = 0
	if r.Spell != nil {
		if err := r.Spell.Attach(spellhost.New(tb)); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile loads a file into the runner's buffer.
func (r *Runner) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	r.Logger.Event("open.attempt", map[string]any{"file": path})
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.Logger.Event("open.error", map[string]any{"file": path, "error": err.Error()})
			return err
		}
		data = nil
	}
	r.FilePath = path
	// Normalize CRLF to LF for internal buffer storage
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	if err := r.SetText(normalized); err != nil {
		return err
	}
	r.Dirty = false
	r.Logger.Event("open.success", map[string]any{"file": path, "bytes": len(data), "runes": r.Buf.Len()})
	return nil
}

// Save writes the buffer contents to the current FilePath and clears Dirty.
func (r *Runner) Save() error {
	if r.FilePath == "" {
		return os.ErrInvalid
	}
	data := []byte(r.Buf.String())
	if err := os.WriteFile(r.FilePath, data, 0644); err != nil {
		return err
	}
	r.Dirty = false
	r.Logger.Event("action", map[string]any{"name": "save", "file": r.FilePath})
	return r.retag()
}

// retag recomputes the no-spell-check regions for FilePath. Checking never
// touches protected text, so markers are cleared and rebuilt around it.
func (r *Runner) retag() error {
	if r.Languages == nil {
		return nil
	}
	on := r.Spell != nil && r.Spell.Enabled()
	if on {
		r.Spell.SetEnabled(false)
		defer r.Spell.SetEnabled(true)
	}
	_, err := plugins.ApplyNoSpellCheck(r.Buf, plugins.TaggerForPath(r.Languages, r.FilePath))
	return err
}

// InitScreen initializes a tcell screen if one is not already set.
func (r *Runner) InitScreen() error {
	if r.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.SetStyle(tcell.StyleDefault)
	s.EnableMouse()
	s.Clear()
	r.Screen = s
	return nil
}

// Fini finalizes the screen if initialized and detaches the checker.
func (r *Runner) Fini() {
	if r.Screen != nil {
		r.Screen.Fini()
		r.Screen = nil
	}
	if r.Spell != nil {
		r.Spell.Close()
	}
	r.Logger.Close()
}

// waitEvent blocks for the next terminal event. It returns nil once the
// screen has been finalized.
func (r *Runner) waitEvent() tcell.Event {
	if r.Screen == nil {
		return nil
	}
	return r.Screen.PollEvent()
}

func (r *Runner) isCancelKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEsc || ev.Key() == tcell.KeyCtrlG
}

// Run starts the event loop. It will initialize the screen if needed and
// return when the user requests quit.
func (r *Runner) Run() error {
	if r.Screen == nil {
		if err := r.InitScreen(); err != nil {
			return err
		}
		defer r.Fini()
	}
	if r.Logger == nil {
		r.Logger = logs.NewFromEnv()
	}
	r.Logger.Event("run.start", map[string]any{"file": r.FilePath})
	defer r.Logger.Event("run.end", map[string]any{"file": r.FilePath})

	r.draw(nil)
	for {
		ev := r.waitEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			r.Logger.Event("key", map[string]any{
				"key":       int(ev.Key()),
				"rune":      string(ev.Rune()),
				"modifiers": int(ev.Modifiers()),
			})
			// A shown help screen swallows one key.
			if r.ShowHelp {
				r.ShowHelp = false
				r.draw(nil)
				continue
			}
			if r.handleKeyEvent(ev) {
				r.Logger.Event("action", map[string]any{"name": "quit"})
				return nil
			}
		case *tcell.EventMouse:
			r.handleMouseEvent(ev)
		case *tcell.EventResize:
			r.Screen.Sync()
			r.draw(nil)
		}
	}
}
