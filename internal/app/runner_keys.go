package app

import (
	"github.com/gdamore/tcell/v2"

	"example.com/textspell/pkg/config"
)

// matches reports whether ev triggers the named command. Unbound commands
// fall back to the default keymap.
func (r *Runner) matches(name string, ev *tcell.EventKey) bool {
	if kb, ok := r.Keymap[name]; ok {
		return kb.Matches(ev)
	}
	if r.Keymap == nil {
		if kb, ok := config.DefaultKeymap()[name]; ok {
			return kb.Matches(ev)
		}
	}
	return false
}

// handleKeyEvent processes a key event. It returns true if the event signals
// the runner should quit.
func (r *Runner) handleKeyEvent(ev *tcell.EventKey) bool {
	r.Message = ""
	switch {
	case r.matches("quit", ev):
		if r.Dirty && r.Screen != nil && !r.runQuitPrompt() {
			return false
		}
		return true
	case r.matches("save", ev):
		if r.FilePath == "" {
			r.runSaveAsPrompt()
		} else if err := r.Save(); err != nil {
			r.Message = "Save failed: " + err.Error()
		} else {
			r.Message = "Saved " + r.FilePath
		}
	case r.matches("search", ev):
		r.runSearchPrompt()
	case r.matches("menu", ev):
		r.spellMenuAtCursor()
	case r.matches("add", ev):
		r.addWordAtCursor()
	case r.matches("ignore", ev):
		r.ignoreWordAtCursor()
	case r.matches("language", ev):
		r.nextLanguage()
	case r.matches("toggle", ev):
		r.toggleSpell()
	case r.matches("undo", ev):
		r.performUndo()
	case r.matches("redo", ev):
		r.performRedo()
	default:
		r.handleEditKey(ev)
	}
	r.draw(nil)
	return false
}

// handleEditKey covers motion and text entry.
func (r *Runner) handleEditKey(ev *tcell.EventKey) {
	if ev.Modifiers()&tcell.ModAlt != 0 && ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case 'f', 'F':
			r.wordForward()
		case 'b', 'B':
			r.wordBackward()
		case 'g', 'G':
			r.runGoToPrompt()
		}
		return
	}
	switch ev.Key() {
	case tcell.KeyF1:
		r.ShowHelp = true
	case tcell.KeyLeft:
		r.moveCursor(-1)
	case tcell.KeyRight:
		r.moveCursor(1)
	case tcell.KeyUp:
		r.moveCursorVertical(-1)
	case tcell.KeyDown:
		r.moveCursorVertical(1)
	case tcell.KeyHome:
		start, _ := r.currentLineBounds()
		r.Buf.PlaceCursor(start)
	case tcell.KeyEnd:
		_, end := r.currentLineBounds()
		r.Buf.PlaceCursor(end)
	case tcell.KeyEnter:
		r.insertText("\n")
	case tcell.KeyTab:
		r.insertText("\t")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		r.backspace()
	case tcell.KeyDelete:
		r.deleteForward()
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl == 0 {
			r.insertText(string(ev.Rune()))
		}
	}
}

// handleMouseEvent places the cursor on a left click and opens the
// suggestion menu on a right click.
func (r *Runner) handleMouseEvent(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if y >= r.viewHeight() {
		return
	}
	off := r.offsetAt(x, y)
	switch {
	case ev.Buttons()&tcell.Button1 != 0:
		r.Buf.PlaceCursor(off)
		r.draw(nil)
	case ev.Buttons()&tcell.Button2 != 0 && r.Spell != nil:
		r.Spell.ButtonPress(off)
		r.runSpellMenu()
		r.draw(nil)
	}
}
