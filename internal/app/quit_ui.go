package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// quitPromptText names the unsaved state, including how many words are
// still marked, so the user can decide whether to review them first.
func (r *Runner) quitPromptText() string {
	msg := "Unsaved changes"
	if r.Spell != nil && r.Spell.Enabled() {
		if n := len(r.Spell.Misspelled()); n > 0 {
			msg += fmt.Sprintf(", %d misspelled", n)
		}
	}
	return msg + ". Quit? (y: discard, s: save and quit, n: cancel)"
}

// runQuitPrompt asks before discarding a dirty buffer. It returns true if
// the runner should quit.
func (r *Runner) runQuitPrompt() bool {
	if r.Screen == nil {
		return true
	}
	r.setMiniBuffer([]string{r.quitPromptText()})
	defer r.clearMiniBuffer()
	for {
		r.draw(nil)
		ev := r.waitEvent()
		if ev == nil {
			return true
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if r.isCancelKey(key) {
			return false
		}
		if key.Key() != tcell.KeyRune {
			continue
		}
		switch key.Rune() {
		case 'n', 'N':
			return false
		case 'y', 'Y':
			return true
		case 's', 'S':
			if r.FilePath == "" {
				r.runSaveAsPrompt()
				return !r.Dirty
			}
			if err := r.Save(); err != nil {
				r.setMiniBuffer([]string{"Save failed: " + err.Error(), r.quitPromptText()})
				continue
			}
			return true
		}
	}
}
