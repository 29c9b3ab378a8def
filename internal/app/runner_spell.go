package app

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"
)

// maxSuggestions bounds the menu to single-digit choices.
const maxSuggestions = 9

// spellMenuLines builds the suggestion menu for word.
func spellMenuLines(word string, suggestions []string) []string {
	lines := []string{fmt.Sprintf("Suggestions for %q:", word)}
	if len(suggestions) == 0 {
		lines = append(lines, "  (no suggestions)")
	}
	for i, s := range suggestions {
		lines = append(lines, fmt.Sprintf("  %d) %s", i+1, s))
	}
	lines = append(lines, "a: add to dictionary  g: ignore all  Esc: cancel")
	return lines
}

// runSpellMenu shows suggestions for the misspelled word under the click
// anchor. The caller positions the anchor first with PopupAtCursor or
// ButtonPress.
func (r *Runner) runSpellMenu() {
	if r.Spell == nil {
		return
	}
	word, _, ok := r.Spell.ClickedWord()
	if !ok {
		r.Message = "No misspelled word here"
		return
	}
	suggestions := r.Spell.Suggest(word)
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	r.Logger.Event("spell.menu", map[string]any{"word": word, "suggestions": len(suggestions)})
	if r.Screen == nil {
		return
	}
	r.setMiniBuffer(spellMenuLines(word, suggestions))
	defer r.clearMiniBuffer()
	for {
		r.draw(nil)
		raw := r.waitEvent()
		if raw == nil {
			return
		}
		ev, ok := raw.(*tcell.EventKey)
		if !ok {
			continue
		}
		if ev.Key() == tcell.KeyEsc {
			return
		}
		if ev.Key() != tcell.KeyRune {
			continue
		}
		switch ch := ev.Rune(); {
		case ch >= '1' && ch <= '9':
			i := int(ch - '1')
			if i >= len(suggestions) {
				continue
			}
			r.replaceClicked(word, suggestions[i])
			return
		case ch == 'a':
			r.addWord(word)
			return
		case ch == 'g':
			r.ignoreWord(word)
			return
		}
	}
}

func (r *Runner) replaceClicked(word, replacement string) {
	if err := r.Spell.ReplaceWord(word, replacement); err != nil {
		r.Message = "Replace failed: " + err.Error()
		return
	}
	r.Dirty = true
	r.Message = fmt.Sprintf("Replaced %q with %q", word, replacement)
}

func (r *Runner) addWord(word string) {
	if err := r.Spell.AddToDictionary(word); err != nil {
		r.Message = "Add failed: " + err.Error()
		return
	}
	r.Message = fmt.Sprintf("Added %q to dictionary", word)
}

func (r *Runner) ignoreWord(word string) {
	r.Spell.IgnoreForSession(word)
	r.Message = fmt.Sprintf("Ignoring %q", word)
}

// spellMenuAtCursor opens the suggestion menu for the word at the cursor.
func (r *Runner) spellMenuAtCursor() {
	if r.Spell == nil {
		return
	}
	r.anchorAtCursor()
	r.runSpellMenu()
}

// anchorAtCursor points the click anchor at the word under the cursor. A
// cursor resting just after a word, as it does while typing, counts as on it.
func (r *Runner) anchorAtCursor() {
	c := r.cursor()
	if c > 0 && !r.Buf.InsideWord(c) && r.Buf.EndsWord(c) {
		r.Spell.ButtonPress(c - 1)
		return
	}
	r.Spell.PopupAtCursor()
}

// wordAtCursor returns the misspelled word at the cursor, if any.
func (r *Runner) wordAtCursor() (string, bool) {
	if r.Spell == nil {
		return "", false
	}
	r.anchorAtCursor()
	word, _, ok := r.Spell.ClickedWord()
	if !ok {
		r.Message = "No misspelled word at cursor"
	}
	return word, ok
}

func (r *Runner) addWordAtCursor() {
	if word, ok := r.wordAtCursor(); ok {
		r.addWord(word)
	}
}

func (r *Runner) ignoreWordAtCursor() {
	if word, ok := r.wordAtCursor(); ok {
		r.ignoreWord(word)
	}
}

// nextLanguage switches to the language after the current one, wrapping.
func (r *Runner) nextLanguage() {
	if r.Spell == nil {
		return
	}
	codes := r.Spell.Languages().Codes()
	if len(codes) == 0 {
		return
	}
	i := slices.Index(codes, r.Spell.Language())
	next := codes[(i+1)%len(codes)]
	if err := r.Spell.SetLanguage(next); err != nil {
		r.Message = "Language change failed: " + err.Error()
		return
	}
	r.Message = "Language: " + r.Spell.Languages().Name(next)
}

func (r *Runner) toggleSpell() {
	if r.Spell == nil {
		return
	}
	r.Spell.SetEnabled(!r.Spell.Enabled())
	if r.Spell.Enabled() {
		r.Message = "Spell checking enabled"
	} else {
		r.Message = "Spell checking disabled"
	}
}
