package app

import (
	"os"

	"github.com/gdamore/tcell/v2"
)

// SaveAs writes the current buffer to the given path and updates FilePath.
func (r *Runner) SaveAs(path string) error {
	if path == "" {
		return os.ErrInvalid
	}
	r.FilePath = path
	return r.Save()
}

// runSaveAsPrompt prompts for a file path and saves the current buffer there.
// Esc cancels; Enter attempts to write. Overwrites existing files.
func (r *Runner) runSaveAsPrompt() {
	if r.Screen == nil {
		return
	}
	defer r.clearMiniBuffer()
	input := r.FilePath
	errMsg := ""
	for {
		lines := []string{"Save As: " + input}
		if errMsg != "" {
			lines = append(lines, "Error: "+errMsg)
		}
		r.setMiniBuffer(lines)
		r.draw(nil)

		ev := r.waitEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch {
		case r.isCancelKey(key):
			return
		case key.Key() == tcell.KeyEnter:
			if input == "" {
				errMsg = "path required"
				continue
			}
			if err := r.SaveAs(input); err != nil {
				errMsg = err.Error()
				continue
			}
			r.Message = "Saved " + r.FilePath
			return
		case key.Key() == tcell.KeyBackspace || key.Key() == tcell.KeyBackspace2:
			if in := []rune(input); len(in) > 0 {
				input = string(in[:len(in)-1])
			}
		case key.Key() == tcell.KeyRune && key.Modifiers()&tcell.ModCtrl == 0:
			input += string(key.Rune())
			errMsg = ""
		}
	}
}
