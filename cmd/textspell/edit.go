package main

import (
	"github.com/spf13/cobra"

	"example.com/textspell/internal/app"
	"example.com/textspell/pkg/spell"
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit a file with live spell checking",
	Long:  `Edit opens a terminal editor that marks misspelled words as you type. Press F1 for key bindings.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := s.spellOptions()
	if !s.cfg.Enabled {
		opts = append(opts, spell.WithDisabled())
	}
	r, err := app.New(s.provider, opts...)
	if err != nil {
		return err
	}
	r.Logger = s.log
	r.Keymap = s.cfg.Keymap
	r.Theme = s.cfg.ThemeFor()
	r.Languages = s.languages
	if len(args) == 1 {
		if err := r.LoadFile(args[0]); err != nil {
			return err
		}
	}
	return r.Run()
}
