package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"example.com/textspell/pkg/spell"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List installed dictionaries",
	Args:  cobra.NoArgs,
	RunE:  runLanguages,
}

func runLanguages(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	current := color.New(color.FgGreen, color.Bold)
	out := cmd.OutOrStdout()
	for _, l := range spell.NewLanguageList(s.provider.Languages()) {
		if l.Code == s.cfg.Language {
			fmt.Fprintf(out, "%s %-8s %s\n", current.Sprint("*"), l.Code, l.Name)
			continue
		}
		fmt.Fprintf(out, "  %-8s %s\n", l.Code, l.Name)
	}
	return nil
}
