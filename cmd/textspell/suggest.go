package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest word...",
	Short: "Print corrections for words",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSuggest,
}

func init() {
	suggestCmd.Flags().IntP("count", "n", 5, "maximum suggestions per word")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	count, err := cmd.Flags().GetInt("count")
	if err != nil {
		return fmt.Errorf("failed to get count flag: %w", err)
	}
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.requireLanguage(); err != nil {
		return err
	}
	d, err := s.provider.Request(s.cfg.Language)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, word := range args {
		if d.Check(word) {
			fmt.Fprintf(out, "%s: %s\n", word, hintColor.Sprint("correct"))
			continue
		}
		sugg := d.Suggest(word)
		if len(sugg) > count {
			sugg = sugg[:count]
		}
		if len(sugg) == 0 {
			fmt.Fprintf(out, "%s: %s\n", wordColor.Sprint(word), "no suggestions")
			continue
		}
		fmt.Fprintf(out, "%s: %s\n", wordColor.Sprint(word), strings.Join(sugg, ", "))
	}
	return nil
}
