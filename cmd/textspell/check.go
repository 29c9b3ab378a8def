package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"example.com/textspell/pkg/editor"
	"example.com/textspell/pkg/plugins"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] file...",
	Short: "Report misspelled words",
	Long:  `Check prints every misspelled word with its position. Code in Markdown and Go files is skipped. Use - to read standard input.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("suggestions", 3, "suggestions per word, 0 disables")
	checkCmd.Flags().String("tagger", "", "code tagger to use instead of detecting by extension, or none")
}

var (
	pathColor = color.New(color.Bold)
	wordColor = color.New(color.FgRed, color.Bold)
	hintColor = color.New(color.FgGreen)
)

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	suggestions, _ := cmd.Flags().GetInt("suggestions")
	taggerName, _ := cmd.Flags().GetString("tagger")

	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.requireLanguage(); err != nil {
		return err
	}

	var forced plugins.Tagger
	if taggerName != "" && taggerName != "none" {
		m := plugins.NewDefaultManager()
		t, ok := m.Tagger(taggerName)
		if !ok {
			return fmt.Errorf("unknown tagger %q (available: %s)", taggerName, strings.Join(m.Names(), ", "))
		}
		forced = t
	}

	start := time.Now()
	ed := editor.New(s.provider, s.languages, s.spellOptions()...)
	defer ed.Close()
	for _, path := range args {
		if path == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text := strings.ReplaceAll(string(data), "\r\n", "\n")
			if _, err := ed.OpenWith("<stdin>", text, forced); err != nil {
				return err
			}
			continue
		}
		if taggerName == "" {
			_, err = ed.LoadFile(path)
		} else {
			err = openWithTagger(ed, path, forced)
		}
		if err != nil {
			return err
		}
	}

	findings := ed.Findings(suggestions)
	s.log.Since("check.done", start, map[string]any{"files": len(args), "misspelled": len(findings)})
	out := cmd.OutOrStdout()
	if format == "json" {
		if findings == nil {
			findings = []editor.Finding{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(findings); err != nil {
			return err
		}
	} else {
		printFindings(out, findings)
	}
	if len(findings) > 0 {
		return errMisspelled
	}
	return nil
}

func openWithTagger(ed *editor.Editor, path string, t plugins.Tagger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	_, err = ed.OpenWith(path, strings.ReplaceAll(string(data), "\r\n", "\n"), t)
	return err
}

// printFindings writes one "path:line:col: word" line per finding.
func printFindings(w io.Writer, findings []editor.Finding) {
	for _, f := range findings {
		fmt.Fprintf(w, "%s:%d:%d: %s", pathColor.Sprint(f.Path), f.Line, f.Column, wordColor.Sprint(f.Word))
		if len(f.Suggestions) > 0 {
			fmt.Fprintf(w, " (%s)", hintColor.Sprint(strings.Join(f.Suggestions, ", ")))
		}
		fmt.Fprintln(w)
	}
}
