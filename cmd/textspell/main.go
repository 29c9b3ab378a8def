package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// version can be overridden at build time via -ldflags.
var version = "0.1.0-dev"

var rootCmd = &cobra.Command{
	Use:           "textspell",
	Short:         "Spell checking for text, Markdown and Go files",
	Long:          `textspell checks files from the command line, edits them with live spell checking, and serves checks over MCP`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errMisspelled makes check exit with status 1 without printing an error.
var errMisspelled = errors.New("misspelled words found")

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(languagesCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(mcpCmd)

	rootCmd.PersistentFlags().String("config", "", "config file (default ~/.textspell/config.toml)")
	rootCmd.PersistentFlags().StringP("language", "l", "", "dictionary language, overrides the config")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
}

// main runs the root command. Misspellings exit with status 1 and every
// other failure with status 2.
func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errMisspelled) {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		os.Exit(2)
	}
}
