package main

import (
	"github.com/spf13/cobra"

	"example.com/textspell/pkg/mcptool"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve spell checking tools over MCP on stdio",
	Args:  cobra.NoArgs,
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	tools := &mcptool.Tools{
		Provider:  s.provider,
		Languages: s.languages,
		Options:   s.spellOptions(),
		Logger:    s.log,
	}
	s.log.Event("mcp.start", map[string]any{"version": version})
	return mcptool.ServeStdio(mcptool.NewServer(tools, version))
}
