// Package mcptool exposes spell checking as Model Context Protocol tools.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"example.com/textspell/pkg/dict"
	"example.com/textspell/pkg/editor"
	"example.com/textspell/pkg/logs"
	"example.com/textspell/pkg/plugins"
	"example.com/textspell/pkg/spell"
)

// defaultSuggestions is used when a request does not set max_suggestions.
const defaultSuggestions = 5

// Tools serves spell-checking requests against one dictionary provider.
type Tools struct {
	Provider  spell.Provider
	Languages *plugins.LanguageConfig
	Options   []spell.Option
	Logger    *logs.Logger
}

// CheckResult is the JSON body returned by check_spelling.
type CheckResult struct {
	Language   string           `json:"language"`
	Misspelled int              `json:"misspelled"`
	Findings   []editor.Finding `json:"findings"`
}

// LanguageInfo is one entry returned by list_languages.
type LanguageInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewServer creates an MCP server with every tool registered.
func NewServer(t *Tools, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"textspell",
		version,
		server.WithToolCapabilities(true),
		server.WithInstructions("Spell checking for prose, Markdown and Go source."),
	)
	t.Register(s)
	return s
}

// Register adds the check_spelling, suggest_spelling and list_languages
// tools to s.
func (t *Tools) Register(s *server.MCPServer) {
	check := mcp.NewTool("check_spelling",
		mcp.WithDescription("Checks the spelling of a text and returns the misspelled words with their positions and suggestions. Code in Markdown and Go sources is skipped when file_name is given."),
		mcp.WithString("text",
			mcp.Description("The text to check"),
			mcp.Required(),
		),
		mcp.WithString("language",
			mcp.Description("Dictionary code such as en or de_DE (default: en)"),
		),
		mcp.WithString("file_name",
			mcp.Description("File name used to detect code regions, e.g. README.md"),
		),
		mcp.WithNumber("max_suggestions",
			mcp.Description("Suggestions per misspelled word (default: 5, 0 disables)"),
		),
	)
	s.AddTool(check, t.HandleCheck)

	suggest := mcp.NewTool("suggest_spelling",
		mcp.WithDescription("Returns spelling suggestions for one word."),
		mcp.WithString("word",
			mcp.Description("The word to look up"),
			mcp.Required(),
		),
		mcp.WithString("language",
			mcp.Description("Dictionary code (default: en)"),
		),
	)
	s.AddTool(suggest, t.HandleSuggest)

	langs := mcp.NewTool("list_languages",
		mcp.WithDescription("Lists the installed dictionaries."),
	)
	s.AddTool(langs, t.HandleLanguages)
}

// HandleCheck is the handler for check_spelling.
func (t *Tools) HandleCheck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments
	text, ok := arguments["text"].(string)
	if !ok {
		return nil, fmt.Errorf("text must be a string")
	}
	language, _ := arguments["language"].(string)
	fileName, _ := arguments["file_name"].(string)
	limit := defaultSuggestions
	if v, ok := arguments["max_suggestions"].(float64); ok {
		limit = int(v)
	}
	if limit < 0 {
		limit = 0
	}

	start := time.Now()
	ed := editor.New(t.Provider, t.Languages, t.options(language)...)
	defer ed.Close()
	doc, err := ed.Open(fileName, strings.ReplaceAll(text, "\r\n", "\n"))
	if err != nil {
		return errorResult(err), nil
	}
	if language != "" && doc.Spell.Language() != language {
		return errorResult(fmt.Errorf("%w: %s", dict.ErrUnknownLanguage, language)), nil
	}
	res := CheckResult{
		Language: doc.Spell.Language(),
		Findings: doc.Findings(limit),
	}
	res.Misspelled = len(res.Findings)
	if res.Findings == nil {
		res.Findings = []editor.Finding{}
	}
	t.Logger.Since("mcp.check", start, map[string]any{"language": res.Language, "runes": doc.Buf.Len(), "misspelled": res.Misspelled})
	return jsonResult(res)
}

// HandleSuggest is the handler for suggest_spelling.
func (t *Tools) HandleSuggest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	arguments := request.Params.Arguments
	word, ok := arguments["word"].(string)
	if !ok || strings.TrimSpace(word) == "" {
		return nil, fmt.Errorf("word must be a non-empty string")
	}
	language, _ := arguments["language"].(string)
	if language == "" {
		language = spell.DefaultLanguage
	}
	d, err := t.Provider.Request(language)
	if err != nil {
		return errorResult(err), nil
	}
	suggestions := d.Suggest(word)
	if suggestions == nil {
		suggestions = []string{}
	}
	return jsonResult(map[string]any{
		"word":        word,
		"correct":     d.Check(word),
		"suggestions": suggestions,
	})
}

// HandleLanguages is the handler for list_languages.
func (t *Tools) HandleLanguages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := spell.NewLanguageList(t.Provider.Languages())
	out := make([]LanguageInfo, 0, len(list))
	for _, l := range list {
		out = append(out, LanguageInfo{Code: l.Code, Name: l.Name})
	}
	return jsonResult(out)
}

func (t *Tools) options(language string) []spell.Option {
	opts := append([]spell.Option(nil), t.Options...)
	opts = append(opts, spell.WithLogger(t.Logger))
	if language != "" {
		opts = append(opts, spell.WithLanguage(language))
	}
	return opts
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: string(data),
			},
		},
	}, nil
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{
				Type: "text",
				Text: err.Error(),
			},
		},
		IsError: true,
	}
}

// ServeStdio runs the server over standard input and output until the
// client disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
