// Package config loads the textspell settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"example.com/textspell/pkg/spell"
)

// Backend names accepted in the config file.
const (
	BackendFuzzy    = "fuzzy"
	BackendAspell   = "aspell"
	BackendHunspell = "hunspell"
)

// ErrUnknownBackend is returned for a backend outside fuzzy, aspell and hunspell.
var ErrUnknownBackend = errors.New("unknown dictionary backend")

// Keybinding represents a single key combination.
type Keybinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// Filters holds extra no-check patterns by kind.
type Filters struct {
	Word []string `toml:"word"`
	Line []string `toml:"line"`
	Text []string `toml:"text"`
}

// Config holds user configuration values.
type Config struct {
	Language       string
	Prefix         string
	Enabled        bool
	Backend        string
	DictionaryPath string
	PersonalDir    string
	// LanguagesFile adds file-type entries for code taggers.
	LanguagesFile string
	Theme         string
	// Misspelled overrides the theme's underline color unless ColorDefault.
	Misspelled tcell.Color
	Filters    Filters
	Keymap     map[string]Keybinding
}

// file mirrors the on-disk layout. Pointers tell absent keys from zero values.
type file struct {
	Language       *string           `toml:"language"`
	Prefix         *string           `toml:"prefix"`
	Enabled        *bool             `toml:"enabled"`
	Backend        *string           `toml:"backend"`
	DictionaryPath *string           `toml:"dictionary_path"`
	PersonalDir    *string           `toml:"personal_dir"`
	LanguagesFile  *string           `toml:"languages_file"`
	Theme          *string           `toml:"theme"`
	Misspelled     *string           `toml:"misspelled_color"`
	Filters        Filters           `toml:"filters"`
	Keymap         map[string]string `toml:"keymap"`
}

// Default returns a Config with default settings and key mappings.
func Default() *Config {
	return &Config{
		Language:   spell.DefaultLanguage,
		Prefix:     spell.DefaultPrefix,
		Enabled:    true,
		Backend:    BackendFuzzy,
		Theme:      "default",
		Misspelled: tcell.ColorDefault,
		Keymap:     DefaultKeymap(),
	}
}

// DefaultKeymap provides builtin command bindings.
func DefaultKeymap() map[string]Keybinding {
	return map[string]Keybinding{
		"quit":     mustParse("Ctrl+Q"),
		"save":     mustParse("Ctrl+S"),
		"search":   mustParse("Ctrl+W"),
		"menu":     mustParse("Ctrl+T"),
		"add":      mustParse("Ctrl+A"),
		"ignore":   mustParse("Ctrl+G"),
		"language": mustParse("Ctrl+L"),
		"toggle":   mustParse("Ctrl+E"),
		"undo":     mustParse("Ctrl+Z"),
		"redo":     mustParse("Ctrl+Y"),
	}
}

// Load loads configuration from the provided path. If the file does not
// exist, defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return Parse(string(data))
}

// Parse decodes TOML text on top of the defaults.
func Parse(data string) (*Config, error) {
	var raw file
	md, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}
	cfg := Default()
	if raw.Language != nil {
		cfg.Language = *raw.Language
	}
	if raw.Prefix != nil {
		cfg.Prefix = *raw.Prefix
	}
	if raw.Enabled != nil {
		cfg.Enabled = *raw.Enabled
	}
	if raw.Backend != nil {
		b := strings.ToLower(strings.TrimSpace(*raw.Backend))
		switch b {
		case BackendFuzzy, BackendAspell, BackendHunspell:
			cfg.Backend = b
		default:
			return nil, fmt.Errorf("config: %w: %s", ErrUnknownBackend, *raw.Backend)
		}
	}
	if raw.DictionaryPath != nil {
		cfg.DictionaryPath = expandHome(*raw.DictionaryPath)
	}
	if raw.PersonalDir != nil {
		cfg.PersonalDir = expandHome(*raw.PersonalDir)
	}
	if raw.LanguagesFile != nil {
		cfg.LanguagesFile = expandHome(*raw.LanguagesFile)
	}
	if raw.Theme != nil {
		if _, ok := BuiltinThemes[*raw.Theme]; !ok {
			return nil, fmt.Errorf("config: unknown theme %q", *raw.Theme)
		}
		cfg.Theme = *raw.Theme
	}
	if raw.Misspelled != nil {
		cfg.Misspelled = ParseColor(*raw.Misspelled, cfg.Misspelled)
	}
	cfg.Filters = raw.Filters
	for cmd, binding := range raw.Keymap {
		kb, err := ParseKeybinding(binding)
		if err != nil {
			return nil, fmt.Errorf("config: keymap %s: %w", cmd, err)
		}
		cfg.Keymap[cmd] = kb
	}
	return cfg, nil
}

// Path returns ~/.textspell/config.toml.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".textspell", "config.toml"), nil
}

// LoadDefault attempts to read ~/.textspell/config.toml.
func LoadDefault() (*Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return Load(path)
}

// SpellFilters converts the configured patterns for spell.WithFilters.
func (c *Config) SpellFilters() map[spell.FilterKind][]string {
	out := map[spell.FilterKind][]string{}
	add := func(kind spell.FilterKind, pats []string) {
		if len(pats) > 0 {
			out[kind] = append([]string(nil), pats...)
		}
	}
	add(spell.FilterWord, c.Filters.Word)
	add(spell.FilterLine, c.Filters.Line)
	add(spell.FilterText, c.Filters.Text)
	return out
}

// Commands lists the keymap entries in name order.
func (c *Config) Commands() []string {
	names := make([]string, 0, len(c.Keymap))
	for name := range c.Keymap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// ParseKeybinding converts a textual key description like "Ctrl+S" into a
// Keybinding. Currently only Ctrl+<letter> is supported.
func ParseKeybinding(s string) (Keybinding, error) {
	parts := strings.Split(s, "+")
	if len(parts) != 2 {
		return Keybinding{}, errors.New("invalid keybinding: " + s)
	}
	if !strings.EqualFold(parts[0], "ctrl") {
		return Keybinding{}, errors.New("invalid modifier in keybinding: " + s)
	}
	r := []rune(strings.ToLower(parts[1]))
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return Keybinding{}, errors.New("invalid key in keybinding: " + s)
	}
	return Keybinding{Key: tcell.KeyRune, Rune: r[0], Mod: tcell.ModCtrl}, nil
}

func mustParse(s string) Keybinding {
	kb, _ := ParseKeybinding(s)
	return kb
}

// String renders the binding the way ParseKeybinding reads it.
func (k Keybinding) String() string {
	if k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl {
		return "Ctrl+" + strings.ToUpper(string(k.Rune))
	}
	return tcell.NewEventKey(k.Key, k.Rune, k.Mod).Name()
}

var ctrlMap = map[rune]tcell.Key{
	'a': tcell.KeyCtrlA,
	'b': tcell.KeyCtrlB,
	'c': tcell.KeyCtrlC,
	'd': tcell.KeyCtrlD,
	'e': tcell.KeyCtrlE,
	'f': tcell.KeyCtrlF,
	'g': tcell.KeyCtrlG,
	'h': tcell.KeyCtrlH,
	'i': tcell.KeyCtrlI,
	'j': tcell.KeyCtrlJ,
	'k': tcell.KeyCtrlK,
	'l': tcell.KeyCtrlL,
	'm': tcell.KeyCtrlM,
	'n': tcell.KeyCtrlN,
	'o': tcell.KeyCtrlO,
	'p': tcell.KeyCtrlP,
	'q': tcell.KeyCtrlQ,
	'r': tcell.KeyCtrlR,
	's': tcell.KeyCtrlS,
	't': tcell.KeyCtrlT,
	'u': tcell.KeyCtrlU,
	'v': tcell.KeyCtrlV,
	'w': tcell.KeyCtrlW,
	'x': tcell.KeyCtrlX,
	'y': tcell.KeyCtrlY,
	'z': tcell.KeyCtrlZ,
}

// Matches returns true if the binding matches the provided event.
func (k Keybinding) Matches(ev *tcell.EventKey) bool {
	if k.Key == ev.Key() && k.Rune == ev.Rune() && k.Mod == ev.Modifiers() {
		return true
	}
	if k.Key == tcell.KeyRune && k.Mod == tcell.ModCtrl {
		if ctrlKey, ok := ctrlMap[k.Rune]; ok && ev.Key() == ctrlKey {
			return true
		}
	}
	return false
}
