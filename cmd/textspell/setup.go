package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"example.com/textspell/pkg/config"
	"example.com/textspell/pkg/dict"
	"example.com/textspell/pkg/logs"
	"example.com/textspell/pkg/plugins"
	"example.com/textspell/pkg/spell"
)

// session is what every subcommand needs: configuration, logger and an
// open dictionary provider.
type session struct {
	cfg       *config.Config
	log       *logs.Logger
	provider  spell.Provider
	languages *plugins.LanguageConfig
	closers   []func()
}

func (s *session) Close() {
	for _, f := range s.closers {
		f()
	}
	s.log.Close()
}

// newSession loads the configuration named by the persistent flags and
// opens the configured dictionary backend.
func newSession(cmd *cobra.Command) (*session, error) {
	flags := cmd.Root().PersistentFlags()
	path, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg *config.Config
	if path == "" {
		cfg, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, err
	}
	if lang, _ := flags.GetString("language"); lang != "" {
		cfg.Language = lang
	}
	colorFlag, _ := flags.GetString("color")
	switch colorFlag {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
	default:
		return nil, fmt.Errorf("unknown color mode: %s", colorFlag)
	}

	s := &session{cfg: cfg, log: logs.NewFromEnv(), languages: plugins.DefaultLanguageConfig()}
	if cfg.LanguagesFile != "" {
		if s.languages, err = plugins.LoadLanguageConfig(cfg.LanguagesFile); err != nil {
			return nil, err
		}
	}
	switch cfg.Backend {
	case config.BackendAspell, config.BackendHunspell:
		b := dict.NewPipeBroker(cfg.Backend, dict.WithPipeLogger(s.log))
		s.provider = b
		s.closers = append(s.closers, b.Close)
	default:
		if cfg.PersonalDir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				cfg.PersonalDir = filepath.Join(home, ".textspell")
			}
		}
		s.provider = dict.NewBroker(
			dict.WithDictionaryPath(cfg.DictionaryPath),
			dict.WithPersonalDir(cfg.PersonalDir),
			dict.WithLogger(s.log),
		)
	}
	s.log.Event("session.start", map[string]any{"command": cmd.Name(), "backend": cfg.Backend, "language": cfg.Language})
	return s, nil
}

// spellOptions builds checker options from the configuration.
func (s *session) spellOptions() []spell.Option {
	return []spell.Option{
		spell.WithLanguage(s.cfg.Language),
		spell.WithPrefix(s.cfg.Prefix),
		spell.WithLogger(s.log),
		spell.WithFilters(s.cfg.SpellFilters()),
	}
}

// requireLanguage fails when the configured language is not installed
// instead of silently checking against the fallback.
func (s *session) requireLanguage() error {
	list := spell.NewLanguageList(s.provider.Languages())
	if !list.Exists(s.cfg.Language) {
		return fmt.Errorf("%w: %s (installed: %v)", dict.ErrUnknownLanguage, s.cfg.Language, list.Codes())
	}
	return nil
}
