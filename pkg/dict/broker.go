// Package dict provides spelling dictionaries for the spell engine: an
// in-process fuzzy dictionary trained from word lists, and a pipe to an
// external ispell-compatible checker (aspell or hunspell).
package dict

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"example.com/textspell/pkg/logs"
	"example.com/textspell/pkg/spell"
)

//go:embed data/en.txt
var embedded embed.FS

// EmbeddedLanguage is always available without any dictionary files.
const EmbeddedLanguage = "en"

// ErrUnknownLanguage is returned by Request for a code with no word list.
var ErrUnknownLanguage = errors.New("dict: unknown language")

// Broker finds word lists and opens dictionaries for them. Dictionaries are
// cached, so requesting a language twice returns the same instance.
type Broker struct {
	dictPath    string
	personalDir string
	log         *logs.Logger

	mu    sync.Mutex
	cache map[string]*Dictionary
}

// Option configures a Broker.
type Option func(*Broker)

// WithDictionaryPath adds a directory searched for <code>.dic (hunspell)
// and <code>.txt (one word per line) files.
func WithDictionaryPath(dir string) Option { return func(b *Broker) { b.dictPath = dir } }

// WithPersonalDir sets where personal word lists are stored.
func WithPersonalDir(dir string) Option { return func(b *Broker) { b.personalDir = dir } }

// WithLogger sets the event logger.
func WithLogger(l *logs.Logger) Option { return func(b *Broker) { b.log = l } }

// NewBroker creates a Broker.
func NewBroker(opts ...Option) *Broker {
	b := &Broker{cache: make(map[string]*Dictionary)}
	for _, o := range opts {
		o(b)
	}
	return b
}

var _ spell.Provider = (*Broker)(nil)

// Languages lists the embedded language and every word list in the
// dictionary path, sorted.
func (b *Broker) Languages() []string {
	seen := map[string]bool{EmbeddedLanguage: true}
	for code := range b.files() {
		seen[code] = true
	}
	out := make([]string, 0, len(seen))
	for code := range seen {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}

// files maps language codes to word list paths in the dictionary path.
func (b *Broker) files() map[string]string {
	out := map[string]string{}
	if b.dictPath == "" {
		return out
	}
	entries, err := os.ReadDir(b.dictPath)
	if err != nil {
		return out
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".dic" && ext != ".txt" {
			continue
		}
		code := strings.TrimSuffix(e.Name(), ext)
		// A hunspell .dic wins over a plain list for the same code.
		if _, ok := out[code]; ok && ext == ".txt" {
			continue
		}
		out[code] = filepath.Join(b.dictPath, e.Name())
	}
	return out
}

// Request implements spell.Provider.
func (b *Broker) Request(code string) (spell.Dictionary, error) {
	d, err := b.Open(code)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Open returns the dictionary for code, loading it on first use.
func (b *Broker) Open(code string) (*Dictionary, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if d, ok := b.cache[code]; ok {
		return d, nil
	}
	words, err := b.load(code)
	if err != nil {
		return nil, err
	}
	personal := ""
	if b.personalDir != "" {
		personal = filepath.Join(b.personalDir, code+".dic")
	}
	d, err := newDictionary(code, words, personal)
	if err != nil {
		return nil, err
	}
	b.log.Event("dict.open", map[string]any{"language": code, "words": len(words), "personal": personal})
	b.cache[code] = d
	return d, nil
}

func (b *Broker) load(code string) ([]string, error) {
	if path, ok := b.files()[code]; ok {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open word list: %w", err)
		}
		defer f.Close()
		if filepath.Ext(path) == ".dic" {
			return readHunspell(f)
		}
		return readWords(f)
	}
	if code == EmbeddedLanguage {
		f, err := embedded.Open("data/en.txt")
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readWords(f)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, code)
}

// readWords reads whitespace separated words.
func readWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		words = append(words, sc.Text())
	}
	return words, sc.Err()
}

// readHunspell reads a hunspell .dic file: an optional count on the first
// line, then one entry per line with affix flags after '/'.
func readHunspell(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if first {
			first = false
			if isCount(line) {
				continue
			}
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.IndexAny(line, "/\t "); i >= 0 {
			line = line[:i]
		}
		if line != "" {
			words = append(words, line)
		}
	}
	return words, sc.Err()
}

func isCount(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
