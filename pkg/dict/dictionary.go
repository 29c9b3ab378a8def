package dict

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/sajari/fuzzy"

	"example.com/textspell/pkg/locales"
)

// maxSuggestions bounds the list returned by Suggest.
const maxSuggestions = 8

// Dictionary is an in-memory dictionary with a fuzzy suggestion model, a
// personal word list and a session ignore list. It is safe for concurrent
// use.
type Dictionary struct {
	code string

	mu           sync.Mutex
	words        map[string]struct{}
	session      map[string]struct{}
	replacements map[string][]string
	personalPath string
	model        *fuzzy.Model
}

func newDictionary(code string, words []string, personalPath string) (*Dictionary, error) {
	model := fuzzy.NewModel()
	model.SetDepth(2)     // maximum edit distance
	model.SetThreshold(1) // minimum frequency
	d := &Dictionary{
		code:         code,
		words:        make(map[string]struct{}, len(words)),
		session:      make(map[string]struct{}),
		replacements: make(map[string][]string),
		personalPath: personalPath,
		model:        model,
	}
	for _, w := range words {
		d.learn(w)
	}
	if personalPath != "" {
		personal, err := readPersonal(personalPath)
		if err != nil {
			return nil, err
		}
		for _, w := range personal {
			d.learn(w)
		}
	}
	return d, nil
}

// NewDictionary builds a dictionary from a word list without a personal
// word list.
func NewDictionary(code string, words []string) *Dictionary {
	d, _ := newDictionary(code, words, "")
	return d
}

func readPersonal(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open personal word list: %w", err)
	}
	defer f.Close()
	return readWords(f)
}

// learn adds w to the word set and the suggestion model. Callers hold mu
// or own d exclusively.
func (d *Dictionary) learn(w string) {
	w = normalize(w)
	if w == "" {
		return
	}
	d.words[w] = struct{}{}
	d.model.TrainWord(strings.ToLower(w))
}

// Code returns the language code.
func (d *Dictionary) Code() string { return d.code }

// Check reports whether word is spelled correctly. A lower-case entry also
// accepts its capitalised and upper-case forms.
func (d *Dictionary) Check(word string) bool {
	w := normalize(word)
	if w == "" {
		return true
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.has(w) {
		return true
	}
	lower := strings.ToLower(w)
	if w == capitalize(lower) || w == strings.ToUpper(w) {
		if d.has(lower) {
			return true
		}
		// "Paris" in the list accepts "PARIS".
		if w == strings.ToUpper(w) && d.has(capitalize(lower)) {
			return true
		}
	}
	return false
}

func (d *Dictionary) has(w string) bool {
	if _, ok := d.words[w]; ok {
		return true
	}
	_, ok := d.session[w]
	return ok
}

// Suggest returns corrections for word: stored replacements first, then
// fuzzy matches, with the capitalisation of word applied.
func (d *Dictionary) Suggest(word string) []string {
	w := normalize(word)
	if w == "" {
		return nil
	}
	lower := strings.ToLower(w)
	d.mu.Lock()
	cands := append([]string(nil), d.replacements[lower]...)
	cands = append(cands, d.model.SpellCheckSuggestions(lower, maxSuggestions)...)
	d.mu.Unlock()

	upper := w == strings.ToUpper(w) && utf8.RuneCountInString(w) > 1
	title := !upper && startsUpper(w)
	seen := map[string]bool{}
	var out []string
	for _, c := range cands {
		switch {
		case upper:
			c = strings.ToUpper(c)
		case title:
			c = capitalize(c)
		}
		if c == w || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// Add stores word in the personal word list and persists it.
func (d *Dictionary) Add(word string) error {
	w := normalize(word)
	if w == "" {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.learn(w)
	if d.personalPath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(d.personalPath), 0o755); err != nil {
		return fmt.Errorf("create personal dir: %w", err)
	}
	f, err := os.OpenFile(d.personalPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open personal word list: %w", err)
	}
	bw := bufio.NewWriter(f)
	_, _ = bw.WriteString(w + "\n")
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Ignore accepts word until the dictionary is discarded.
func (d *Dictionary) Ignore(word string) {
	w := normalize(word)
	if w == "" {
		return
	}
	d.mu.Lock()
	d.session[w] = struct{}{}
	d.mu.Unlock()
}

// StoreReplacement remembers that bad was corrected to good.
func (d *Dictionary) StoreReplacement(bad, good string) {
	bad, good = strings.ToLower(normalize(bad)), normalize(good)
	if bad == "" || good == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	list := d.replacements[bad]
	for i, g := range list {
		if strings.EqualFold(g, good) {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	d.replacements[bad] = append([]string{good}, list...)
}

// normalize brings typographic apostrophes and combining sequences to the
// form used in word lists.
func normalize(w string) string {
	w = strings.TrimSpace(w)
	w = strings.ReplaceAll(w, "’", "'")
	return locales.Normalize(w)
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
