package spell

import (
	"slices"

	"example.com/textspell/pkg/locales"
)

// Dictionary answers spelling queries for one language.
type Dictionary interface {
	Check(word string) bool
	Suggest(word string) []string
	// Add stores word in the personal word list.
	Add(word string) error
	// Ignore accepts word for the rest of the session.
	Ignore(word string)
	// StoreReplacement records that bad was replaced with good so future
	// suggestions can rank it first.
	StoreReplacement(bad, good string)
}

// Provider lists installed dictionaries and opens them.
type Provider interface {
	Languages() []string
	Request(code string) (Dictionary, error)
}

// Language is an installed dictionary code with its display name.
type Language struct {
	Code string
	Name string
}

// LanguageList is the ordered set of installed languages.
type LanguageList []Language

// NewLanguageList builds the list from the provider's codes.
func NewLanguageList(codes []string) LanguageList {
	out := make(LanguageList, 0, len(codes))
	for _, code := range codes {
		out = append(out, Language{Code: code, Name: locales.CodeToName(code)})
	}
	return out
}

// Exists reports whether code names an installed dictionary.
func (l LanguageList) Exists(code string) bool {
	return slices.ContainsFunc(l, func(x Language) bool { return x.Code == code })
}

// Codes returns the language codes in order.
func (l LanguageList) Codes() []string {
	out := make([]string, len(l))
	for i, x := range l {
		out[i] = x.Code
	}
	return out
}

// Name returns the display name for code, or code itself when unknown.
func (l LanguageList) Name(code string) string {
	for _, x := range l {
		if x.Code == code {
			return x.Name
		}
	}
	return code
}
