// Package locales turns dictionary codes such as "en_US" into display
// names and normalises words before they reach a dictionary.
package locales

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/unicode/norm"
)

// CodeToName returns a human readable name for a dictionary code, for
// example "English (United States)" for "en_US". Unknown codes are returned
// unchanged.
func CodeToName(code string) string {
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return code
	}
	base, conf := tag.Base()
	if conf == language.No {
		return code
	}
	name := display.English.Languages().Name(base)
	if name == "" {
		return code
	}
	if region, conf := tag.Region(); conf == language.Exact {
		if r := display.English.Regions().Name(region); r != "" {
			name += " (" + r + ")"
		}
	}
	return name
}

// Normalize returns word in NFC form so precomposed and decomposed input
// compare equal.
func Normalize(word string) string {
	return norm.NFC.String(word)
}
