package spell

import "errors"

var (
	// ErrNoDictionaries is returned by New when the provider has no
	// installed languages.
	ErrNoDictionaries = errors.New("spell: no dictionaries installed")
	// ErrFilterNotFound is returned when removing a pattern that is not set.
	ErrFilterNotFound = errors.New("spell: filter not found")
	// ErrUnknownFilterKind is returned for a kind other than word, line or text.
	ErrUnknownFilterKind = errors.New("spell: unknown filter kind")
	// ErrNilTag is returned when a nil tag is added to the ignore set.
	ErrNilTag = errors.New("spell: nil tag")
	// ErrUnknownTag is returned when a tag name is not in the tag table.
	ErrUnknownTag = errors.New("spell: unknown tag")
	// ErrTagNotIgnored is returned when removing a tag that is not ignored.
	ErrTagNotIgnored = errors.New("spell: tag not ignored")
	// ErrUnknownAnchor is returned by MoveAnchor for an unknown name.
	ErrUnknownAnchor = errors.New("spell: unknown anchor")
	// ErrNoWordAtClick is returned by ReplaceWord when the click anchor is
	// not inside a word.
	ErrNoWordAtClick = errors.New("spell: no word at click position")
	// ErrDetached is returned by operations that need a buffer after Close.
	ErrDetached = errors.New("spell: checker is not attached to a buffer")
)
