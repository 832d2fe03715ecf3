// Package keyword provides the individual records that make up a FITS
// header. Each record occupies one 80-byte card in the file and carries a
// name, a typed value, and an optional comment.
package keyword

import (
	"fmt"
)

// Names of the commentary keywords, which carry text rather than a value.
const (
	Comment = "COMMENT"
	History = "HISTORY"
	Blank   = ""
)

// Keyword is a single header record. It keeps hold of the raw value bytes it
// was parsed from so the original can be recovered even when the value did
// not parse cleanly.
type Keyword struct {
	name       string
	value      Value
	comment    string
	raw        []byte
	valid      bool
	commentary bool
}

// New constructs a keyword with the given name and value and no comment.
func New(name string, value Value) *Keyword {
	return &Keyword{
		name:  name,
		value: value,
		valid: value.Kind() != Invalid,
	}
}

// NewCommentary constructs a commentary keyword (COMMENT, HISTORY, or the
// blank keyword) holding the given text.
func NewCommentary(name, text string) *Keyword {
	return &Keyword{
		name:       name,
		value:      nullValue,
		comment:    text,
		valid:      true,
		commentary: true,
	}
}

// Name returns the name of the keyword.
func (k *Keyword) Name() string {
	return k.name
}

// SetName updates the name of the keyword.
func (k *Keyword) SetName(name string) {
	k.name = name
}

// Value returns the typed value of the keyword.
func (k *Keyword) Value() Value {
	return k.value
}

// SetValue updates the value of the keyword. The raw bytes held from parsing
// are discarded since they no longer describe the value.
func (k *Keyword) SetValue(value Value) {
	k.value = value
	k.valid = value.Kind() != Invalid
	k.raw = nil
}

// Comment returns the comment attached to the keyword. For commentary
// keywords this is the card text. An absent comment is the empty string.
func (k *Keyword) Comment() string {
	return k.comment
}

// SetComment updates the comment attached to the keyword.
func (k *Keyword) SetComment(comment string) {
	k.comment = comment
}

// Raw returns the raw value bytes the keyword was parsed from, or nil for a
// keyword constructed in code.
func (k *Keyword) Raw() []byte {
	return k.raw
}

// Valid returns false when the value bytes could not be parsed into any of
// the FITS value types. The Value of such a keyword has kind Invalid and the
// original bytes remain available from Raw.
func (k *Keyword) Valid() bool {
	return k.valid
}

// Commentary returns true for COMMENT, HISTORY, and blank keywords.
func (k *Keyword) Commentary() bool {
	return k.commentary
}

// String returns the keyword in the human-oriented NAME = VALUE / COMMENT
// form.
func (k *Keyword) String() string {
	if k.commentary {
		return fmt.Sprintf("%s %s", k.name, k.comment)
	}
	if k.comment != "" {
		return fmt.Sprintf("%s = %s / %s", k.name, k.value, k.comment)
	}
	return fmt.Sprintf("%s = %s", k.name, k.value)
}
