package keyword

import (
	"bytes"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// cardRE matches a value card: a name of up to eight characters, an equals
// sign, a quoted or bare value, and an optional comment after a slash. It is
// compiled once because it is applied to every card in a header.
var cardRE = regexp.MustCompile(
	`([A-Z0-9_-]{1,8})\s*=\s*(?:('[^']*')|([^/\s]*))\s*(?:/\s*(.*))?`)

// Parse parses a single 80-byte header card into a Keyword. It returns nil
// if the card does not look like a value card at all. A card whose name and
// structure match but whose value cannot be typed produces a Keyword that
// reports false from Valid and carries the raw value bytes.
func Parse(card []byte) *Keyword {
	caps := cardRE.FindSubmatch(card)
	if caps == nil {
		return nil
	}

	name := strings.TrimSpace(string(caps[1]))

	var raw []byte
	switch {
	case caps[2] != nil:
		raw = bytes.TrimRight(caps[2], " \t")
	case caps[3] != nil:
		raw = bytes.TrimRight(caps[3], " \t")
	}

	comment := strings.TrimSpace(decodeText(caps[4]))

	value, err := ParseValue(raw)

	return &Keyword{
		name:    name,
		value:   value,
		comment: comment,
		raw:     append([]byte(nil), raw...),
		valid:   err == nil,
	}
}

// ParseCommentary parses a card as a commentary keyword. It returns nil
// unless the card starts with COMMENT, HISTORY, or a blank name field.
func ParseCommentary(card []byte) *Keyword {
	if len(card) < 8 {
		return nil
	}

	name := strings.TrimRight(string(card[:8]), " ")
	switch name {
	case Comment, History, Blank:
	default:
		return nil
	}

	text := strings.TrimSpace(decodeText(card[8:]))
	if name == Blank && text == "" {
		// an entirely blank card is padding, not commentary
		return nil
	}

	return NewCommentary(name, text)
}

// decodeText converts card text to a string. Headers are meant to be ASCII,
// but comments in archival files sometimes carry Latin-1 bytes, which are
// recovered rather than mangled.
func decodeText(b []byte) string {
	if b == nil {
		return ""
	}
	if utf8.Valid(b) {
		return string(b)
	}

	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
