package keyword

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind enumerates the types a FITS keyword value may have.
type Kind int

const (
	// String is a character value, written in the header surrounded by
	// single quotes.
	String Kind = iota

	// Integer is a 64-bit signed integer value.
	Integer

	// Float is a 64-bit floating point value.
	Float

	// Bool is a logical value, written in the header as T or F.
	Bool

	// Null is an undefined value, written in the header as NULL or as
	// nothing at all.
	Null

	// Invalid marks a value that could not be parsed.
	Invalid
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case Null:
		return "null"
	}
	return "invalid"
}

// Value is the typed value of a header keyword. The zero value is Null.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// Values without per-value state.
var (
	nullValue    = Value{kind: Null}
	invalidValue = Value{kind: Invalid}
)

// StringValue returns a character Value.
func StringValue(s string) Value {
	return Value{kind: String, s: s}
}

// IntegerValue returns an integer Value.
func IntegerValue(i int64) Value {
	return Value{kind: Integer, i: i}
}

// FloatValue returns a floating point Value.
func FloatValue(f float64) Value {
	return Value{kind: Float, f: f}
}

// BoolValue returns a logical Value.
func BoolValue(b bool) Value {
	return Value{kind: Bool, b: b}
}

// NullValue returns the undefined Value.
func NullValue() Value {
	return nullValue
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns true when the value is undefined.
func (v Value) IsNull() bool {
	return v.kind == Null
}

// AsString returns the character value. The second return is false when the
// value is not a character value.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == String
}

// AsInt returns the integer value. The second return is false when the value
// is not an integer.
func (v Value) AsInt() (int64, bool) {
	return v.i, v.kind == Integer
}

// AsFloat returns the value as a float64. Integer values are converted. The
// second return is false for any other kind.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case Float:
		return v.f, true
	case Integer:
		return float64(v.i), true
	}
	return 0, false
}

// AsBool returns the logical value. The second return is false when the
// value is not logical.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == Bool
}

// String renders the value the way it would be reported to a human. Logical
// values render as T or F, undefined values as NULL.
func (v Value) String() string {
	switch v.kind {
	case String:
		return v.s
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'G', -1, 64)
	case Bool:
		if v.b {
			return "T"
		}
		return "F"
	case Null:
		return "NULL"
	}
	return "INVALID"
}

// ParseValue parses the raw value bytes of a header card into a typed Value.
//
// A value surrounded by single quotes is a character value with trailing
// blanks inside the quotes removed. T and F are logical values and NULL is
// the undefined value, all matched without regard to case. Otherwise the
// value is tried as an integer and then as a float. An empty value is
// undefined. Anything else returns the Invalid value along with an error.
func ParseValue(raw []byte) (Value, error) {
	v := strings.TrimSpace(string(raw))

	switch {
	case len(v) >= 2 && strings.HasPrefix(v, "'") && strings.HasSuffix(v, "'"):
		return StringValue(strings.TrimRight(v[1:len(v)-1], " ")), nil
	case strings.EqualFold(v, "T"):
		return BoolValue(true), nil
	case strings.EqualFold(v, "F"):
		return BoolValue(false), nil
	case strings.EqualFold(v, "NULL"), v == "":
		return nullValue, nil
	}

	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return IntegerValue(i), nil
	}

	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return FloatValue(f), nil
	}

	return invalidValue, fmt.Errorf("unrecognized keyword value %q", v)
}
