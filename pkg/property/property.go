// Package property implements the DyNetML property type system.
//
// Every attribute and property value in a meta-network document is a string on
// the wire. This package is the single choke point that coerces those strings
// into typed values ([Format]) and back ([Value.String]), so that a model can
// be serialized and reloaded without losing information.
//
// # Types
//
//   - [Type]: the closed property type enum
//   - [Identity]: a declared property (type + single/multi-valued flag)
//   - [Value]: a typed value produced by [Format]
//
// Bool only appears for schema flags such as a network's directedness; it is
// never a declarable node property type (see [ParseDeclaredType]).
package property

import (
	"strconv"

	"github.com/pmlandwehr/dynetml2other/pkg/errors"
)

// Type enumerates the property types of the DyNetML schema.
type Type int

const (
	// Text is the default type; values pass through the codec unchanged.
	Text Type = iota
	// Number values are parsed as float64.
	Number
	// Date values are parsed with the fixed timestamp layout DateLayout.
	Date
	// CategoryText values pass through unchanged, like Text.
	CategoryText
	// URI values pass through unchanged, like Text.
	URI
	// Bool parses case-insensitive "true"/"false". Bool is only used for
	// schema flags and cannot be declared as a node property type.
	Bool
)

var typeNames = map[Type]string{
	Text:         "text",
	Number:       "number",
	Date:         "date",
	CategoryText: "categoryText",
	URI:          "URI",
	Bool:         "bool",
}

var namesToType = map[string]Type{
	"text":         Text,
	"number":       Number,
	"date":         Date,
	"categoryText": CategoryText,
	"URI":          URI,
	"bool":         Bool,
}

// String returns the wire-format name of the type.
func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseType converts a wire-format type name to a Type.
// Returns an INVALID_VALUE error for names outside the enum.
func ParseType(s string) (Type, error) {
	if t, ok := namesToType[s]; ok {
		return t, nil
	}
	return Text, errors.New(errors.ErrCodeInvalidValue, "unknown property type %q", s)
}

// ParseDeclaredType converts a wire-format type name to a Type, restricted to
// the five types a nodeset property may declare. "bool" is rejected along
// with unknown names.
func ParseDeclaredType(s string) (Type, error) {
	t, err := ParseType(s)
	if err != nil {
		return Text, err
	}
	if t == Bool {
		return Text, errors.New(errors.ErrCodeInvalidValue,
			`property type must be "number", "date", "text", "categoryText", or "URI"; got %q`, s)
	}
	return t, nil
}

// Identity is the declared shape of a property: its type and whether it is
// single-valued. A property may only be set on a node once an Identity for
// its name exists on the enclosing nodeset.
type Identity struct {
	Type         Type
	SingleValued bool
}

// Format coerces a raw wire string into a typed Value according to the
// declared type. Bool and Date literals that do not match their fixed formats
// fail with an INVALID_VALUE error, as do non-numeric Number literals.
func Format(raw string, declared Type) (Value, error) {
	switch declared {
	case Bool:
		switch lower(raw) {
		case "true":
			return BoolValue(true), nil
		case "false":
			return BoolValue(false), nil
		}
		return Value{}, errors.New(errors.ErrCodeInvalidValue, "bad bool literal %q", raw)
	case Number:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, errors.Wrap(errors.ErrCodeInvalidValue, err, "bad number literal %q", raw)
		}
		return NumberValue(f), nil
	case Date:
		ts, err := ParseTimestamp(raw)
		if err != nil {
			return Value{}, err
		}
		return DateValue(ts), nil
	default:
		// Text, CategoryText, and URI pass through unchanged.
		return TextValue(raw), nil
	}
}

// lower is a small ASCII-only strings.ToLower; bool literals are ASCII.
func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
