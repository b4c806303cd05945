package property

import (
	"strconv"
	"time"
)

// Value is a typed property value: a tagged union over bool, float64,
// time.Time, and string. Values are produced by [Format] and rendered back to
// their wire form by [Value.String], which is the exact inverse for every
// declared type.
//
// The zero Value is an empty Text value.
type Value struct {
	kind Type
	b    bool
	num  float64
	ts   time.Time
	text string
}

// TextValue returns a Text-kinded Value. Also used for CategoryText and URI
// values, which share the pass-through representation.
func TextValue(s string) Value { return Value{kind: Text, text: s} }

// NumberValue returns a Number-kinded Value.
func NumberValue(f float64) Value { return Value{kind: Number, num: f} }

// DateValue returns a Date-kinded Value.
func DateValue(ts time.Time) Value { return Value{kind: Date, ts: ts} }

// BoolValue returns a Bool-kinded Value.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// Kind returns the type tag of the value.
func (v Value) Kind() Type { return v.kind }

// Bool returns the boolean payload. Only meaningful for Bool values.
func (v Value) Bool() bool { return v.b }

// Number returns the numeric payload. Only meaningful for Number values.
func (v Value) Number() float64 { return v.num }

// Time returns the timestamp payload. Only meaningful for Date values.
func (v Value) Time() time.Time { return v.ts }

// Text returns the string payload. Only meaningful for Text-kinded values.
func (v Value) Text() string { return v.text }

// String renders the value back to its DyNetML wire form: text passes
// through, dates use DateLayout, bools render lowercase, and numbers use the
// shortest representation that survives a reparse.
func (v Value) String() string {
	switch v.kind {
	case Bool:
		if v.b {
			return "true"
		}
		return "false"
	case Number:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case Date:
		return v.ts.Format(DateLayout)
	default:
		return v.text
	}
}

// Equal reports whether two values are equal under codec equality: same kind
// and same payload, with timestamps compared by instant rather than by
// location pointer.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Bool:
		return a.b == b.b
	case Number:
		return a.num == b.num
	case Date:
		return a.ts.Equal(b.ts)
	default:
		return a.text == b.text
	}
}
