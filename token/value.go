package token

import (
	"math"
	"strconv"
	"strings"
)

// ValueType is the type tag of a Value.
type ValueType int

//go:generate go tool stringer -linecomment -type=ValueType
const (
	VALUE_NUMBER = ValueType(0) // number
	VALUE_STRING = ValueType(1) // string
)

// Value is a number or a string. The zero Value is the number 0.
type Value struct {
	Type ValueType
	Num  float64
	Str  string
}

// Number creates a numeric value.
func Number(value float64) Value {
	return Value{Type: VALUE_NUMBER, Num: value}
}

// String creates a string value.
func String(value string) Value {
	return Value{Type: VALUE_STRING, Str: value}
}

// IsNumber returns true for numeric values.
func (v Value) IsNumber() bool {
	return v.Type == VALUE_NUMBER
}

// IsString returns true for string values.
func (v Value) IsString() bool {
	return v.Type == VALUE_STRING
}

// Equal compares two values by type and content.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	if v.Type == VALUE_STRING {
		return v.Str == other.Str
	}
	return v.Num == other.Num
}

// String returns the text written by stdout for the value.
func (v Value) String() string {
	if v.Type == VALUE_STRING {
		return v.Str
	}

	return FormatNumber(v.Num)
}

// Repr returns the value as shown in a state dump. Strings are quoted.
func (v Value) Repr() string {
	if v.Type == VALUE_STRING {
		return "'" + strings.ReplaceAll(v.Str, "'", "\\'") + "'"
	}

	return FormatNumber(v.Num)
}

// FormatNumber renders a number in its shortest round-trip form. Integral
// values keep a trailing ".0", and scientific notation is only used for
// exponents below -4 or from 16 up.
func FormatNumber(value float64) string {
	switch {
	case math.IsNaN(value):
		return "nan"
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	}

	text := strconv.FormatFloat(value, 'e', -1, 64)
	exp, _ := strconv.Atoi(text[strings.IndexByte(text, 'e')+1:])
	if exp >= -4 && exp < 16 {
		text = strconv.FormatFloat(value, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
	}

	return text
}
