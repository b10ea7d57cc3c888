package cell

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Value holds
type Kind int

const (
	// KindAbsent means the column does not exist in the row
	KindAbsent Kind = iota
	// KindNoValue is a present but empty cell
	KindNoValue
	// KindString is a text cell
	KindString
	// KindNumber is a numeric cell
	KindNumber
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindNoValue:
		return "no-value"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	default:
		return "unknown"
	}
}

// Value is a single raw table cell
type Value struct {
	kind     Kind
	text     string
	num      float64
	i        int64
	integral bool
}

// Absent returns the value of a column that is not in the row
func Absent() Value { return Value{kind: KindAbsent} }

// NoValue returns the missing-data marker
func NoValue() Value { return Value{kind: KindNoValue} }

// Text returns a string cell
func Text(s string) Value { return Value{kind: KindString, text: s} }

// Int returns a number cell read from an integer column
func Int(n int64) Value { return Value{kind: KindNumber, i: n, integral: true} }

// Float returns a number cell read from a floating point column
func Float(f float64) Value { return Value{kind: KindNumber, num: f} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

func (v Value) IsString() bool { return v.kind == KindString }

func (v Value) IsNumber() bool { return v.kind == KindNumber }

// IsNoValue reports whether the cell carries no data. A missing column
// counts as no data too.
func (v Value) IsNoValue() bool { return v.kind == KindNoValue || v.kind == KindAbsent }

// Str returns the text of a string cell
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.text, true
}

// Number returns the numeric payload of a number cell
func (v Value) Number() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	if v.integral {
		return float64(v.i), true
	}
	return v.num, true
}

// Integer returns the payload of a cell read from an integer column
func (v Value) Integer() (int64, bool) {
	if v.kind != KindNumber || !v.integral {
		return 0, false
	}
	return v.i, true
}

// String renders the cell the way the table holds it: integers without a
// fraction, floats in shortest form with a trailing ".0" when integral.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.text
	case KindNumber:
		if v.integral {
			return strconv.FormatInt(v.i, 10)
		}
		return formatFloat(v.num)
	case KindNoValue:
		return "nan"
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}
