package cell

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeInt coerces a cell to an integer. Anything that is not a base-10
// integer string or a finite number yields 0.
func NormalizeInt(v Value) int {
	switch v.kind {
	case KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.text), 10, 64)
		if err != nil {
			return 0
		}
		return int(n)
	case KindNumber:
		if v.integral {
			return int(v.i)
		}
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return 0
		}
		t := math.Trunc(v.num)
		if t < math.MinInt64 || t >= math.MaxInt64 {
			return 0
		}
		return int(t)
	default:
		return 0
	}
}

// NormalizeString returns the cell text for string cells and "" otherwise.
// Numbers are not stringified.
func NormalizeString(v Value) string {
	s, _ := v.Str()
	return s
}

// NormalizeTags splits a string cell on commas. Segments are kept verbatim,
// including empty ones.
func NormalizeTags(v Value) []string {
	s, ok := v.Str()
	if !ok {
		return []string{}
	}
	return strings.Split(s, ",")
}
