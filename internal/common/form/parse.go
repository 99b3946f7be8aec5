package form

import (
	"math"
	"strconv"
	"strings"
)

// Parsed is the outcome of reading a number typed into a form. OK is false
// for blank or unreadable input, which lets callers tell "0" from garbage.
type Parsed[T int | float64] struct {
	Value T
	OK    bool
}

// Or returns the parsed value, or def when parsing failed.
func (p Parsed[T]) Or(def T) T {
	if !p.OK {
		return def
	}
	return p.Value
}

// ParseFloat reads a decimal number. Thousands separators are ignored.
func ParseFloat(s string) Parsed[float64] {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return Parsed[float64]{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Parsed[float64]{}
	}
	return Parsed[float64]{Value: v, OK: true}
}

// ParseInt reads a whole number; decimals are truncated toward zero.
func ParseInt(s string) Parsed[int] {
	trimmed := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if v, err := strconv.Atoi(trimmed); err == nil {
		return Parsed[int]{Value: v, OK: true}
	}
	f := ParseFloat(trimmed)
	if !f.OK || math.Abs(f.Value) > math.MaxInt32 {
		return Parsed[int]{}
	}
	return Parsed[int]{Value: int(f.Value), OK: true}
}
