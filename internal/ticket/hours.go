package ticket

import (
	"math"
	"strconv"
	"strings"
)

// ParseHours coerces an estimated-hours value that upstream systems
// deliver either as a number or as a numeric string ("3", "2.5").
// Returns false for empty, non-numeric or non-finite input so callers
// can fall through to the next duration source.
func ParseHours(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FiniteHours reports whether v is usable as a duration: finite and
// strictly positive.
func FiniteHours(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
