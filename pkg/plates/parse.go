package plates

import (
	"math"
	"strconv"
	"strings"
)

// RoundTo rounds value to the nearest multiple of step. Halfway cases round
// away from zero, so RoundTo(0.25, 0.5) == 0.5 and RoundTo(-0.25, 0.5) == -0.5.
func RoundTo(value, step float64) float64 {
	inv := 1 / step
	return math.Round(value*inv) / inv
}

// ParseNonNegFloat parses s as a finite, non-negative number. Empty, malformed,
// negative, or non-finite input yields fallback.
func ParseNonNegFloat(s string, fallback float64) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !isFinite(n) || n < 0 {
		return fallback
	}
	return n
}

// ParseNonNegInt parses s as a number and floors it. Empty, malformed,
// negative, or non-finite input yields fallback.
func ParseNonNegInt(s string, fallback int) int {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	n = math.Floor(n)
	if !isFinite(n) || n < 0 || n > math.MaxInt32 {
		return fallback
	}
	return int(n)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
