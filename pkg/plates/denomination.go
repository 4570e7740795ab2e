package plates

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
)

// Denomination is the weight of a single plate.
type Denomination float64

// String formats the denomination without trailing zeros ("45", "2.5").
func (d Denomination) String() string {
	return strconv.FormatFloat(float64(d), 'f', -1, 64)
}

// ParseDenomination parses a plate weight such as "45" or "2.5".
// It returns false for non-numeric, non-finite, or non-positive values.
func ParseDenomination(s string) (Denomination, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(v) || v <= 0 {
		return 0, false
	}
	return Denomination(v), true
}

// DefaultPlates is the supported plate set, heaviest first.
var DefaultPlates = []Denomination{45, 35, 25, 10, 5, 2.5}

// Colors is the plate palette. The i-th default plate uses the i-th color.
var Colors = []string{"#60a5fa", "#34d399", "#f59e0b", "#ef4444", "#a78bfa", "#f472b6", "#22d3ee"}

// ColorFor returns the palette color for d. Denominations outside
// DefaultPlates share the first color.
func ColorFor(d Denomination) string {
	idx := slices.Index(DefaultPlates, d)
	if idx < 0 {
		idx = 0
	}
	return Colors[idx%len(Colors)]
}

// IsDefault reports whether d is one of the supported plates.
func IsDefault(d Denomination) bool {
	return slices.Contains(DefaultPlates, d)
}

// sortDescending returns ds sorted heaviest first.
func sortDescending(ds []Denomination) []Denomination {
	slices.SortFunc(ds, func(a, b Denomination) int {
		switch {
		case a > b:
			return -1
		case a < b:
			return 1
		}
		return 0
	})
	return ds
}

// SortAscending returns ds sorted lightest first.
func SortAscending(ds []Denomination) []Denomination {
	slices.Sort(ds)
	return ds
}

// MarshalText encodes d as text so denominations can key JSON objects.
func (d Denomination) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText parses a JSON object key back into a denomination.
func (d *Denomination) UnmarshalText(b []byte) error {
	v, ok := ParseDenomination(string(b))
	if !ok {
		return fmt.Errorf("invalid plate weight %q", b)
	}
	*d = v
	return nil
}

// MarshalJSON keeps denominations numeric when used as values.
func (d Denomination) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted weight.
func (d *Denomination) UnmarshalJSON(b []byte) error {
	return d.UnmarshalText(bytes.Trim(b, `"`))
}
