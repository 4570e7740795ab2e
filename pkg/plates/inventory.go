package plates

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Inventory maps each denomination to the number of pairs available.
// A pair is two plates, one per side.
type Inventory map[Denomination]int

// Pairs returns the usable pair count for d. Negative counts read as zero.
func (inv Inventory) Pairs(d Denomination) int {
	return max(0, inv[d])
}

// Denominations returns the denominations in inv, heaviest first.
func (inv Inventory) Denominations() []Denomination {
	return sortDescending(slices.Collect(maps.Keys(inv)))
}

// Clone returns a copy of inv.
func (inv Inventory) Clone() Inventory {
	return maps.Clone(inv)
}

// String formats inv as "45=4,35=3,..." heaviest first, the same syntax
// accepted by [ParseInventory].
func (inv Inventory) String() string {
	parts := make([]string, 0, len(inv))
	for _, d := range inv.Denominations() {
		parts = append(parts, fmt.Sprintf("%s=%d", d, inv[d]))
	}
	return strings.Join(parts, ",")
}

// FullStock returns n pairs of every default plate.
func FullStock(n int) Inventory {
	inv := make(Inventory, len(DefaultPlates))
	for _, d := range DefaultPlates {
		inv[d] = n
	}
	return inv
}

// EmptyStock returns zero pairs of every default plate.
func EmptyStock() Inventory {
	return FullStock(0)
}

// QuickStock returns the default quick-stock preset: more pairs of the
// heavier plates (45:4, 35:3, then 2 of everything lighter).
func QuickStock() Inventory {
	inv := make(Inventory, len(DefaultPlates))
	for i, d := range DefaultPlates {
		inv[d] = 4 - min(i, 2)
	}
	return inv
}

// ParseInventory parses "45=4,25=2,2.5=1". Whitespace around entries is
// ignored. Counts are coerced with ParseNonNegInt, so "abc" or "-3" become 0.
func ParseInventory(s string) (Inventory, error) {
	inv := make(Inventory)
	for entry := range strings.SplitSeq(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		key, val, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid plate entry %q (want weight=pairs)", entry)
		}
		d, ok := ParseDenomination(strings.TrimSpace(key))
		if !ok {
			return nil, fmt.Errorf("invalid plate weight %q", key)
		}
		inv[d] = ParseNonNegInt(val, 0)
	}
	return inv, nil
}

// FromStrings converts raw per-plate text (as typed into a form) into an
// inventory over DefaultPlates. Missing or malformed counts become zero.
func FromStrings(raw map[string]string) Inventory {
	inv := make(Inventory, len(DefaultPlates))
	for _, d := range DefaultPlates {
		inv[d] = ParseNonNegInt(raw[d.String()], 0)
	}
	return inv
}

// Unsupported returns the denominations outside [DefaultPlates] that hold
// at least one pair, heaviest first. [Inventory.ToStrings] drops them.
func (inv Inventory) Unsupported() []Denomination {
	var out []Denomination
	for _, d := range inv.Denominations() {
		if !IsDefault(d) && inv.Pairs(d) > 0 {
			out = append(out, d)
		}
	}
	return out
}

// ToStrings is the inverse of FromStrings for DefaultPlates.
func (inv Inventory) ToStrings() map[string]string {
	out := make(map[string]string, len(DefaultPlates))
	for _, d := range DefaultPlates {
		out[d.String()] = fmt.Sprint(inv.Pairs(d))
	}
	return out
}
