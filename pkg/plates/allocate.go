package plates

import (
	"fmt"
	"math"
	"strings"
)

const (
	// roundStep is the granularity the remainder is snapped to after each subtraction.
	roundStep = 0.5

	// tolerance is the largest |remainder| still counted as an exact match.
	tolerance = 1e-9
)

// Step records how the greedy walk treated one denomination.
type Step struct {
	Denomination Denomination `json:"denomination"`
	Available    int          `json:"available"` // pairs in inventory (negatives clamped)
	Needed       int          `json:"needed"`    // floor(remaining / denomination) before the step
	Taken        int          `json:"taken"`
	Remaining    float64      `json:"remaining"` // per-side weight left after the step
}

// Layout is the outcome of [ComputeLayout]. It is created fresh on every call
// and must not be modified.
type Layout struct {
	// OK is true when the plates match the target exactly.
	OK bool `json:"ok"`

	// PerSide holds the number of plates of each denomination on one side.
	// Only denominations with a positive count are present.
	PerSide map[Denomination]int `json:"per_side"`

	// Remainder is the per-side weight left unmatched. It is negative when
	// the bar alone is heavier than the target.
	Remainder float64 `json:"remainder"`

	// Steps lists every denomination the walk considered, heaviest first.
	Steps []Step `json:"steps,omitempty"`
}

// ComputeLayout picks plates for one side of the bar, heaviest first.
//
// The per-side need is (target - bar) / 2. Each denomination in inv, in
// strictly descending order, contributes min(pairs, floor(remaining/d))
// plates; the remainder is then snapped to the nearest 0.5 with [RoundTo].
// The result is OK when the final remainder is within 1e-9 of zero.
//
// ComputeLayout never fails and never mutates inv. Denominations with zero or
// negative counts are skipped.
func ComputeLayout(target, bar float64, inv Inventory) Layout {
	needPerSide := (target - bar) / 2
	if needPerSide < 0 || !isFinite(needPerSide) {
		return Layout{PerSide: map[Denomination]int{}, Remainder: needPerSide}
	}

	remaining := needPerSide
	perSide := make(map[Denomination]int)
	var steps []Step

	for _, d := range inv.Denominations() {
		have := inv.Pairs(d)
		if have == 0 || d <= 0 {
			continue
		}
		needed := math.Floor(remaining / float64(d))
		take := int(math.Min(float64(have), needed))
		step := Step{Denomination: d, Available: have, Needed: int(math.Min(math.Max(needed, 0), math.MaxInt32))}
		if take > 0 {
			perSide[d] = take
			remaining = RoundTo(remaining-float64(take)*float64(d), roundStep)
			step.Taken = take
		}
		step.Remaining = remaining
		steps = append(steps, step)
	}

	return Layout{
		OK:        math.Abs(remaining) < tolerance,
		PerSide:   perSide,
		Remainder: remaining,
		Steps:     steps,
	}
}

// Count returns the number of d plates on one side.
func (l Layout) Count(d Denomination) int {
	return l.PerSide[d]
}

// Denominations returns the denominations in use, heaviest first.
func (l Layout) Denominations() []Denomination {
	ds := make([]Denomination, 0, len(l.PerSide))
	for d := range l.PerSide {
		ds = append(ds, d)
	}
	return sortDescending(ds)
}

// PerSideWeight is the total plate weight on one side.
func (l Layout) PerSideWeight() float64 {
	var sum float64
	for d, n := range l.PerSide {
		sum += float64(d) * float64(n)
	}
	return sum
}

// TotalPlates counts plates on both sides.
func (l Layout) TotalPlates() int {
	n := 0
	for _, c := range l.PerSide {
		n += c * 2
	}
	return n
}

// Loaded returns the per-side mapping when the layout matched and an empty
// mapping otherwise. Renderers draw an unloaded bar for infeasible layouts.
func (l Layout) Loaded() map[Denomination]int {
	if !l.OK {
		return map[Denomination]int{}
	}
	return l.PerSide
}

// Summary formats the per-side plates as "45×2  ·  10×1", heaviest first,
// or "(no plates)" when nothing is loaded.
func (l Layout) Summary() string {
	ds := l.Denominations()
	if len(ds) == 0 {
		return "(no plates)"
	}
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = fmt.Sprintf("%s×%d", d, l.PerSide[d])
	}
	return strings.Join(parts, "  ·  ")
}
