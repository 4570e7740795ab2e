// Package plates computes which plates to load on a barbell.
//
// # Overview
//
// Given a target weight, the bar weight, and an [Inventory] of plate pairs,
// [ComputeLayout] returns the plates to put on one side of the bar. The other
// side is loaded identically, so every plate used consumes one pair.
//
//	inv := plates.Inventory{45: 4, 35: 4, 25: 4, 10: 4, 5: 4, 2.5: 4}
//	l := plates.ComputeLayout(225, 45, inv)
//	// l.OK == true, l.PerSide == map[Denomination]int{45: 2}
//
// # Greedy Selection
//
// The allocator walks denominations from heaviest to lightest and takes as many
// pairs of each as fit into the remaining per-side weight. It never backtracks,
// so some inventories that admit an exact combination are reported as
// infeasible. That is the documented contract: results must match what a lifter
// loading heaviest-first would do by hand.
//
// After every subtraction the remainder is snapped to the nearest half unit with
// [RoundTo]. Without the snap, repeated float subtraction of values like 2.5
// accumulates error and a layout that matches exactly is reported as a miss.
//
// # Infeasible Requests
//
// An infeasible request is not an error. [Layout.OK] is false and
// [Layout.Remainder] holds the per-side weight that could not be matched (or the
// negative shortfall when the bar alone outweighs the target).
//
// # Input Coercion
//
// [ParseNonNegFloat] and [ParseNonNegInt] normalize raw user text to the
// non-negative values the allocator expects, falling back to a caller-chosen
// default for empty, malformed, or negative input.
package plates
