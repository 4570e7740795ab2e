package plates

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name      string
		target    float64
		bar       float64
		inv       Inventory
		wantOK    bool
		wantPer   map[Denomination]int
		wantRemin float64
	}{
		{
			name:    "two 45s per side",
			target:  225,
			bar:     45,
			inv:     FullStock(4),
			wantOK:  true,
			wantPer: map[Denomination]int{45: 2},
		},
		{
			// 25+10+5+2.5 is 42.5, so one pair of each light plate falls 2.5 short of 45.
			name:      "one of each light plate",
			target:    135,
			bar:       45,
			inv:       Inventory{45: 0, 35: 0, 25: 1, 10: 1, 5: 1, 2.5: 1},
			wantOK:    false,
			wantPer:   map[Denomination]int{25: 1, 10: 1, 5: 1, 2.5: 1},
			wantRemin: 2.5,
		},
		{
			name:    "one of each light plate with a spare 2.5",
			target:  135,
			bar:     45,
			inv:     Inventory{45: 0, 35: 0, 25: 1, 10: 1, 5: 1, 2.5: 2},
			wantOK:  true,
			wantPer: map[Denomination]int{25: 1, 10: 1, 5: 1, 2.5: 2},
		},
		{
			name:      "greedy cannot reach 13.5 with tens only",
			target:    27,
			bar:       0,
			inv:       Inventory{10: 2, 5: 0, 2.5: 0},
			wantOK:    false,
			wantPer:   map[Denomination]int{10: 1},
			wantRemin: 3.5,
		},
		{
			name:    "bar only",
			target:  45,
			bar:     45,
			inv:     FullStock(4),
			wantOK:  true,
			wantPer: map[Denomination]int{},
		},
		{
			name:      "bar heavier than target",
			target:    20,
			bar:       45,
			inv:       FullStock(4),
			wantOK:    false,
			wantPer:   map[Denomination]int{},
			wantRemin: -12.5,
		},
		{
			name:      "inventory exhausted",
			target:    500,
			bar:       45,
			inv:       Inventory{45: 1},
			wantOK:    false,
			wantPer:   map[Denomination]int{45: 1},
			wantRemin: 182.5,
		},
		{
			name:    "negative counts read as zero",
			target:  145,
			bar:     45,
			inv:     Inventory{45: -3, 25: 2},
			wantOK:  true,
			wantPer: map[Denomination]int{25: 2},
		},
		{
			name:      "empty inventory",
			target:    95,
			bar:       45,
			inv:       Inventory{},
			wantOK:    false,
			wantPer:   map[Denomination]int{},
			wantRemin: 25,
		},
		{
			name:    "nil inventory with bar only",
			target:  20,
			bar:     20,
			inv:     nil,
			wantOK:  true,
			wantPer: map[Denomination]int{},
		},
		{
			name:    "many small plates accumulate without drift",
			target:  45 + 2*2.5*9,
			bar:     45,
			inv:     Inventory{2.5: 9},
			wantOK:  true,
			wantPer: map[Denomination]int{2.5: 9},
		},
		{
			name:    "mixed full load",
			target:  315,
			bar:     45,
			inv:     QuickStock(),
			wantOK:  true,
			wantPer: map[Denomination]int{45: 3},
		},
		{
			name:    "quick stock deep load",
			target:  405,
			bar:     45,
			inv:     QuickStock(),
			wantOK:  true,
			wantPer: map[Denomination]int{45: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeLayout(tt.target, tt.bar, tt.inv)
			if got.OK != tt.wantOK {
				t.Errorf("OK = %v, want %v (remainder %v)", got.OK, tt.wantOK, got.Remainder)
			}
			if diff := cmp.Diff(tt.wantPer, got.PerSide); diff != "" {
				t.Errorf("PerSide mismatch (-want +got):\n%s", diff)
			}
			if got.Remainder != tt.wantRemin {
				t.Errorf("Remainder = %v, want %v", got.Remainder, tt.wantRemin)
			}
		})
	}
}

func TestComputeLayoutTargetBelowBar(t *testing.T) {
	for _, tc := range []struct{ target, bar float64 }{
		{0, 45}, {44.5, 45}, {10, 20}, {0, 0.5},
	} {
		got := ComputeLayout(tc.target, tc.bar, FullStock(4))
		want := (tc.target - tc.bar) / 2
		if got.OK {
			t.Errorf("ComputeLayout(%v, %v).OK = true, want false", tc.target, tc.bar)
		}
		if got.Remainder != want || got.Remainder >= 0 {
			t.Errorf("ComputeLayout(%v, %v).Remainder = %v, want %v", tc.target, tc.bar, got.Remainder, want)
		}
		if len(got.PerSide) != 0 {
			t.Errorf("ComputeLayout(%v, %v).PerSide = %v, want empty", tc.target, tc.bar, got.PerSide)
		}
	}
}

func TestComputeLayoutNonFinite(t *testing.T) {
	for _, target := range []float64{math.NaN(), math.Inf(1)} {
		got := ComputeLayout(target, 45, FullStock(4))
		if got.OK {
			t.Errorf("ComputeLayout(%v).OK = true, want false", target)
		}
		if len(got.PerSide) != 0 {
			t.Errorf("ComputeLayout(%v).PerSide = %v, want empty", target, got.PerSide)
		}
	}
}

// Every successful layout must add back up to the target.
func TestComputeLayoutSumInvariant(t *testing.T) {
	bars := []float64{0, 15, 20, 33, 35, 45}
	for _, bar := range bars {
		for target := bar; target <= bar+600; target += 2.5 {
			got := ComputeLayout(target, bar, FullStock(4))
			if !got.OK {
				continue
			}
			total := RoundTo(got.PerSideWeight()*2+bar, roundStep)
			if math.Abs(total-target) > tolerance {
				t.Fatalf("bar %v target %v: plates sum to %v (%s)", bar, target, total, got.Summary())
			}
		}
	}
}

// With four pairs of every plate, any multiple of 5 up to the capacity is reachable.
func TestComputeLayoutReachable(t *testing.T) {
	capacity := 2 * 4 * (45 + 35 + 25 + 10 + 5 + 2.5)
	for target := 45.0; target <= 45+capacity; target += 5 {
		if got := ComputeLayout(target, 45, FullStock(4)); !got.OK {
			t.Errorf("target %v: OK = false, remainder %v", target, got.Remainder)
		}
	}
}

func TestComputeLayoutDeterministic(t *testing.T) {
	inv := Inventory{45: 2, 35: 1, 25: 3, 10: 2, 5: 1, 2.5: 2}
	first := ComputeLayout(275, 45, inv)
	for i := 0; i < 20; i++ {
		again := ComputeLayout(275, 45, inv)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("run %d differs (-first +again):\n%s", i, diff)
		}
	}
}

func TestComputeLayoutDoesNotMutateInventory(t *testing.T) {
	inv := Inventory{45: 2, 25: -1, 10: 3}
	before := inv.Clone()
	ComputeLayout(185, 45, inv)
	if diff := cmp.Diff(before, inv); diff != "" {
		t.Errorf("inventory mutated (-before +after):\n%s", diff)
	}
}

func TestComputeLayoutSteps(t *testing.T) {
	got := ComputeLayout(135, 45, Inventory{45: 0, 35: 0, 25: 1, 10: 1, 5: 1, 2.5: 1})
	want := []Step{
		{Denomination: 25, Available: 1, Needed: 1, Taken: 1, Remaining: 20},
		{Denomination: 10, Available: 1, Needed: 2, Taken: 1, Remaining: 10},
		{Denomination: 5, Available: 1, Needed: 2, Taken: 1, Remaining: 5},
		{Denomination: 2.5, Available: 1, Needed: 2, Taken: 1, Remaining: 2.5},
	}
	if got.OK {
		t.Fatalf("expected 135 on a 45 bar with one of each light plate to miss, got %s", got.Summary())
	}
	if diff := cmp.Diff(want, got.Steps); diff != "" {
		t.Errorf("Steps mismatch (-want +got):\n%s", diff)
	}
}

func TestLayoutHelpers(t *testing.T) {
	l := ComputeLayout(275, 45, FullStock(4))
	if !l.OK {
		t.Fatalf("275 should load exactly, remainder %v", l.Remainder)
	}
	if got, want := l.Summary(), "45×2  ·  25×1"; got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
	if got := l.TotalPlates(); got != 6 {
		t.Errorf("TotalPlates() = %d, want 6", got)
	}
	if got := l.PerSideWeight(); got != 115 {
		t.Errorf("PerSideWeight() = %v, want 115", got)
	}
	if got := l.Count(25); got != 1 {
		t.Errorf("Count(25) = %d, want 1", got)
	}
	if diff := cmp.Diff([]Denomination{45, 25}, l.Denominations()); diff != "" {
		t.Errorf("Denominations() mismatch (-want +got):\n%s", diff)
	}

	miss := ComputeLayout(27, 0, Inventory{10: 2})
	if len(miss.Loaded()) != 0 {
		t.Errorf("Loaded() on a miss = %v, want empty", miss.Loaded())
	}
	if got := (Layout{}).Summary(); got != "(no plates)" {
		t.Errorf("empty Summary() = %q", got)
	}
}
