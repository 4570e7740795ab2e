package prefs

import (
	"github.com/matzehuels/barbell/pkg/plates"
)

// Zoom bounds of the drawing, in percent.
const (
	MinZoom     = 60
	MaxZoom     = 160
	DefaultZoom = 100
)

// Defaults used by the form before anything is typed.
const (
	DefaultTarget = "225"
	DefaultBar    = "45"
	DefaultPairs  = "4"
)

// FormState is the calculator form as typed, before coercion.
type FormState struct {
	Target string            `json:"target"`
	Bar    string            `json:"bar"`
	Plates map[string]string `json:"plates"`
	Zoom   int               `json:"zoom"`
}

// DefaultFormState is the form shown on first use: 225 on a 45 bar with
// four pairs of every plate.
func DefaultFormState() FormState {
	st := FormState{
		Target: DefaultTarget,
		Bar:    DefaultBar,
		Plates: make(map[string]string, len(plates.DefaultPlates)),
		Zoom:   DefaultZoom,
	}
	for _, d := range plates.DefaultPlates {
		st.Plates[d.String()] = DefaultPairs
	}
	return st
}

// TargetWeight coerces the typed target; anything unusable is 0.
func (s FormState) TargetWeight() float64 { return plates.ParseNonNegFloat(s.Target, 0) }

// BarWeight coerces the typed bar weight; anything unusable is 45.
func (s FormState) BarWeight() float64 { return plates.ParseNonNegFloat(s.Bar, 45) }

// Inventory coerces the typed pair counts over the default denominations.
func (s FormState) Inventory() plates.Inventory { return plates.FromStrings(s.Plates) }

func (s *FormState) normalize() {
	if s.Zoom == 0 {
		s.Zoom = DefaultZoom
	}
	s.Zoom = max(MinZoom, min(MaxZoom, s.Zoom))
	if s.Plates == nil {
		s.Plates = map[string]string{}
	}
}

// Preset is the quick-stock preset: pair counts as strings, keyed by
// denomination.
type Preset map[string]string

// DefaultQuickStock is 4, 3, then 2 pairs of each default plate, heaviest
// first.
func DefaultQuickStock() Preset {
	return PresetFrom(plates.QuickStock())
}

// PresetFrom converts an inventory to a preset.
func PresetFrom(inv plates.Inventory) Preset {
	return Preset(inv.ToStrings())
}

// Inventory coerces the preset's counts.
func (p Preset) Inventory() plates.Inventory { return plates.FromStrings(p) }
