package layout

import "github.com/matzehuels/barbell/pkg/plates"

// Metrics are the per-style knobs of the geometry: frame size, the band
// plate thickness is clamped to, and the spacing between plates.
type Metrics struct {
	FrameWidth   float64
	FrameHeight  float64
	MinThickness float64
	MaxThickness float64
	BaseGap      float64

	// ExtraGap adds spacing after a plate of weight d and the given
	// thickness. Nil means none.
	ExtraGap func(d plates.Denomination, thickness float64) float64
}

// DefaultMetrics returns the metrics of the default (contrast) style.
func DefaultMetrics() Metrics {
	return Metrics{
		FrameWidth:   DefaultFrameWidth,
		FrameHeight:  DefaultFrameHeight,
		MinThickness: 16,
		MaxThickness: 56,
		BaseGap:      28,
		ExtraGap:     TieredGap,
	}
}

// TieredGap gives lighter plates more room for their labels.
func TieredGap(d plates.Denomination, _ float64) float64 {
	switch {
	case d <= 2.5:
		return 22
	case d <= 5:
		return 18
	case d <= 10:
		return 14
	case d <= 25:
		return 10
	}
	return 6
}

// Thickness clamps the denomination into the thickness band.
func (m Metrics) Thickness(d plates.Denomination) float64 {
	return max(m.MinThickness, min(m.MaxThickness, float64(d)))
}

// Gap is the spacing after a plate.
func (m Metrics) Gap(d plates.Denomination, thickness float64) float64 {
	if m.ExtraGap == nil {
		return m.BaseGap
	}
	return m.BaseGap + m.ExtraGap(d, thickness)
}

func (m Metrics) normalized() Metrics {
	def := DefaultMetrics()
	if m.FrameWidth <= 0 {
		m.FrameWidth = def.FrameWidth
	}
	if m.FrameHeight <= 0 {
		m.FrameHeight = def.FrameHeight
	}
	if m.MaxThickness < m.MinThickness {
		m.MaxThickness = m.MinThickness
	}
	return m
}
