package layout

import (
	"math"
	"slices"

	"github.com/matzehuels/barbell/pkg/plates"
)

// Fixed frame geometry shared by every style.
const (
	DefaultFrameWidth  = 1800
	DefaultFrameHeight = 560

	barLengthRatio = 0.86
	barHeight      = 30

	knurlInset  = 40
	knurlPitch  = 10
	knurlWidth  = 3
	knurlHeight = 8

	sleeveInset  = 30
	sleeveLength = 380
	sleeveHeight = 48

	plateInset        = 8
	plateBaseHeight   = 220
	plateHeightGrowth = 4
	plateHeightCap    = 150

	CollarWidth  = 18
	CollarHeight = 240

	labelMinFont = 28
	labelMaxFont = 46
)

// Side identifies one end of the bar.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Rect is an axis-aligned rectangle with its top-left corner at (X, Y).
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }
func (r Rect) Right() float64   { return r.X + r.W }

// Plate is one positioned plate instance.
type Plate struct {
	Rect
	Denomination plates.Denomination
	Label        string
	Color        string
	Side         Side
	// Index is the position in the side's stack, 0 at the sleeve end.
	Index    int
	FontSize float64
}

// Layout is the full geometry of one barbell frame.
type Layout struct {
	FrameWidth  float64
	FrameHeight float64
	CenterY     float64
	BarWeight   float64
	Metrics     Metrics

	Bar     Rect
	Knurl   []Rect
	Sleeves [2]Rect
	Collars [2]Rect

	// Plates holds the left stack then the right stack, each ordered from
	// the sleeve end inward.
	Plates []Plate
}

// Side returns the plates on s in stacking order.
func (l Layout) Side(s Side) []Plate {
	var out []Plate
	for _, p := range l.Plates {
		if p.Side == s {
			out = append(out, p)
		}
	}
	return out
}

// Option adjusts the metrics used by [Build].
type Option func(*Metrics)

// WithMetrics replaces the metrics wholesale, typically with a style's.
func WithMetrics(m Metrics) Option { return func(dst *Metrics) { *dst = m } }

// WithFrame overrides the frame size.
func WithFrame(width, height float64) Option {
	return func(m *Metrics) { m.FrameWidth, m.FrameHeight = width, height }
}

// Build computes the geometry for perSide plates on a bar of weight bar.
//
// Denominations are stacked lightest first starting at each sleeve's outer
// end, so the heaviest plates sit innermost. The right stack mirrors the
// left. A collar closes each stack. A nil or empty perSide produces a bare
// bar; entries with a non-positive count or weight are ignored.
func Build(perSide map[plates.Denomination]int, bar float64, opts ...Option) Layout {
	m := DefaultMetrics()
	for _, opt := range opts {
		opt(&m)
	}
	m = m.normalized()

	w, h := m.FrameWidth, m.FrameHeight
	centerY := h / 2
	barLength := w * barLengthRatio
	barX := (w - barLength) / 2

	l := Layout{
		FrameWidth:  w,
		FrameHeight: h,
		CenterY:     centerY,
		BarWeight:   bar,
		Metrics:     m,
		Bar:         Rect{X: barX, Y: centerY - barHeight/2, W: barLength, H: barHeight},
	}

	for x := barX + knurlInset; x < barX+barLength-knurlInset; x += knurlPitch {
		l.Knurl = append(l.Knurl, Rect{X: x, Y: centerY - knurlHeight/2, W: knurlWidth, H: knurlHeight})
	}

	sleeveStart := barX + sleeveInset
	sleeveEnd := barX + barLength - sleeveInset
	l.Sleeves[Left] = Rect{X: sleeveStart, Y: centerY - sleeveHeight/2, W: sleeveLength, H: sleeveHeight}
	l.Sleeves[Right] = Rect{X: sleeveEnd - sleeveLength, Y: centerY - sleeveHeight/2, W: sleeveLength, H: sleeveHeight}

	sizes := make([]plates.Denomination, 0, len(perSide))
	for d, n := range perSide {
		if n > 0 && d > 0 && !math.IsInf(float64(d), 0) && !math.IsNaN(float64(d)) {
			sizes = append(sizes, d)
		}
	}
	slices.Sort(sizes)

	for _, side := range []Side{Left, Right} {
		acc := 0.0
		idx := 0
		for _, d := range sizes {
			for range perSide[d] {
				t := m.Thickness(d)
				ph := PlateHeight(d)
				x := sleeveStart + plateInset + acc
				if side == Right {
					x = sleeveEnd - plateInset - acc - t
				}
				l.Plates = append(l.Plates, Plate{
					Rect:         Rect{X: x, Y: centerY - ph/2, W: t, H: ph},
					Denomination: d,
					Label:        d.String(),
					Color:        plates.ColorFor(d),
					Side:         side,
					Index:        idx,
					FontSize:     LabelFontSize(ph),
				})
				acc += t + m.Gap(d, t)
				idx++
			}
		}

		cx := sleeveStart + acc + plateInset
		if side == Right {
			cx = sleeveEnd - acc - plateInset - CollarWidth
		}
		l.Collars[side] = Rect{X: cx, Y: centerY - CollarHeight/2, W: CollarWidth, H: CollarHeight}
	}

	return l
}

// PlateHeight grows with the denomination up to a cap.
func PlateHeight(d plates.Denomination) float64 {
	return plateBaseHeight + min(plateHeightCap, float64(d)*plateHeightGrowth)
}

// LabelFontSize scales the label with plate height, from 28 on the
// shortest plates to 46 on the tallest.
func LabelFontSize(plateHeight float64) float64 {
	t := max(0, min(1, (plateHeight-plateBaseHeight)/plateHeightCap))
	return math.Round(labelMinFont + (labelMaxFont-labelMinFont)*t)
}
