// Package canvas defines the 2D drawing surface barbell schematics are
// painted on, with an SVG writer and a raster (PNG) implementation.
//
// Colors are CSS strings: "#rgb", "#rrggbb", "rgb(r,g,b)" or
// "rgba(r,g,b,a)". Coordinates are in frame units; the raster surface maps
// them to pixels with its scale factor.
package canvas

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Baseline is the vertical anchor of a text run.
type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineMiddle
)

// Font describes a text face: size in frame units and a CSS numeric weight.
type Font struct {
	Size   float64
	Weight int
}

// Text is a single run of text. When OutlineWidth is positive the run is
// stroked with Outline before being filled, as canvas strokeText+fillText.
type Text struct {
	X, Y         float64
	Content      string
	Font         Font
	Fill         string
	Align        Align
	Baseline     Baseline
	Outline      string
	OutlineWidth float64
}

// Stop is a color stop of a gradient, Offset in [0, 1].
type Stop struct {
	Offset float64
	Color  string
}

// LinearGradient runs from (X0, Y0) to (X1, Y1) in frame units.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}

// Canvas is a mutable drawing surface.
//
// Reset sizes the surface and discards everything drawn so far; every paint
// pass starts with it. Implementations are not safe for concurrent use.
type Canvas interface {
	Reset(width, height float64)
	Size() (width, height float64)

	FillRect(x, y, w, h float64, fill string)
	FillRectGradient(x, y, w, h float64, g LinearGradient)
	StrokeRect(x, y, w, h float64, stroke string, lineWidth float64)
	FillRoundRect(x, y, w, h, r float64, fill string)
	StrokeRoundRect(x, y, w, h, r float64, stroke string, lineWidth float64)

	DrawText(t Text)
	MeasureText(s string, f Font) float64
}

// clampRadius keeps a corner radius within half the rectangle, as the
// arcTo-based path does in a browser canvas.
func clampRadius(w, h, r float64) float64 {
	return max(0, min(r, w/2, h/2))
}
