package sink

import (
	"github.com/matzehuels/barbell/pkg/render/barbell/layout"
	"github.com/matzehuels/barbell/pkg/render/barbell/styles"
	"github.com/matzehuels/barbell/pkg/render/canvas"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	style styles.Style
	scale float64
}

// WithPNGStyle selects the style (contrast by default).
func WithPNGStyle(s styles.Style) PNGOption {
	return func(r *pngRenderer) { r.style = s }
}

// WithScale sets the PNG scale factor (default 1.0; 2.0 doubles the resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes l directly, without an SVG round trip.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Default()
	}

	c := canvas.NewRaster(r.scale)
	c.Reset(l.FrameWidth, l.FrameHeight)
	r.style.Paint(c, l)
	return c.PNG()
}
