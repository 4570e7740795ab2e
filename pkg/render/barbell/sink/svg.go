package sink

import (
	"github.com/matzehuels/barbell/pkg/render/barbell/layout"
	"github.com/matzehuels/barbell/pkg/render/barbell/styles"
	"github.com/matzehuels/barbell/pkg/render/canvas"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style     styles.Style
	embedFont bool
	title     string
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithEmbeddedFont() SVGOption        { return func(r *svgRenderer) { r.embedFont = true } }
func WithTitle(title string) SVGOption   { return func(r *svgRenderer) { r.title = title } }

// RenderSVG paints l with the configured style (contrast by default) and
// returns the SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var copts []canvas.SVGOption
	if r.embedFont {
		copts = append(copts, canvas.WithEmbeddedFont())
	}
	if r.title != "" {
		copts = append(copts, canvas.WithTitle(r.title))
	}

	c := canvas.NewSVG(copts...)
	c.Reset(l.FrameWidth, l.FrameHeight)
	r.style.Paint(c, l)
	return c.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.style == nil {
		r.style = styles.Default()
	}
	return r
}
