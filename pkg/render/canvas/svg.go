package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/barbell/pkg/fonts"
)

// SVGOption configures an [SVG] canvas.
type SVGOption func(*SVG)

// WithEmbeddedFont inlines the bold Go font as an @font-face data URL so
// labels render identically in any viewer. It adds roughly 100 KB.
func WithEmbeddedFont() SVGOption { return func(s *SVG) { s.embedFont = true } }

// WithTitle sets the document <title>.
func WithTitle(title string) SVGOption { return func(s *SVG) { s.title = title } }

// SVG is a [Canvas] that records drawing calls as SVG elements.
type SVG struct {
	width, height float64
	body          bytes.Buffer
	defs          bytes.Buffer
	gradients     int
	embedFont     bool
	title         string
}

// NewSVG returns an empty SVG canvas. Call Reset before drawing.
func NewSVG(opts ...SVGOption) *SVG {
	s := &SVG{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SVG) Reset(width, height float64) {
	s.width, s.height = width, height
	s.body.Reset()
	s.defs.Reset()
	s.gradients = 0
}

func (s *SVG) Size() (float64, float64) { return s.width, s.height }

func (s *SVG) FillRect(x, y, w, h float64, fill string) {
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
		num(x), num(y), num(w), num(h), fillAttrs(fill))
}

func (s *SVG) FillRectGradient(x, y, w, h float64, g LinearGradient) {
	id := fmt.Sprintf("grad%d", s.gradients)
	s.gradients++

	fmt.Fprintf(&s.defs, `    <linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
		id, num(g.X0), num(g.Y0), num(g.X1), num(g.Y1))
	for _, st := range g.Stops {
		hex, op := svgPaint(st.Color)
		fmt.Fprintf(&s.defs, `      <stop offset="%s" stop-color="%s"%s/>`+"\n", num(st.Offset), hex, opacityAttr("stop-opacity", op))
	}
	s.defs.WriteString("    </linearGradient>\n")

	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s" fill="url(#%s)"/>`+"\n",
		num(x), num(y), num(w), num(h), id)
}

func (s *SVG) StrokeRect(x, y, w, h float64, stroke string, lineWidth float64) {
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s" fill="none"%s/>`+"\n",
		num(x), num(y), num(w), num(h), strokeAttrs(stroke, lineWidth))
}

func (s *SVG) FillRoundRect(x, y, w, h, r float64, fill string) {
	r = clampRadius(w, h, r)
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s" rx="%s"%s/>`+"\n",
		num(x), num(y), num(w), num(h), num(r), fillAttrs(fill))
}

func (s *SVG) StrokeRoundRect(x, y, w, h, r float64, stroke string, lineWidth float64) {
	r = clampRadius(w, h, r)
	fmt.Fprintf(&s.body, `  <rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="none"%s/>`+"\n",
		num(x), num(y), num(w), num(h), num(r), strokeAttrs(stroke, lineWidth))
}

func (s *SVG) DrawText(t Text) {
	fmt.Fprintf(&s.body, `  <text x="%s" y="%s" font-family="%s" font-size="%s" font-weight="%d"`,
		num(t.X), num(t.Y), escapeXML(fonts.FallbackFontFamily), num(t.Font.Size), t.Font.Weight)
	switch t.Align {
	case AlignCenter:
		s.body.WriteString(` text-anchor="middle"`)
	case AlignRight:
		s.body.WriteString(` text-anchor="end"`)
	}
	if t.Baseline == BaselineMiddle {
		s.body.WriteString(` dominant-baseline="central"`)
	}
	s.body.WriteString(fillAttrs(t.Fill))
	if t.OutlineWidth > 0 {
		s.body.WriteString(strokeAttrs(t.Outline, t.OutlineWidth))
		s.body.WriteString(` stroke-linejoin="round" stroke-miterlimit="2" paint-order="stroke"`)
	}
	fmt.Fprintf(&s.body, ">%s</text>\n", escapeXML(t.Content))
}

func (s *SVG) MeasureText(str string, f Font) float64 {
	return fonts.MeasureString(fonts.ForCSS(f.Weight), f.Size, str)
}

// Bytes returns the complete SVG document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%.0f" height="%.0f">`+"\n",
		num(s.width), num(s.height), s.width, s.height)
	if s.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escapeXML(s.title))
	}
	if s.embedFont || s.defs.Len() > 0 {
		buf.WriteString("  <defs>\n")
		if s.embedFont {
			fmt.Fprintf(&buf, "    <style>@font-face { font-family: '%s'; font-weight: 100 900; src: url(data:font/ttf;base64,%s) format('truetype'); }</style>\n",
				fonts.FontFamily, fonts.TTFBase64(fonts.Bold))
		}
		buf.Write(s.defs.Bytes())
		buf.WriteString("  </defs>\n")
	}
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func fillAttrs(c string) string {
	hex, op := svgPaint(c)
	return fmt.Sprintf(` fill="%s"%s`, hex, opacityAttr("fill-opacity", op))
}

func strokeAttrs(c string, lineWidth float64) string {
	hex, op := svgPaint(c)
	return fmt.Sprintf(` stroke="%s" stroke-width="%s"%s`, hex, num(lineWidth), opacityAttr("stroke-opacity", op))
}

func opacityAttr(name string, op float64) string {
	if op >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%s"`, name, num(op))
}

// num formats v with at most two decimals and no trailing zeros.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
