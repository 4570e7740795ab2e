package styles

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/barbell/pkg/render/barbell/layout"
	"github.com/matzehuels/barbell/pkg/render/canvas"
)

const (
	insetDarkening = 0.65
	darkTextLuma   = 0.55
	thinPlate      = 24.0
	labelWeight    = 900
)

// Contrast outlines each label against a text color picked from the plate's
// luminance. Thin plates also get a rounded badge behind the label.
type Contrast struct{}

func (Contrast) Name() string { return NameContrast }

func (Contrast) Metrics() layout.Metrics { return layout.DefaultMetrics() }

func (s Contrast) Paint(c canvas.Canvas, l layout.Layout) {
	paintFrame(c, l, s.paintPlate)
}

func (Contrast) paintPlate(c canvas.Canvas, p layout.Plate) {
	paintBody(c, p)
	c.StrokeRect(p.X+0.5, p.Y+0.5, p.W-1, p.H-1, "rgba(255,255,255,0.35)", 2)

	fs := p.FontSize
	cx, cy := p.CenterX(), p.CenterY()
	lc := LabelColorsFor(p.Color)
	lw := max(6, math.Round(fs/3))

	if p.W <= thinPlate {
		bw := max(p.W+16, fs*1.2)
		bh := math.Round(fs * 1.05)
		fill := "rgba(0,0,0,0.7)"
		if lc.Dark {
			fill = "rgba(255,255,255,0.9)"
		}
		c.FillRoundRect(cx-bw/2, cy-bh/2, bw, bh, 8, fill)
		lw = max(lw, 4)
	}

	c.DrawText(canvas.Text{
		X:            cx,
		Y:            cy + 1,
		Content:      p.Label,
		Font:         canvas.Font{Size: fs, Weight: labelWeight},
		Fill:         lc.Text,
		Align:        canvas.AlignCenter,
		Baseline:     canvas.BaselineMiddle,
		Outline:      lc.Outline,
		OutlineWidth: lw,
	})
}

// LabelColors is the text treatment for a label on a given plate color.
type LabelColors struct {
	Dark    bool
	Text    string
	Outline string
}

// LabelColorsFor picks dark text on bright plates and white text otherwise.
// The plate's inset shading darkens it, so luminance is scaled by 0.65
// before comparing against 0.55.
func LabelColorsFor(hex string) LabelColors {
	if Luminance(hex)*insetDarkening > darkTextLuma {
		return LabelColors{Dark: true, Text: "#0b0f19", Outline: "rgba(255,255,255,0.98)"}
	}
	return LabelColors{Text: "#ffffff", Outline: "rgba(0,0,0,0.92)"}
}

// Luminance is the WCAG relative luminance of a "#rrggbb" color, computed
// on linearized sRGB. Unparseable colors count as black.
func Luminance(hex string) float64 {
	col, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := col.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
