package styles

import (
	"github.com/matzehuels/barbell/pkg/render/barbell/layout"
	"github.com/matzehuels/barbell/pkg/render/canvas"
)

const (
	colorBackground    = "#0b1220"
	colorBackgroundEnd = "#111827"
	colorBar           = "#9ca3af"
	colorKnurl         = "#6b7280"
	colorSleeve        = "#d1d5db"
	colorCollar        = "#e5e7eb"
	colorInset         = "rgba(0,0,0,0.22)"
)

// paintFrame draws everything that does not depend on the plates, then
// each side's plates with paintPlate followed by that side's collar.
func paintFrame(c canvas.Canvas, l layout.Layout, paintPlate func(canvas.Canvas, layout.Plate)) {
	w, h := l.FrameWidth, l.FrameHeight

	c.FillRect(0, 0, w, h, colorBackground)
	c.FillRectGradient(0, 0, w, h, canvas.LinearGradient{
		X0: 0, Y0: 0, X1: 0, Y1: h,
		Stops: []canvas.Stop{{Offset: 0, Color: colorBackground}, {Offset: 1, Color: colorBackgroundEnd}},
	})

	c.FillRect(l.Bar.X, l.Bar.Y, l.Bar.W, l.Bar.H, colorBar)
	for _, k := range l.Knurl {
		c.FillRect(k.X, k.Y, k.W, k.H, colorKnurl)
	}
	for _, s := range l.Sleeves {
		c.FillRect(s.X, s.Y, s.W, s.H, colorSleeve)
	}

	for _, side := range []layout.Side{layout.Left, layout.Right} {
		for _, p := range l.Side(side) {
			paintPlate(c, p)
		}
		col := l.Collars[side]
		c.FillRect(col.X, col.Y, col.W, col.H, colorCollar)
	}
}

// paintBody draws the plate rectangle and its darker inset.
func paintBody(c canvas.Canvas, p layout.Plate) {
	c.FillRect(p.X, p.Y, p.W, p.H, p.Color)
	c.FillRect(p.X+3, p.Y+10, p.W-6, p.H-20, colorInset)
}
