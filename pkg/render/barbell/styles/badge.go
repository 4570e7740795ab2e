package styles

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/render/barbell/layout"
	"github.com/matzehuels/barbell/pkg/render/canvas"
)

const (
	badgeFrameWidth = 1700
	badgeFontSize   = 30
	badgePadX       = 10
	badgeHeight     = 38
	badgeRadius     = 8
)

// Badge puts every label on a dark rounded badge and prints the bar weight
// in the top-left corner. Unit defaults to "lb".
type Badge struct {
	Unit string
}

func (Badge) Name() string { return NameBadge }

func (Badge) Metrics() layout.Metrics {
	return layout.Metrics{
		FrameWidth:   badgeFrameWidth,
		FrameHeight:  layout.DefaultFrameHeight,
		MinThickness: 14,
		MaxThickness: 52,
		BaseGap:      10,
		ExtraGap: func(_ plates.Denomination, thickness float64) float64 {
			if thickness < 20 {
				return 8
			}
			return 0
		},
	}
}

func (s Badge) Paint(c canvas.Canvas, l layout.Layout) {
	paintFrame(c, l, s.paintPlate)

	unit := s.Unit
	if unit == "" {
		unit = "lb"
	}
	c.DrawText(canvas.Text{
		X:       16,
		Y:       44,
		Content: fmt.Sprintf("Bar: %s %s", strconv.FormatFloat(l.BarWeight, 'f', -1, 64), unit),
		Font:    canvas.Font{Size: 28, Weight: 600},
		Fill:    colorCollar,
	})
}

func (Badge) paintPlate(c canvas.Canvas, p layout.Plate) {
	paintBody(c, p)

	font := canvas.Font{Size: badgeFontSize, Weight: labelWeight}
	tw := c.MeasureText(p.Label, font)
	bw := max(tw+badgePadX*2, p.W-4)
	cx, cy := p.CenterX(), p.CenterY()
	bx, by := cx-bw/2, cy-badgeHeight/2

	c.FillRoundRect(bx, by, bw, badgeHeight, badgeRadius, "rgba(0,0,0,0.55)")
	c.StrokeRoundRect(bx, by, bw, badgeHeight, badgeRadius, "rgba(255,255,255,0.25)", 2)

	c.DrawText(canvas.Text{
		X:        cx,
		Y:        cy + 1,
		Content:  p.Label,
		Font:     font,
		Fill:     "#ffffff",
		Align:    canvas.AlignCenter,
		Baseline: canvas.BaselineMiddle,
	})
}
