package barbell

import (
	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/render/barbell/layout"
	"github.com/matzehuels/barbell/pkg/render/barbell/styles"
	"github.com/matzehuels/barbell/pkg/render/canvas"
)

// Draw repaints c with perSide plates on a bar of weight bar and returns the
// geometry it drew. A nil style selects [styles.Default].
func Draw(c canvas.Canvas, perSide map[plates.Denomination]int, bar float64, s styles.Style) layout.Layout {
	if s == nil {
		s = styles.Default()
	}
	l := layout.Build(perSide, bar, layout.WithMetrics(s.Metrics()))
	c.Reset(l.FrameWidth, l.FrameHeight)
	s.Paint(c, l)
	return l
}

// DrawResult draws the loaded plates of a calculation. Infeasible results
// draw an unloaded bar.
func DrawResult(c canvas.Canvas, res plates.Layout, bar float64, s styles.Style) layout.Layout {
	return Draw(c, res.Loaded(), bar, s)
}
