package barbell

import (
	"strings"
	"testing"

	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/render/barbell/styles"
	"github.com/matzehuels/barbell/pkg/render/canvas"
)

func TestDrawNeverPanics(t *testing.T) {
	inputs := []struct {
		name    string
		perSide map[plates.Denomination]int
		bar     float64
	}{
		{"nil", nil, 45},
		{"empty", map[plates.Denomination]int{}, 45},
		{"bar zero", map[plates.Denomination]int{45: 1}, 0},
		{"empty and bar zero", nil, 0},
		{"odd weights", map[plates.Denomination]int{1.25: 2, 100: 1, -5: 3}, 20},
	}

	surfaces := map[string]func() canvas.Canvas{
		"svg":      func() canvas.Canvas { return canvas.NewSVG() },
		"raster":   func() canvas.Canvas { return canvas.NewRaster(0.5) },
		"recorder": func() canvas.Canvas { return &canvas.Recorder{} },
	}

	for _, in := range inputs {
		for sname, mk := range surfaces {
			for _, style := range []styles.Style{nil, styles.Contrast{}, styles.Badge{}} {
				t.Run(in.name+"/"+sname, func(t *testing.T) {
					Draw(mk(), in.perSide, in.bar, style)
				})
			}
		}
	}
}

func TestDrawRepaints(t *testing.T) {
	c := canvas.NewSVG()
	Draw(c, map[plates.Denomination]int{45: 2}, 45, nil)
	Draw(c, nil, 45, nil)

	out := string(c.Bytes())
	if strings.Contains(out, ">45</text>") {
		t.Error("second draw should not keep plates from the first")
	}
	if got := strings.Count(out, "<svg"); got != 1 {
		t.Errorf("document has %d <svg> elements", got)
	}
}

func TestDrawResult(t *testing.T) {
	rec := &canvas.Recorder{}

	miss := plates.ComputeLayout(27, 0, plates.Inventory{10: 2})
	l := DrawResult(rec, miss, 0, nil)
	if len(l.Plates) != 0 || rec.Count(canvas.OpText) != 0 {
		t.Errorf("infeasible result drew %d plates", len(l.Plates))
	}

	hit := plates.ComputeLayout(225, 45, plates.FullStock(4))
	l = DrawResult(rec, hit, 45, styles.Badge{})
	if len(l.Plates) != 4 {
		t.Errorf("225 on a 45 bar drew %d plates, want 4", len(l.Plates))
	}
	if w, _ := rec.Size(); w != 1700 {
		t.Errorf("canvas width = %v, want 1700", w)
	}
}
