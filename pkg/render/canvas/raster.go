package canvas

import (
	"bytes"
	"image"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/barbell/pkg/fonts"
)

// Raster is a [Canvas] backed by an in-memory image. Frame coordinates are
// multiplied by the scale factor, so a 1800x560 frame at scale 2 yields a
// 3600x1120 image.
type Raster struct {
	dc            *gg.Context
	scale         float64
	width, height float64
	faces         map[faceKey]font.Face
}

type faceKey struct {
	weight fonts.Weight
	size   float64
}

// NewRaster returns a 1x1 raster canvas; Reset sizes it. Non-positive or
// non-finite scales mean 1.
func NewRaster(scale float64) *Raster {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	r := &Raster{scale: scale, faces: map[faceKey]font.Face{}}
	r.Reset(1, 1)
	return r
}

func (r *Raster) Reset(width, height float64) {
	r.width, r.height = width, height
	w := max(1, int(math.Ceil(width*r.scale)))
	h := max(1, int(math.Ceil(height*r.scale)))
	r.dc = gg.NewContext(w, h)
}

func (r *Raster) Size() (float64, float64) { return r.width, r.height }

// Image returns the current pixels.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// PNG encodes the current pixels.
func (r *Raster) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *Raster) FillRect(x, y, w, h float64, fill string) {
	r.dc.SetColor(mustColor(fill))
	r.dc.DrawRectangle(r.s(x), r.s(y), r.s(w), r.s(h))
	r.dc.Fill()
}

func (r *Raster) FillRectGradient(x, y, w, h float64, g LinearGradient) {
	grad := gg.NewLinearGradient(r.s(g.X0), r.s(g.Y0), r.s(g.X1), r.s(g.Y1))
	for _, st := range g.Stops {
		grad.AddColorStop(st.Offset, mustColor(st.Color))
	}
	r.dc.SetFillStyle(grad)
	r.dc.DrawRectangle(r.s(x), r.s(y), r.s(w), r.s(h))
	r.dc.Fill()
}

func (r *Raster) StrokeRect(x, y, w, h float64, stroke string, lineWidth float64) {
	r.dc.SetColor(mustColor(stroke))
	r.dc.SetLineWidth(r.s(lineWidth))
	r.dc.DrawRectangle(r.s(x), r.s(y), r.s(w), r.s(h))
	r.dc.Stroke()
}

func (r *Raster) FillRoundRect(x, y, w, h, rad float64, fill string) {
	rad = clampRadius(w, h, rad)
	r.dc.SetColor(mustColor(fill))
	r.dc.DrawRoundedRectangle(r.s(x), r.s(y), r.s(w), r.s(h), r.s(rad))
	r.dc.Fill()
}

func (r *Raster) StrokeRoundRect(x, y, w, h, rad float64, stroke string, lineWidth float64) {
	rad = clampRadius(w, h, rad)
	r.dc.SetColor(mustColor(stroke))
	r.dc.SetLineWidth(r.s(lineWidth))
	r.dc.DrawRoundedRectangle(r.s(x), r.s(y), r.s(w), r.s(h), r.s(rad))
	r.dc.Stroke()
}

// DrawText draws t. gg has no text stroking, so the outline is built from
// copies of the run offset around a disc of radius OutlineWidth/2.
func (r *Raster) DrawText(t Text) {
	face := r.face(t.Font)
	if face == nil || t.Content == "" {
		return
	}
	r.dc.SetFontFace(face)

	ax := 0.0
	switch t.Align {
	case AlignCenter:
		ax = 0.5
	case AlignRight:
		ax = 1
	}
	ay := 0.0
	if t.Baseline == BaselineMiddle {
		ay = 0.35
	}
	x, y := r.s(t.X), r.s(t.Y)

	if t.OutlineWidth > 0 {
		r.dc.SetColor(mustColor(t.Outline))
		n := int(math.Ceil(r.s(t.OutlineWidth) / 2))
		for dy := -n; dy <= n; dy++ {
			for dx := -n; dx <= n; dx++ {
				if dx*dx+dy*dy > n*n {
					continue
				}
				r.dc.DrawStringAnchored(t.Content, x+float64(dx), y+float64(dy), ax, ay)
			}
		}
	}

	r.dc.SetColor(mustColor(t.Fill))
	r.dc.DrawStringAnchored(t.Content, x, y, ax, ay)
}

func (r *Raster) MeasureText(s string, f Font) float64 {
	return fonts.MeasureString(fonts.ForCSS(f.Weight), f.Size, s)
}

func (r *Raster) face(f Font) font.Face {
	key := faceKey{fonts.ForCSS(f.Weight), f.Size * r.scale}
	if face, ok := r.faces[key]; ok {
		return face
	}
	face, err := fonts.NewFace(key.weight, key.size)
	if err != nil {
		return nil
	}
	r.faces[key] = face
	return face
}

func (r *Raster) s(v float64) float64 { return v * r.scale }
