package canvas

import "github.com/matzehuels/barbell/pkg/fonts"

// OpKind names a recorded drawing call.
type OpKind string

const (
	OpFillRect        OpKind = "fill_rect"
	OpFillGradient    OpKind = "fill_gradient"
	OpStrokeRect      OpKind = "stroke_rect"
	OpFillRoundRect   OpKind = "fill_round_rect"
	OpStrokeRoundRect OpKind = "stroke_round_rect"
	OpText            OpKind = "text"
)

// Op is one recorded drawing call.
type Op struct {
	Kind       OpKind
	X, Y, W, H float64
	Radius     float64
	Color      string
	LineWidth  float64
	Gradient   *LinearGradient
	Text       *Text
}

// Recorder is a [Canvas] that keeps the sequence of calls made on it.
// It is used to inspect paint order and geometry without rasterizing.
type Recorder struct {
	width, height float64
	Ops           []Op
}

func (r *Recorder) Reset(width, height float64) {
	r.width, r.height = width, height
	r.Ops = r.Ops[:0]
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }

func (r *Recorder) FillRect(x, y, w, h float64, fill string) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: fill})
}

func (r *Recorder) FillRectGradient(x, y, w, h float64, g LinearGradient) {
	r.Ops = append(r.Ops, Op{Kind: OpFillGradient, X: x, Y: y, W: w, H: h, Gradient: &g})
}

func (r *Recorder) StrokeRect(x, y, w, h float64, stroke string, lineWidth float64) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRect, X: x, Y: y, W: w, H: h, Color: stroke, LineWidth: lineWidth})
}

func (r *Recorder) FillRoundRect(x, y, w, h, rad float64, fill string) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRoundRect, X: x, Y: y, W: w, H: h, Radius: rad, Color: fill})
}

func (r *Recorder) StrokeRoundRect(x, y, w, h, rad float64, stroke string, lineWidth float64) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeRoundRect, X: x, Y: y, W: w, H: h, Radius: rad, Color: stroke, LineWidth: lineWidth})
}

func (r *Recorder) DrawText(t Text) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X: t.X, Y: t.Y, Color: t.Fill, LineWidth: t.OutlineWidth, Text: &t})
}

func (r *Recorder) MeasureText(s string, f Font) float64 {
	return fonts.MeasureString(fonts.ForCSS(f.Weight), f.Size, s)
}

// Count returns the number of recorded ops of kind k.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Texts returns the recorded text runs in draw order.
func (r *Recorder) Texts() []Text {
	var out []Text
	for _, op := range r.Ops {
		if op.Text != nil {
			out = append(out, *op.Text)
		}
	}
	return out
}
