package canvas

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{in: "#60a5fa", want: color.NRGBA{0x60, 0xa5, 0xfa, 0xff}},
		{in: "#FFF", want: color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{in: "rgb(1, 2, 3)", want: color.NRGBA{1, 2, 3, 0xff}},
		{in: "rgba(0,0,0,0.22)", want: color.NRGBA{0, 0, 0, 56}},
		{in: "rgba(255,255,255,.35)", want: color.NRGBA{255, 255, 255, 89}},
		{in: "#12", wantErr: true},
		{in: "rgba(0,0,0)x", wantErr: true},
		{in: "rgba(300,0,0,1)", wantErr: true},
		{in: "rgba(0,0,0,2)", wantErr: true},
		{in: "blue", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSVG(t *testing.T) {
	s := NewSVG(WithTitle("a & b"))
	s.Reset(200, 100)
	s.FillRectGradient(0, 0, 200, 100, LinearGradient{Y1: 100, Stops: []Stop{{0, "#0b1220"}, {1, "#111827"}}})
	s.FillRect(10, 20, 30, 40, "#9ca3af")
	s.StrokeRect(10.5, 20.5, 29, 39, "rgba(255,255,255,0.35)", 2)
	s.FillRoundRect(0, 0, 10, 4, 8, "rgba(0,0,0,0.7)")
	s.DrawText(Text{X: 25, Y: 41, Content: "2.5", Font: Font{Size: 28, Weight: 900}, Fill: "#ffffff",
		Align: AlignCenter, Baseline: BaselineMiddle, Outline: "rgba(0,0,0,0.92)", OutlineWidth: 9})

	out := string(s.Bytes())
	for _, want := range []string{
		`viewBox="0 0 200 100" width="200" height="100"`,
		`<title>a &amp; b</title>`,
		`<linearGradient id="grad0"`,
		`<stop offset="1" stop-color="#111827"/>`,
		`fill="url(#grad0)"`,
		`<rect x="10" y="20" width="30" height="40" fill="#9ca3af"/>`,
		`stroke="#ffffff" stroke-width="2" stroke-opacity="0.35"`,
		`rx="2" fill="#000000" fill-opacity="0.7"`,
		`text-anchor="middle"`,
		`dominant-baseline="central"`,
		`paint-order="stroke"`,
		`>2.5</text>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q\n%s", want, out)
		}
	}
	if strings.Contains(out, "@font-face") {
		t.Error("font should only be embedded on request")
	}

	s.Reset(50, 50)
	if out := string(s.Bytes()); strings.Contains(out, "<rect") || strings.Contains(out, "<defs>") {
		t.Errorf("Reset should discard earlier drawing:\n%s", out)
	}
}

func TestSVGEmbeddedFont(t *testing.T) {
	s := NewSVG(WithEmbeddedFont())
	s.Reset(10, 10)
	if !strings.Contains(string(s.Bytes()), "data:font/ttf;base64,") {
		t.Error("expected embedded font data URL")
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{0: "0", 1.5: "1.5", 2.004: "2", 99.999: "100", -0.001: "0", 154.125: "154.13"}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestRaster(t *testing.T) {
	r := NewRaster(2)
	r.Reset(100, 50)
	r.FillRect(0, 0, 100, 50, "#0b1220")
	r.FillRect(10, 10, 20, 20, "#ef4444")
	r.DrawText(Text{X: 50, Y: 25, Content: "45", Font: Font{Size: 20, Weight: 900}, Fill: "#ffffff",
		Align: AlignCenter, Baseline: BaselineMiddle, Outline: "#000000", OutlineWidth: 4})

	img := r.Image()
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("image size = %dx%d, want 200x100", b.Dx(), b.Dy())
	}
	if got := color.NRGBAModel.Convert(img.At(40, 40)).(color.NRGBA); got != (color.NRGBA{0xef, 0x44, 0x44, 0xff}) {
		t.Errorf("pixel inside red square = %v", got)
	}
	if got := color.NRGBAModel.Convert(img.At(2, 2)).(color.NRGBA); got != (color.NRGBA{0x0b, 0x12, 0x20, 0xff}) {
		t.Errorf("background pixel = %v", got)
	}

	data, err := r.PNG()
	if err != nil {
		t.Fatalf("PNG() error: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("PNG output does not decode: %v", err)
	}
}

func TestRasterBadScale(t *testing.T) {
	r := NewRaster(-3)
	r.Reset(10, 10)
	if b := r.Image().Bounds(); b.Dx() != 10 {
		t.Errorf("width = %d, want 10", b.Dx())
	}
	r.FillRect(0, 0, 10, 10, "not a color")
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Reset(10, 10)
	r.FillRect(0, 0, 1, 1, "#fff")
	r.DrawText(Text{Content: "x"})
	r.DrawText(Text{Content: "y"})
	if r.Count(OpText) != 2 || r.Count(OpFillRect) != 1 {
		t.Errorf("counts = %d text, %d rect", r.Count(OpText), r.Count(OpFillRect))
	}
	if texts := r.Texts(); len(texts) != 2 || texts[1].Content != "y" {
		t.Errorf("Texts() = %+v", texts)
	}
	r.Reset(10, 10)
	if len(r.Ops) != 0 {
		t.Errorf("Reset left %d ops", len(r.Ops))
	}
}

var (
	_ Canvas = (*SVG)(nil)
	_ Canvas = (*Raster)(nil)
	_ Canvas = (*Recorder)(nil)
)
