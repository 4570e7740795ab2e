package sink

import (
	"encoding/json"

	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/render/barbell/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	style  string
	target float64
	result *plates.Layout
}

// WithJSONStyle records the style name in the output.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONResult embeds the plate calculation the layout was drawn from.
func WithJSONResult(target float64, res plates.Layout) JSONOption {
	return func(r *jsonRenderer) { r.target = target; r.result = &res }
}

type jsonOutput struct {
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Style     string         `json:"style,omitempty"`
	BarWeight float64        `json:"bar_weight"`
	Target    float64        `json:"target,omitempty"`
	Result    *plates.Layout `json:"result,omitempty"`
	Bar       jsonRect       `json:"bar"`
	Sleeves   []jsonRect     `json:"sleeves"`
	Collars   []jsonRect     `json:"collars"`
	Plates    []jsonPlate    `json:"plates"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonPlate struct {
	jsonRect
	Weight   plates.Denomination `json:"weight"`
	Color    string              `json:"color"`
	Side     string              `json:"side"`
	Index    int                 `json:"index"`
	FontSize float64             `json:"font_size"`
}

// RenderJSON exports the geometry as a pretty-printed JSON document, for
// tools that want to draw the barbell themselves.
//
// RenderJSON returns an error only if JSON marshaling fails. It does not
// modify l and is safe to call concurrently.
func RenderJSON(l layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:     l.FrameWidth,
		Height:    l.FrameHeight,
		Style:     r.style,
		BarWeight: l.BarWeight,
		Target:    r.target,
		Result:    r.result,
		Bar:       toJSONRect(l.Bar),
		Sleeves:   []jsonRect{toJSONRect(l.Sleeves[layout.Left]), toJSONRect(l.Sleeves[layout.Right])},
		Collars:   []jsonRect{toJSONRect(l.Collars[layout.Left]), toJSONRect(l.Collars[layout.Right])},
		Plates:    make([]jsonPlate, 0, len(l.Plates)),
	}
	for _, p := range l.Plates {
		out.Plates = append(out.Plates, jsonPlate{
			jsonRect: toJSONRect(p.Rect),
			Weight:   p.Denomination,
			Color:    p.Color,
			Side:     p.Side.String(),
			Index:    p.Index,
			FontSize: p.FontSize,
		})
	}

	return json.MarshalIndent(out, "", "  ")
}

func toJSONRect(r layout.Rect) jsonRect {
	return jsonRect{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}
