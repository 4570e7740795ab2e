package canvas

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a CSS color in one of the forms the renderer emits.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		hex := s
		if len(hex) == 4 {
			hex = string([]byte{'#', hex[1], hex[1], hex[2], hex[2], hex[3], hex[3]})
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil

	case strings.HasPrefix(s, "rgba(") || strings.HasPrefix(s, "rgb("):
		inner := s[strings.IndexByte(s, '(')+1:]
		inner, ok := strings.CutSuffix(inner, ")")
		if !ok {
			return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
		}
		parts := strings.Split(inner, ",")
		if len(parts) != 3 && len(parts) != 4 {
			return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
		}
		var ch [3]uint8
		for i := range 3 {
			v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
			if err != nil || v < 0 || v > 255 {
				return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
			}
			ch[i] = uint8(v)
		}
		alpha := 1.0
		if len(parts) == 4 {
			a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
			if err != nil || a < 0 || a > 1 {
				return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
			}
			alpha = a
		}
		return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: uint8(alpha*255 + 0.5)}, nil
	}
	return color.NRGBA{}, fmt.Errorf("invalid color %q", s)
}

// mustColor parses s, falling back to opaque black. Drawing never fails on
// a bad color.
func mustColor(s string) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}

// svgPaint splits a CSS color into an SVG-friendly "#rrggbb" and opacity.
func svgPaint(s string) (string, float64) {
	c := mustColor(s)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), float64(c.A) / 255
}
