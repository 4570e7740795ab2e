// Package fonts provides the embedded fonts used for plate labels.
//
// The Go font family ships as Go source in golang.org/x/image, so the
// binary carries its own glyphs. Raster output draws with them directly and
// SVG output measures label widths with the same metrics a browser would use
// once the font is embedded.
package fonts

import (
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Weight selects one of the embedded faces.
type Weight int

const (
	Regular Weight = iota
	Bold
)

// ForCSS maps a CSS numeric font-weight to an embedded face.
// Weights of 600 and above use the bold face.
func ForCSS(weight int) Weight {
	if weight >= 600 {
		return Bold
	}
	return Regular
}

// FontFamily is the CSS font-family name of the embedded face.
const FontFamily = "Go"

// FallbackFontFamily lists fallbacks for viewers that ignore embedded fonts.
const FallbackFontFamily = `'Go', ui-sans-serif, system-ui, -apple-system, sans-serif`

// TTF returns the raw TrueType data for w.
func TTF(w Weight) []byte {
	if w == Bold {
		return gobold.TTF
	}
	return goregular.TTF
}

var (
	parseOnce sync.Once
	parsed    [2]*truetype.Font
	parseErr  error
)

// Font returns the parsed TrueType font for w. Parsing happens once.
func Font(w Weight) (*truetype.Font, error) {
	parseOnce.Do(func() {
		for i, data := range [][]byte{goregular.TTF, gobold.TTF} {
			f, err := truetype.Parse(data)
			if err != nil {
				parseErr = fmt.Errorf("parse embedded font: %w", err)
				return
			}
			parsed[i] = f
		}
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return parsed[w], nil
}

// NewFace returns a fresh face at size points (72 DPI, so points equal
// pixels). Faces are not safe for concurrent use; callers own the result.
func NewFace(w Weight, size float64) (font.Face, error) {
	f, err := Font(w)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone}), nil
}

type faceKey struct {
	w    Weight
	size float64
}

var (
	measureMu sync.Mutex
	faces     = map[faceKey]font.Face{}
)

// MeasureString returns the advance width of s in pixels. It returns an
// estimate when the font cannot be loaded.
func MeasureString(w Weight, size float64, s string) float64 {
	measureMu.Lock()
	defer measureMu.Unlock()

	key := faceKey{w, size}
	face, ok := faces[key]
	if !ok {
		var err error
		if face, err = NewFace(w, size); err != nil {
			return float64(len(s)) * size * 0.6
		}
		faces[key] = face
	}
	return float64(font.MeasureString(face, s)) / 64
}

var (
	b64      [2]string
	b64Onces [2]sync.Once
)

// TTFBase64 returns the TTF data for w as base64, for @font-face data URLs.
// The result is cached after first computation.
func TTFBase64(w Weight) string {
	b64Onces[w].Do(func() {
		b64[w] = base64.StdEncoding.EncodeToString(TTF(w))
	})
	return b64[w]
}
