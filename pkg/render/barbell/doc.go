// Package barbell renders a loaded barbell: the bar, its knurled grip, two
// sleeves, a mirrored plate stack per side and a collar closing each stack.
//
// # Pipeline
//
// Rendering runs in three steps, each in its own subpackage:
//
//  1. [layout.Build] turns a per-side plate mapping into positioned
//     rectangles, using the metrics of the chosen style.
//  2. A [styles.Style] paints that geometry onto a [canvas.Canvas].
//  3. A sink in [sink] picks the canvas and encodes the result as SVG, PNG,
//     PDF or JSON.
//
// [Draw] performs steps 1 and 2 against a caller-supplied canvas. It fully
// repaints the surface on every call and keeps no state between calls. An
// empty mapping, which is what an infeasible plate calculation yields,
// draws a bare bar.
//
// [layout.Build]: github.com/matzehuels/barbell/pkg/render/barbell/layout.Build
// [styles.Style]: github.com/matzehuels/barbell/pkg/render/barbell/styles.Style
// [canvas.Canvas]: github.com/matzehuels/barbell/pkg/render/canvas.Canvas
// [sink]: github.com/matzehuels/barbell/pkg/render/barbell/sink
package barbell
