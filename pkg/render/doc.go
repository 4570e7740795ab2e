// Package render holds the barbell renderers and shared format conversion.
//
// # Overview
//
//   - [barbell]: the loaded-bar schematic (geometry, styles, output sinks)
//   - [canvas]: the drawing surface styles paint on (SVG and raster)
//   - [trace]: a Graphviz diagram of the greedy plate selection
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG with the external rsvg-convert tool
// (from librsvg). The barbell schematic rasterizes PNG natively and only
// needs rsvg-convert for PDF; the trace diagram needs it for both.
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [barbell]: github.com/matzehuels/barbell/pkg/render/barbell
// [canvas]: github.com/matzehuels/barbell/pkg/render/canvas
// [trace]: github.com/matzehuels/barbell/pkg/render/trace
package render
