package pipeline

import (
	"context"

	"github.com/matzehuels/barbell/pkg/errors"
	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/render/barbell/layout"
	"github.com/matzehuels/barbell/pkg/render/barbell/sink"
	"github.com/matzehuels/barbell/pkg/render/barbell/styles"
	"github.com/matzehuels/barbell/pkg/render/trace"
)

// BuildLayout computes the geometry of res in the style selected by opts.
func BuildLayout(res plates.Layout, opts Options) (layout.Layout, styles.Style, error) {
	s, err := opts.ResolveStyle()
	if err != nil {
		return layout.Layout{}, nil, err
	}
	return layout.Build(res.Loaded(), opts.Bar, layout.WithMetrics(s.Metrics())), s, nil
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, res plates.Layout, opts Options) (map[string][]byte, layout.Layout, error) {
	l, s, err := BuildLayout(res, opts)
	if err != nil {
		return nil, l, err
	}

	var svgOpts []sink.SVGOption
	svgOpts = append(svgOpts, sink.WithStyle(s))
	if opts.Title != "" {
		svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			o := svgOpts
			if opts.EmbedFont {
				o = append(o[:len(o):len(o)], sink.WithEmbeddedFont())
			}
			data = sink.RenderSVG(l, o...)
		case FormatPNG:
			data, err = sink.RenderPNG(l, sink.WithPNGStyle(s), sink.WithScale(opts.Scale))
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l, sink.WithJSONStyle(s.Name()), sink.WithJSONResult(opts.Target, res))
		default:
			return nil, l, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, l, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, l, nil
}

// RenderTrace renders the greedy walk of res as a Graphviz diagram.
func RenderTrace(ctx context.Context, res plates.Layout, opts Options, format string) ([]byte, error) {
	if err := ValidateTraceFormat(format); err != nil {
		return nil, err
	}
	dot := trace.ToDOT(res, opts.Target, opts.Bar)

	var data []byte
	var err error
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		data, err = trace.RenderSVG(ctx, dot)
	case FormatPNG:
		scale := opts.Scale
		if scale == 0 {
			scale = 2
		}
		data, err = trace.RenderPNG(ctx, dot, scale)
	case FormatPDF:
		data, err = trace.RenderPDF(ctx, dot)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render trace %s", format)
	}
	return data, nil
}
