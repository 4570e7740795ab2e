package trace

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/barbell/pkg/plates"
	"github.com/matzehuels/barbell/pkg/render"
)

const (
	fillStart = "#e0e7ff"
	fillTaken = "#ffffff"
	fillOK    = "#bbf7d0"
	fillMiss  = "#fecaca"
)

// ToDOT converts a plate calculation to Graphviz DOT. target and bar are
// the inputs the result was computed from.
func ToDOT(res plates.Layout, target, bar float64) string {
	var buf bytes.Buffer
	buf.WriteString("digraph greedy {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowsize=0.8];\n")
	buf.WriteString("\n")

	need := (target - bar) / 2
	fmt.Fprintf(&buf, "  start [label=%q, fillcolor=%q];\n",
		fmt.Sprintf("need %s per side\n(%s - %s) / 2", fmtWeight(need), fmtWeight(target), fmtWeight(bar)), fillStart)

	prev := "start"
	for i, s := range res.Steps {
		id := fmt.Sprintf("step%d", i)
		fmt.Fprintf(&buf, "  %s [%s];\n", id, stepAttrs(s))
		fmt.Fprintf(&buf, "  %s -> %s;\n", prev, id)
		prev = id
	}

	verdict, fill := verdictLabel(res)
	fmt.Fprintf(&buf, "  verdict [label=%q, fillcolor=%q];\n", verdict, fill)
	fmt.Fprintf(&buf, "  %s -> verdict;\n", prev)

	buf.WriteString("}\n")
	return buf.String()
}

func stepAttrs(s plates.Step) string {
	label := fmt.Sprintf("%s\ntake %d of %d\n%s left", s.Denomination, s.Taken, s.Available, fmtWeight(s.Remaining))
	attrs := fmt.Sprintf("label=%q, fillcolor=%q", label, fillTaken)
	if s.Taken == 0 {
		attrs += ", style=\"rounded,filled,dashed\", fontcolor=gray40"
	} else {
		attrs += fmt.Sprintf(", color=%q, penwidth=2", plates.ColorFor(s.Denomination))
	}
	return attrs
}

func verdictLabel(res plates.Layout) (string, string) {
	switch {
	case res.OK:
		return "exact match\n" + res.Summary(), fillOK
	case res.Remainder < 0:
		return "bar is heavier\nthan the target", fillMiss
	}
	return fmt.Sprintf("no exact match\n%s short per side", fmtWeight(res.Remainder)), fillMiss
}

func fmtWeight(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a
// unitless one so the diagram scales like the barbell SVG.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}
