// Package trace draws the greedy plate selection as a Graphviz diagram.
//
// The diagram is a left-to-right chain: the per-side need, then one node
// per denomination the walk considered (pairs taken and weight left), then
// the verdict. Denominations that contributed nothing are drawn dashed.
//
//	res := plates.ComputeLayout(225, 45, inv)
//	dot := trace.ToDOT(res, 225, 45)
//	svg, err := trace.RenderSVG(ctx, dot)
package trace
