// Package layout computes barbell geometry: where the bar, knurl, sleeves,
// plates and collars go in a frame, before anything is drawn.
//
// # Stacking
//
// Each side is filled lightest plate first, starting 8 units in from the
// sleeve's outer end, so the heaviest plates finish innermost. Plate
// thickness is the denomination clamped to the style's band, and height is
// 220 plus four units per pound, capped at 370. Every plate is followed by
// a gap of [Metrics.BaseGap] plus [Metrics.ExtraGap]. The right stack is the
// mirror image of the left one.
//
// # Styles
//
// Geometry is style-independent apart from [Metrics], which the styles in
// package styles supply through [WithMetrics].
package layout
