// Package styles paints barbell geometry onto a canvas.
//
// Two styles are available:
//
//   - [Contrast] (default): 1800 wide, labels outlined in a color chosen
//     from the plate's luminance, badges only on thin plates.
//   - [Badge]: 1700 wide, every label on a dark badge, bar weight shown in
//     the corner.
//
// Both share the frame: a dark vertical gradient, the bar with knurl
// marks, two sleeves, and per side the plates followed by a collar.
package styles
