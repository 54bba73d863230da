// Package scale maps data coordinates to pixel coordinates and categories to
// colors.
//
// Three scale kinds cover every chart in genoviz:
//
//   - [Linear]: continuous domain to continuous range, with inversion (used by
//     brush zoom) and round tick generation backed by go-moremath.
//   - [Band]: ordered categories to evenly spaced positions with padding
//     (violin categories).
//   - [Ordinal]: categories to a cycling list of outputs with an implicit,
//     growing domain (color scales shared across charts).
//
// Scales are values owned by a chart session; nothing here is global.
//
//	x := scale.NewLinear(1000, 5000, 0, 985)
//	px := x.Map(2500)      // 369.375
//	bp := x.Invert(px)     // 2500
package scale
