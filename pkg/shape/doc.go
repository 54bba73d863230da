// Package shape generates SVG path data for the geometric primitives the
// charts draw: pie layouts, annular arcs and Catmull-Rom smoothed areas.
//
// Generators return plain path strings ("M0,-49A49,49,0,0,1,...") so callers
// can drop them straight into a d attribute. Angles are in radians measured
// clockwise from 12 o'clock, matching how pie slices read on screen.
package shape
