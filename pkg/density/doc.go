// Package density estimates the distribution silhouettes drawn by violin
// plots.
//
// A group of values is binned into a histogram ([Histogram], Sturges' rule
// with round thresholds), the bin counts are smoothed with an Epanechnikov
// kernel ([Smooth]), and the smoothed curves of all groups are scaled
// together so the widest peak across every group has a fixed half-width
// ([Normalize]). Statistics come from go-moremath.
package density
