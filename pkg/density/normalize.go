package density

// Group is one category's values and its derived curve.
type Group struct {
	Key    string
	Values []float64
	Bins   []Bin
	Curve  []Point
}

// Estimate bins and smooths every group.
func Estimate(groups []Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		g.Bins = Histogram(g.Values)
		g.Curve = Smooth(g.Bins)
		out[i] = g
	}
	return out
}

// Normalize returns the factor mapping smoothed values to half-widths so
// the largest peak across all groups becomes halfWidth. It returns 0 when
// every curve is flat at zero.
func Normalize(groups []Group, halfWidth float64) float64 {
	peak := 0.0
	for _, g := range groups {
		peak = max(peak, Peak(g.Curve))
	}
	if peak == 0 {
		return 0
	}
	return halfWidth / peak
}
