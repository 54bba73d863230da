package density

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/matzehuels/genoviz/pkg/scale"
)

// Bin is one histogram bucket covering [X0, X1). The last bin of a
// histogram also includes X1.
type Bin struct {
	X0, X1 float64
	Count  int
}

// Mid returns the center of the bin.
func (b Bin) Mid() float64 { return (b.X0 + b.X1) / 2 }

// Sturges returns the bin count suggested by Sturges' rule.
func Sturges(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)) + 1))
}

// Histogram bins values between their minimum and maximum. Thresholds are
// round numbers chosen for roughly Sturges(len(values)) bins. Empty input
// yields no bins; identical values yield a single zero-width bin.
func Histogram(values []float64) []Bin {
	if len(values) == 0 {
		return nil
	}
	lo, hi := stats.Bounds(values)

	var thresholds []float64
	for _, t := range scale.NewLinear(lo, hi, 0, 1).Ticks(Sturges(len(values))) {
		if t > lo && t < hi {
			thresholds = append(thresholds, t)
		}
	}

	bins := make([]Bin, len(thresholds)+1)
	edges := append(append([]float64{lo}, thresholds...), hi)
	for i := range bins {
		bins[i].X0, bins[i].X1 = edges[i], edges[i+1]
	}

	for _, v := range values {
		bins[binIndex(thresholds, v)].Count++
	}
	return bins
}

// binIndex returns the number of thresholds <= v.
func binIndex(thresholds []float64, v float64) int {
	lo, hi := 0, len(thresholds)
	for lo < hi {
		m := (lo + hi) / 2
		if thresholds[m] <= v {
			lo = m + 1
		} else {
			hi = m
		}
	}
	return lo
}
