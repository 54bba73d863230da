package density

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// Samples is the number of points each smoothed curve is evaluated at.
const Samples = 50

// BandwidthSteps is the kernel bandwidth expressed in sample steps.
const BandwidthSteps = 7

// Kernel is a smoothing kernel evaluated at a signed distance.
type Kernel func(d float64) float64

// Epanechnikov returns the Epanechnikov kernel with bandwidth k.
func Epanechnikov(k float64) Kernel {
	return func(d float64) float64 {
		if k <= 0 {
			if d == 0 {
				return 1
			}
			return 0
		}
		u := d / k
		if math.Abs(u) > 1 {
			return 0
		}
		return 0.75 * (1 - u*u) / k
	}
}

// Point is one evaluation of a smoothed curve.
type Point struct {
	X, V float64
}

// Smooth evaluates a kernel-weighted average of the bin counts at Samples
// evenly spaced points spanning the bins. The kernel bandwidth is
// BandwidthSteps sample steps. Points with no bins inside the kernel support
// are zero.
func Smooth(bins []Bin) []Point {
	if len(bins) == 0 {
		return nil
	}
	lo, hi := bins[0].X0, bins[len(bins)-1].X1
	xs := vec.Linspace(lo, hi, Samples)
	kernel := Epanechnikov(BandwidthSteps * (hi - lo) / (Samples - 1))

	mids := make([]float64, len(bins))
	counts := make([]float64, len(bins))
	for i, b := range bins {
		mids[i] = b.Mid()
		counts[i] = float64(b.Count)
	}

	out := make([]Point, len(xs))
	inXs := make([]float64, 0, len(bins))
	inWs := make([]float64, 0, len(bins))
	for i, x := range xs {
		// Sample.Mean divides by the running weight, so bins outside the
		// kernel support are left out rather than given weight zero.
		inXs, inWs = inXs[:0], inWs[:0]
		for j, m := range mids {
			if w := kernel(x - m); w > 0 {
				inXs = append(inXs, counts[j])
				inWs = append(inWs, w)
			}
		}
		v := 0.0
		if len(inWs) > 0 {
			v = stats.Sample{Xs: inXs, Weights: inWs}.Mean()
		}
		out[i] = Point{X: x, V: v}
	}
	return out
}

// Peak returns the largest smoothed value of curve.
func Peak(curve []Point) float64 {
	peak := 0.0
	for _, p := range curve {
		peak = math.Max(peak, p.V)
	}
	return peak
}
