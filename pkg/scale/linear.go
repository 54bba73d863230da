package scale

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// Linear maps a continuous domain onto a pixel range.
//
// The domain half is a go-moremath scale.Linear (which normalizes into
// [0, 1]); Linear stretches that unit interval onto [r0, r1]. Either
// interval may be reversed, e.g. a y axis with range [height, 0].
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear returns a scale mapping [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) *Linear {
	return &Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the current domain bounds in the order they were set.
func (l *Linear) Domain() (float64, float64) { return l.d0, l.d1 }

// Range returns the output range bounds.
func (l *Linear) Range() (float64, float64) { return l.r0, l.r1 }

// SetDomain replaces the domain. The range is unchanged.
func (l *Linear) SetDomain(d0, d1 float64) { l.d0, l.d1 = d0, d1 }

// Map projects a domain value into the range. A degenerate domain maps
// every value to the middle of the range.
func (l *Linear) Map(x float64) float64 {
	if l.d0 == l.d1 {
		return (l.r0 + l.r1) / 2
	}
	t := scale.Linear{Min: l.d0, Max: l.d1}.Map(x)
	return l.r0 + t*(l.r1-l.r0)
}

// Invert maps a range value back into the domain.
func (l *Linear) Invert(y float64) float64 {
	if l.r0 == l.r1 {
		return (l.d0 + l.d1) / 2
	}
	t := (y - l.r0) / (l.r1 - l.r0)
	return l.d0 + t*(l.d1-l.d0)
}

// Ticks returns round values inside the domain splitting it into roughly n
// intervals, so at most n+1 ticks.
func (l *Linear) Ticks(n int) []float64 {
	lo, hi := l.d0, l.d1
	if lo > hi {
		lo, hi = hi, lo
	}
	if n <= 0 || lo == hi || math.IsNaN(lo) || math.IsNaN(hi) {
		return nil
	}
	major, _ := scale.Linear{Min: lo, Max: hi}.Ticks(scale.TickOptions{Max: n + 1})
	ticks := major[:0]
	for _, t := range major {
		if t >= lo && t <= hi {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

// Copy returns an independent scale with the same domain and range.
func (l *Linear) Copy() *Linear {
	c := *l
	return &c
}
