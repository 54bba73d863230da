package shape

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// Slice is one laid-out pie sector.
type Slice struct {
	Index      int
	Value      float64
	StartAngle float64
	EndAngle   float64
}

// Span returns the angular width of the slice.
func (s Slice) Span() float64 { return s.EndAngle - s.StartAngle }

// Pie lays values out around a full circle in input order starting at 12
// o'clock. Each slice spans Tau*value/total. A non-positive total yields
// zero-width slices.
func Pie(values []float64, total float64) []Slice {
	k := 0.0
	if total > 0 {
		k = Tau / total
	}
	out := make([]Slice, len(values))
	a := 0.0
	for i, v := range values {
		out[i] = Slice{Index: i, Value: v, StartAngle: a, EndAngle: a + v*k}
		a += v * k
	}
	return out
}

// Arc draws annular sectors between Inner and Outer radius.
type Arc struct {
	Inner, Outer float64
}

const arcEpsilon = 1e-12

// Path returns the path data for s.
func (a Arc) Path(s Slice) string {
	r0, r1 := a.Inner, a.Outer
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	a0, a1 := s.StartAngle, s.EndAngle
	da := math.Abs(a1 - a0)
	cw := a1 > a0

	var p Path
	if r1 <= arcEpsilon {
		p.MoveTo(0, 0)
		return p.String()
	}

	if da > Tau-arcEpsilon {
		// Full ring: two half-circle arcs per radius.
		p.MoveTo(0, -r1)
		p.ArcTo(r1, true, true, 0, r1)
		p.ArcTo(r1, true, true, 0, -r1)
		if r0 > arcEpsilon {
			p.MoveTo(0, -r0)
			p.ArcTo(r0, true, false, 0, r0)
			p.ArcTo(r0, true, false, 0, -r0)
		}
		p.ClosePath()
		return p.String()
	}

	large := da > math.Pi
	p.MoveTo(polar(r1, a0))
	p.ArcTo(r1, large, cw, r1x(r1, a1), r1y(r1, a1))
	if r0 > arcEpsilon {
		p.LineTo(polar(r0, a1))
		p.ArcTo(r0, large, !cw, r1x(r0, a0), r1y(r0, a0))
	} else {
		p.LineTo(0, 0)
	}
	p.ClosePath()
	return p.String()
}

// Centroid returns the midpoint of s at the mean of the two radii.
func (a Arc) Centroid(s Slice) Point {
	r := (a.Inner + a.Outer) / 2
	mid := (s.StartAngle+s.EndAngle)/2 - math.Pi/2
	return Point{X: math.Cos(mid) * r, Y: math.Sin(mid) * r}
}

func polar(r, angle float64) (float64, float64) {
	return r1x(r, angle), r1y(r, angle)
}

func r1x(r, angle float64) float64 { return r * math.Sin(angle) }
func r1y(r, angle float64) float64 { return -r * math.Cos(angle) }
