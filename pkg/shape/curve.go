package shape

import "math"

// catmullRom draws a centripetal (alpha 0.5) Catmull-Rom spline through its
// points as a sequence of cubic Bézier segments. Consecutive lines inside
// one area are joined with LineTo and the area is closed after the second.
type catmullRom struct {
	p     *Path
	alpha float64

	line  int // -1 outside an area, otherwise lines emitted so far mod 2
	point int

	x0, x1, x2 float64
	y0, y1, y2 float64

	// Distances between consecutive points raised to alpha and 2*alpha.
	l01, l12, l23       float64
	l01p2, l12p2, l23p2 float64
}

const curveEpsilon = 1e-12

func (c *catmullRom) lineStart() {
	c.x0, c.x1, c.x2 = math.NaN(), math.NaN(), math.NaN()
	c.y0, c.y1, c.y2 = math.NaN(), math.NaN(), math.NaN()
	c.l01, c.l12, c.l23 = 0, 0, 0
	c.l01p2, c.l12p2, c.l23p2 = 0, 0, 0
	c.point = 0
}

func (c *catmullRom) lineEnd() {
	switch c.point {
	case 2:
		c.p.LineTo(c.x2, c.y2)
	case 3:
		c.add(c.x2, c.y2)
	}
	if c.line == 1 || (c.line < 0 && c.point == 1) {
		c.p.ClosePath()
	}
	if c.line >= 0 {
		c.line = 1 - c.line
	}
}

func (c *catmullRom) add(x, y float64) {
	if c.point > 0 {
		dx, dy := c.x2-x, c.y2-y
		c.l23p2 = math.Pow(dx*dx+dy*dy, c.alpha)
		c.l23 = math.Sqrt(c.l23p2)
	}

	switch c.point {
	case 0:
		c.point = 1
		if c.line == 1 {
			c.p.LineTo(x, y)
		} else {
			c.p.MoveTo(x, y)
		}
	case 1:
		c.point = 2
	case 2:
		c.point = 3
		c.bezier(x, y)
	default:
		c.bezier(x, y)
	}

	c.l01, c.l12 = c.l12, c.l23
	c.l01p2, c.l12p2 = c.l12p2, c.l23p2
	c.x0, c.x1, c.x2 = c.x1, c.x2, x
	c.y0, c.y1, c.y2 = c.y1, c.y2, y
}

func (c *catmullRom) bezier(x, y float64) {
	x1, y1, x2, y2 := c.x1, c.y1, c.x2, c.y2

	if c.l01 > curveEpsilon {
		a := 2*c.l01p2 + 3*c.l01*c.l12 + c.l12p2
		n := 3 * c.l01 * (c.l01 + c.l12)
		x1 = (x1*a - c.x0*c.l12p2 + c.x2*c.l01p2) / n
		y1 = (y1*a - c.y0*c.l12p2 + c.y2*c.l01p2) / n
	}
	if c.l23 > curveEpsilon {
		b := 2*c.l23p2 + 3*c.l23*c.l12 + c.l12p2
		m := 3 * c.l23 * (c.l23 + c.l12)
		x2 = (x2*b + c.x1*c.l23p2 - x*c.l12p2) / m
		y2 = (y2*b + c.y1*c.l23p2 - y*c.l12p2) / m
	}
	c.p.CurveTo(x1, y1, x2, y2, c.x2, c.y2)
}

// CatmullRomLine returns an open centripetal Catmull-Rom path through pts.
func CatmullRomLine(pts []Point) string {
	var p Path
	c := &catmullRom{p: &p, alpha: 0.5, line: -1}
	c.lineStart()
	for _, pt := range pts {
		c.add(pt.X, pt.Y)
	}
	c.lineEnd()
	return p.String()
}

// Area describes a filled band between two curves sharing y-coordinates
// (vertical orientation) or x-coordinates (horizontal orientation).
type Area struct {
	// Upper is traced forward, Lower is traced backward.
	Upper, Lower []Point
}

// CatmullRomArea returns a closed path that smooths both edges of a with a
// centripetal Catmull-Rom curve. The two edges must have the same length.
func CatmullRomArea(a Area) string {
	var p Path
	if len(a.Upper) == 0 {
		return ""
	}
	c := &catmullRom{p: &p, alpha: 0.5, line: 0}
	c.lineStart()
	for _, pt := range a.Upper {
		c.add(pt.X, pt.Y)
	}
	c.lineEnd()
	c.lineStart()
	for i := len(a.Lower) - 1; i >= 0; i-- {
		c.add(a.Lower[i].X, a.Lower[i].Y)
	}
	c.lineEnd()
	return p.String()
}
