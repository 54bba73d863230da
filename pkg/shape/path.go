package shape

import (
	"math"
	"strconv"
	"strings"
)

// Point is a 2-D position in pixel space.
type Point struct{ X, Y float64 }

// Num formats a coordinate for path data, rounded to 3 decimals with
// trailing zeros removed.
func Num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Path accumulates path commands.
type Path struct {
	b strings.Builder
}

func (p *Path) cmd(c byte, vs ...float64) {
	p.b.WriteByte(c)
	for i, v := range vs {
		if i > 0 {
			p.b.WriteByte(',')
		}
		p.b.WriteString(Num(v))
	}
}

func (p *Path) MoveTo(x, y float64) { p.cmd('M', x, y) }
func (p *Path) LineTo(x, y float64) { p.cmd('L', x, y) }
func (p *Path) ClosePath()          { p.b.WriteByte('Z') }

func (p *Path) CurveTo(x1, y1, x2, y2, x, y float64) {
	p.cmd('C', x1, y1, x2, y2, x, y)
}

// ArcTo appends an elliptical arc with equal radii.
func (p *Path) ArcTo(r float64, large, sweep bool, x, y float64) {
	p.cmd('A', r, r, 0, b2f(large), b2f(sweep), x, y)
}

func (p *Path) String() string { return p.b.String() }

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
