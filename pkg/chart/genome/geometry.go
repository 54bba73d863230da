package genome

import (
	"fmt"

	"github.com/matzehuels/genoviz/pkg/svg"
)

// Rect is the computed geometry of one feature.
type Rect struct {
	Index  int     `json:"index"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Fill   string  `json:"fill"`
	LabelX float64 `json:"label_x"`
	LabelY float64 `json:"label_y"`
	// ArrowX is where the strand arrowhead is anchored: the end of a forward
	// feature or the start of a reverse one.
	ArrowX float64 `json:"arrow_x"`
}

// Geometry is the serializable layout of a track.
type Geometry struct {
	Chrom  string     `json:"chrom"`
	Extent [2]float64 `json:"extent"`
	Domain [2]float64 `json:"domain"`
	Width  float64    `json:"width"`
	Height float64    `json:"height"`
	Rects  []Rect     `json:"rects"`
}

// Rect returns the current geometry of feature i.
func (t *Track) Rect(i int) Rect {
	f, g := t.features[i], t.glyphs[i]
	x0, x1 := t.x.Map(f.Start), t.x.Map(f.End)
	arrow := x1
	if f.Strand == Reverse {
		arrow = x0
	}
	return Rect{
		Index:  i,
		X:      x0,
		Y:      t.y.Map(g.Offset),
		Width:  x1 - x0,
		Height: g.Height,
		Fill:   t.attrs.Get(t.rectID(i), "fill", g.Fill),
		LabelX: x0 + (x1-x0)/2,
		LabelY: t.y.Map(g.Offset - labelOffset),
		ArrowX: arrow,
	}
}

// Geometry returns the layout of every feature in input order.
func (t *Track) Geometry() Geometry {
	d0, d1 := t.x.Domain()
	geo := Geometry{
		Chrom:  t.chrom,
		Extent: [2]float64{t.min, t.max},
		Domain: [2]float64{d0, d1},
		Width:  t.style.Width,
		Height: t.style.Height,
		Rects:  make([]Rect, len(t.features)),
	}
	for i := range t.features {
		geo.Rects[i] = t.Rect(i)
	}
	return geo
}

// arrowPath is the arrowhead triangle for a glyph of height h pointing right
// (forward) or left (reverse).
func arrowPath(h float64, s Strand) string {
	tip := h / 2
	if s == Reverse {
		tip = -tip
	}
	return fmt.Sprintf("M0,0V%sL%s,%sZ", svg.N(h), svg.N(tip), svg.N(h/2))
}
