package violin

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/genoviz/pkg/shape"
	"github.com/matzehuels/genoviz/pkg/svg"
)

const violinJS = `
    (function () {
      var svg = document.getElementById('__ID__');
      if (!svg) return;
      svg.querySelectorAll('.violin').forEach(function (v) {
        var detail = { key: v.dataset.key, n: +v.dataset.n };
        v.addEventListener('click', function () {
          v.setAttribute('stroke-width', '1.5');
          svg.dispatchEvent(new CustomEvent('genoviz:click', { detail: detail }));
        });
        v.addEventListener('mouseout', function () {
          v.setAttribute('stroke-width', '0.5');
          svg.dispatchEvent(new CustomEvent('genoviz:leave', { detail: detail }));
        });
      });
    })();`

const violinCSS = `
    .violin { cursor: pointer; }
    .jitter { pointer-events: none; }`

// Violin is the serializable geometry of one category's silhouette.
type Violin struct {
	Index     int     `json:"index"`
	Key       string  `json:"key"`
	X         float64 `json:"x"`
	HalfWidth float64 `json:"half_width"`
	Color     string  `json:"color"`
	Path      string  `json:"path"`
}

// Point is the serializable position of one jittered record.
type Point struct {
	Index int     `json:"index"`
	Key   string  `json:"key"`
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
}

// Geometry is the serializable layout of a violin chart.
type Geometry struct {
	AxisY      float64  `json:"axis_y"`
	WidthScale float64  `json:"width_scale"`
	Violins    []Violin `json:"violins"`
	Points     []Point  `json:"points"`
}

// Path returns the silhouette of group g, centred on x = 0.
func (c *Chart) Path(g int) string {
	curve := c.groups[g].Curve
	area := shape.Area{
		Upper: make([]shape.Point, len(curve)),
		Lower: make([]shape.Point, len(curve)),
	}
	for i, p := range curve {
		y := c.y.Map(p.X)
		area.Upper[i] = shape.Point{X: p.V * c.widthK, Y: y}
		area.Lower[i] = shape.Point{X: -p.V * c.widthK, Y: y}
	}
	return shape.CatmullRomArea(area)
}

// Violin returns the layout of group g.
func (c *Chart) Violin(g int) Violin {
	key := c.groups[g].Key
	x, _ := c.band.Map(key)
	return Violin{
		Index:     g,
		Key:       key,
		X:         x,
		HalfWidth: c.HalfWidth(g),
		Color:     c.colors.Map(key),
		Path:      c.Path(g),
	}
}

// Point returns the jittered position of record i.
func (c *Chart) Point(i int) Point {
	return Point{Index: i, Key: c.keys[i], CX: c.jitter[i], CY: c.y.Map(c.values[i])}
}

// Geometry returns the layout of every silhouette and point.
func (c *Chart) Geometry() Geometry {
	geo := Geometry{
		AxisY:      c.axisY(),
		WidthScale: c.widthK,
		Violins:    make([]Violin, len(c.groups)),
		Points:     make([]Point, len(c.records)),
	}
	for g := range c.groups {
		geo.Violins[g] = c.Violin(g)
	}
	for i := range c.records {
		geo.Points[i] = c.Point(i)
	}
	return geo
}

// SVG renders the chart: value axis, clipped jitter points and
// silhouettes, then the category axis with rotated labels.
func (c *Chart) SVG() []byte {
	var buf bytes.Buffer
	s := c.style
	w, h := s.OuterWidth(), s.OuterHeight()
	axisY := c.axisY()
	clipID := c.id + "-clip"

	svg.Open(&buf, svg.Header{
		ID:      c.id,
		Class:   "genoviz violin",
		ViewBox: svg.ViewBox{W: w, H: h},
		Width:   w,
		Height:  h,
	})
	fmt.Fprintf(&buf, "  <defs><clipPath id=\"%s\"><rect width=\"%s\" height=\"%s\"/></clipPath></defs>\n",
		clipID, svg.N(s.Width), svg.N(axisY))
	fmt.Fprintf(&buf, "  <g transform=\"%s\">\n", svg.Translate(s.Margin.Left, s.Margin.Top))

	svg.WriteAxis(&buf, svg.Axis{
		ID:     c.id + "-y",
		Class:  "y",
		Orient: svg.Left,
		Range:  [2]float64{0, axisY},
		Ticks:  svg.LinearTicks(c.y, 5),
	})

	fmt.Fprintf(&buf, "  <g clip-path=\"url(#%s)\">\n", clipID)
	buf.WriteString("  <g class=\"jitter\" fill=\"#7F7F7F\" stroke=\"black\" stroke-width=\"0.5\">\n")
	for i := range c.records {
		p := c.Point(i)
		fmt.Fprintf(&buf, `    <circle id="%s" cx="%s" cy="%s" r="%s"/>`+"\n",
			c.pointID(i), svg.N(p.CX), svg.N(p.CY), svg.N(PointRadius))
	}
	buf.WriteString("  </g>\n")

	for g, grp := range c.groups {
		v := c.Violin(g)
		fmt.Fprintf(&buf, `    <path id="%s" class="violin" transform="%s" d="%s" fill="%s" opacity=".5" stroke="black" stroke-width="%s" data-key="%s" data-n="%d"/>`+"\n",
			c.violinID(g), svg.Translate(v.X, 0), v.Path, v.Color,
			c.attrs.Get(c.violinID(g), "stroke-width", StrokeWidth), svg.EscapeXML(v.Key), len(grp.Values))
	}
	buf.WriteString("  </g>\n")

	svg.WriteAxis(&buf, svg.Axis{
		ID:          c.id + "-x",
		Class:       "x",
		Orient:      svg.Bottom,
		Transform:   svg.Translate(0, axisY),
		Range:       [2]float64{0, s.Width},
		Ticks:       svg.BandTicks(c.band),
		LabelRotate: 90,
	})
	buf.WriteString("  </g>\n")

	svg.Interaction(&buf, violinCSS, strings.ReplaceAll(violinJS, "__ID__", c.id))
	svg.Close(&buf)
	return buf.Bytes()
}
