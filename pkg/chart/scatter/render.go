package scatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/matzehuels/genoviz/pkg/svg"
)

const scatterJS = `
    (function () {
      var svg = document.getElementById('__ID__');
      if (!svg) return;
      var w = +svg.dataset.stroke;
      svg.querySelectorAll('.tsne-circle').forEach(function (p) {
        p.addEventListener('click', function () {
          p.setAttribute('stroke-width', w * 2);
          svg.dispatchEvent(new CustomEvent('genoviz:click', { detail: JSON.parse(p.dataset.record) }));
        });
        p.addEventListener('mouseout', function () {
          p.setAttribute('stroke-width', w);
          svg.dispatchEvent(new CustomEvent('genoviz:leave', { detail: JSON.parse(p.dataset.record) }));
        });
      });
    })();`

const scatterCSS = `
    .tsne-circle { cursor: pointer; transition: stroke-width 0.1s; }`

// Point is the serializable geometry of one record.
type Point struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
	Key   string  `json:"key"`
}

// Geometry is the serializable layout of a scatter chart.
type Geometry struct {
	XDomain     [2]float64 `json:"x_domain"`
	YDomain     [2]float64 `json:"y_domain"`
	StrokeWidth float64    `json:"stroke_width"`
	Points      []Point    `json:"points"`
}

// Point returns the pixel position and color of record i.
func (c *Chart) Point(i int) Point {
	return Point{
		Index: i,
		X:     c.x.Map(c.xs[i]),
		Y:     c.y.Map(c.ys[i]),
		Color: c.Color(i),
		Key:   c.records[i].Col(c.colorBy),
	}
}

// Geometry returns the layout of every point.
func (c *Chart) Geometry() Geometry {
	x0, x1 := c.x.Domain()
	y0, y1 := c.y.Domain()
	geo := Geometry{
		XDomain:     [2]float64{x0, x1},
		YDomain:     [2]float64{y0, y1},
		StrokeWidth: c.strokeWidth,
		Points:      make([]Point, len(c.records)),
	}
	for i := range c.records {
		geo.Points[i] = c.Point(i)
	}
	return geo
}

// SVG renders the chart. The viewBox is 1.2 times wider than the plot area
// while the displayed width is 0.8 times it plus margins.
func (c *Chart) SVG() []byte {
	var buf bytes.Buffer
	s := c.style
	svg.Open(&buf, svg.Header{
		ID:      c.id,
		Class:   "genoviz tsne",
		ViewBox: svg.ViewBox{W: s.Width * Headroom, H: s.OuterHeight()},
		Width:   0.8*s.Width + s.Margin.Left + s.Margin.Right,
		Height:  s.OuterHeight(),
		Data:    [][2]string{{"stroke", svg.N(c.strokeWidth)}},
	})

	fmt.Fprintf(&buf, "  <g transform=\"%s\">\n", svg.Translate(s.Margin.Left, s.Margin.Top))
	buf.WriteString("  <g fill=\"none\" stroke-linecap=\"round\">\n")
	for i, r := range c.records {
		p := c.Point(i)
		fmt.Fprintf(&buf, `    <path id="%s" class="tsne-circle" data-index="%d" data-record="%s" d="M%s,%sh0" stroke="%s" stroke-width="%s"/>`+"\n",
			c.pointID(i), i, svg.EscapeXML(recordJSON(r)), svg.N(p.X), svg.N(p.Y), p.Color, c.StrokeWidth(i))
	}
	buf.WriteString("  </g>\n  </g>\n")

	svg.Interaction(&buf, scatterCSS, strings.ReplaceAll(scatterJS, "__ID__", c.id))
	svg.Close(&buf)
	return buf.Bytes()
}

func recordJSON(r []string) string {
	b, _ := json.Marshal(r)
	return string(b)
}
