package pie

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/matzehuels/genoviz/pkg/svg"
)

const pieCSS = `
    .pie-arc { cursor: pointer; transition: stroke-width 0.1s; }`

const pieJS = `
    (function () {
      var svg = document.getElementById('__ID__');
      var tip = document.getElementById(svg && svg.dataset.tooltip);
      if (!svg || !tip) return;
      tip.style.transition = 'opacity 0.2s';
      svg.querySelectorAll('.pie-arc').forEach(function (p) {
        p.addEventListener('mouseover', function (evt) {
          p.setAttribute('stroke-width', '.1pt');
          tip.innerHTML = p.dataset.tip;
          tip.style.opacity = 1;
          var box = tip.parentNode.getBoundingClientRect();
          tip.style.left = (evt.clientX - box.left + 12) + 'px';
          tip.style.top = (evt.clientY - box.top + 12) + 'px';
        });
        p.addEventListener('mouseout', function () {
          p.setAttribute('stroke-width', '.2pt');
          tip.style.opacity = 0;
        });
      });
    })();`

// Slice is the serializable geometry of one slice.
type Slice struct {
	Label      string  `json:"label"`
	Value      float64 `json:"value"`
	Percent    float64 `json:"percent"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	Fill       string  `json:"fill"`
	Path       string  `json:"path"`
	LabelX     float64 `json:"label_x"`
	LabelY     float64 `json:"label_y"`
	ShowValue  bool    `json:"show_value"`
}

// Geometry is the serializable layout of a pie chart.
type Geometry struct {
	Total  float64 `json:"total"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Slices []Slice `json:"slices"`
}

// Geometry returns the layout of every slice in input order.
func (c *Chart) Geometry() Geometry {
	geo := Geometry{Total: c.total, Width: c.style.Width, Height: c.style.Height}
	for i, s := range c.slices {
		e := c.counts[i]
		pos := c.label.Centroid(s)
		geo.Slices = append(geo.Slices, Slice{
			Label:      e.Label,
			Value:      e.Value,
			Percent:    c.Percent(i),
			StartAngle: s.StartAngle,
			EndAngle:   s.EndAngle,
			Fill:       c.colors.Map(e.Label),
			Path:       c.arc.Path(s),
			LabelX:     pos.X,
			LabelY:     pos.Y,
			ShowValue:  s.Span() > valueLabelMinSpan,
		})
	}
	return geo
}

// SVG renders the chart in its current hover state.
func (c *Chart) SVG() []byte {
	var buf bytes.Buffer
	w, h := c.style.Width, c.style.Height
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" class="genoviz pie" viewBox="%s" width="%s" height="%s" data-tooltip="%s">`+"\n",
		c.id, svg.ViewBox{X: -w / 2, Y: -h / 2, W: w, H: h}, svg.N(w), svg.N(h), c.tooltip.NodeID())

	geo := c.Geometry()
	fmt.Fprintf(&buf, "  <g stroke=\"white\" stroke-width=\"%s\">\n", StrokeWidth)
	for i, s := range geo.Slices {
		fmt.Fprintf(&buf, `    <path id="%s" class="pie-arc" data-index="%d" data-tip="%s" fill="%s" stroke-width="%s" d="%s"/>`+"\n",
			c.arcID(i), i, html.EscapeString(c.TooltipHTML(i)), s.Fill,
			c.attrs.Get(c.arcID(i), "stroke-width", StrokeWidth), s.Path)
	}
	buf.WriteString("  </g>\n")

	if c.labelSize > 0 {
		fmt.Fprintf(&buf, "  <g font-family=\"sans-serif\" font-size=\"%s\" text-anchor=\"middle\">\n", svg.N(c.labelSize))
		for _, s := range geo.Slices {
			fmt.Fprintf(&buf, `    <text transform="%s"><tspan y="-0.4em" font-weight="bold">%s</tspan>`,
				svg.Translate(s.LabelX, s.LabelY), svg.EscapeXML(s.Label))
			if s.ShowValue {
				fmt.Fprintf(&buf, `<tspan x="0" y="0.7em" fill-opacity="0.7">%s</tspan>`, svg.Grouped(s.Value))
			}
			buf.WriteString("</text>\n")
		}
		buf.WriteString("  </g>\n")
	}

	fmt.Fprintf(&buf, "  <text x=\"-8\" y=\"0\" fill=\"black\" style=\"font-size: 2pt; font-weight: 900\">Total = %s</text>\n",
		strconv.FormatFloat(c.total, 'f', -1, 64))

	svg.Interaction(&buf, pieCSS, strings.ReplaceAll(pieJS, "__ID__", c.id))
	svg.Close(&buf)
	return buf.Bytes()
}
