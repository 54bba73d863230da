package genome

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/genoviz/pkg/svg"
)

const trackCSS = `
    .gtf-rect { cursor: pointer; transition: fill 0.1s, x 1s, width 1s; }
    .gtf-text { font-family: arial; transition: x 1s; }
    .brush .selection { fill: #777; fill-opacity: 0.3; stroke: #fff; }
    .x-grid line { stroke: #ddd; }
    .x-grid .domain { display: none; }`

// SVG renders the track in its current zoom and hover state.
func (t *Track) SVG() []byte {
	var buf bytes.Buffer
	d0, d1 := t.x.Domain()
	w, h := t.style.Width, t.style.Height

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" class="genoviz genome" viewBox="0 0 %s %s" width="%s" height="%s" data-min="%v" data-max="%v" data-d0="%v" data-d1="%v" data-width="%s" data-height="%s">`+"\n",
		t.id, svg.N(t.style.OuterWidth()), svg.N(t.style.OuterHeight()),
		svg.N(t.style.OuterWidth()), svg.N(t.style.OuterHeight()),
		t.min, t.max, d0, d1, svg.N(w), svg.N(h))
	fmt.Fprintf(&buf, "  <defs><clipPath id=\"%s-clip\"><rect width=\"%s\" height=\"%s\"/></clipPath></defs>\n",
		t.id, svg.N(w), svg.N(h+labelOffset*2))
	fmt.Fprintf(&buf, "  <g transform=\"%s\">\n", svg.Translate(t.style.Margin.Left, t.style.Margin.Top))

	buf.WriteString(t.gridMarkup())
	fmt.Fprintf(&buf, "  <g class=\"brush\"><rect class=\"overlay\" width=\"%s\" height=\"%s\" fill=\"none\" pointer-events=\"all\" cursor=\"crosshair\"/>"+
		"<rect id=\"%s\" class=\"selection\" display=\"none\" y=\"0\" height=\"%s\"/></g>\n",
		svg.N(w), svg.N(h), t.brushID(), svg.N(h))
	buf.WriteString(t.axisMarkup())

	fmt.Fprintf(&buf, "  <g clip-path=\"url(#%s-clip)\">\n", t.id)
	for i := range t.features {
		t.writeFeature(&buf, i)
	}
	buf.WriteString("  </g>\n")

	t.writeLegend(&buf)
	buf.WriteString("  </g>\n")

	svg.Interaction(&buf, trackCSS, strings.ReplaceAll(trackJS, "__ID__", t.id))
	svg.Close(&buf)
	return buf.Bytes()
}

func (t *Track) writeFeature(buf *bytes.Buffer, i int) {
	f, r := t.features[i], t.Rect(i)
	anchor := f.End
	class := "forward"
	if f.Strand == Reverse {
		anchor = f.Start
		class = "reverse"
	}

	fmt.Fprintf(buf, `    <rect id="%s" class="gtf-rect" data-index="%d" data-start="%v" data-end="%v" data-fill="%s" x="%s" y="%s" width="%s" height="%s" fill="%s"><title>%s</title></rect>`+"\n",
		t.rectID(i), i, f.Start, f.End, t.glyphs[i].Fill,
		svg.N(r.X), svg.N(r.Y), svg.N(r.Width), svg.N(r.Height), r.Fill, f.Type)
	fmt.Fprintf(buf, `    <text id="%s" class="gtf-text" data-start="%v" data-end="%v" x="%s" y="%s" font-size="%s" text-anchor="middle">%s</text>`+"\n",
		t.labelID(i), f.Start, f.End, svg.N(r.LabelX), svg.N(r.LabelY), labelSize, svg.EscapeXML(f.Name))
	fmt.Fprintf(buf, `    <g id="%s" class="%s" data-at="%v" data-y="%s" transform="%s"><path d="%s" fill="%s"/></g>`+"\n",
		t.arrowID(i), class, anchor, svg.N(r.Y), svg.Translate(r.ArrowX, r.Y), arrowPath(r.Height, f.Strand), t.glyphs[i].Fill)
}

func (t *Track) axisMarkup() string {
	var buf bytes.Buffer
	svg.WriteAxis(&buf, svg.Axis{
		ID:        t.axisID(),
		Class:     "x-axis",
		Orient:    svg.Bottom,
		Transform: svg.Translate(0, t.style.Height),
		Range:     [2]float64{0, t.style.Width},
		Ticks:     svg.LinearTicks(t.x, axisTicks),
	})
	return buf.String()
}

func (t *Track) gridMarkup() string {
	var buf bytes.Buffer
	svg.WriteAxis(&buf, svg.Axis{
		ID:         t.gridID(),
		Class:      "x-grid",
		Orient:     svg.Bottom,
		Transform:  svg.Translate(0, t.style.Height),
		Range:      [2]float64{0, t.style.Width},
		Ticks:      svg.LinearTicks(t.x, axisTicks),
		TickSize:   -t.style.Height,
		HideLabels: true,
	})
	return buf.String()
}

type legendEntry struct {
	label string
	color string
	y     float64
	width float64
}

var legendEntries = []legendEntry{
	{"TE", "#479AB3", 22, 10},
	{"Genes", "#0E0080", 34.5, 10},
	{"gRNA", "red", 47, 8},
}

func (t *Track) writeLegend(buf *bytes.Buffer) {
	buf.WriteString("  <g class=\"legend\" font-family=\"arial\" fill=\"black\">\n")
	buf.WriteString(`    <rect x="8" y="0" width="100" height="55" stroke="black" stroke-width="0.5" fill="white"/>` + "\n")
	buf.WriteString(`    <text x="40" y="13" font-size="11px">5' =&gt;  3'</text>` + "\n")
	for _, e := range legendEntries {
		fmt.Fprintf(buf, `    <line x1="15" x2="45" y1="%s" y2="%s" stroke-width="%s" stroke="%s"/>`+"\n",
			svg.N(e.y), svg.N(e.y), svg.N(e.width), e.color)
		fmt.Fprintf(buf, `    <text x="50" y="%s" font-size="10px">%s</text>`+"\n", svg.N(e.y+3), e.label)
	}
	fmt.Fprintf(buf, `    <text x="%s" y="0" font-size="12px" font-weight="600">chromosome%s</text>`+"\n",
		svg.N(t.style.Width/2), svg.EscapeXML(t.chrom))
	fmt.Fprintf(buf, `    <text class="hint" x="%s" y="%s" font-size="8px">Select to zoom. Double-click to recover</text>`+"\n",
		svg.N(t.style.Width-200), svg.N(t.style.Height-10))
	buf.WriteString("  </g>\n")
}
