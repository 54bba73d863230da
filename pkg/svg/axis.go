package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/genoviz/pkg/scale"
)

// Orient selects which side of the plot an axis is drawn on.
type Orient int

const (
	Bottom Orient = iota
	Left
)

const defaultTickSize = 6

// Tick is one labelled position along an axis.
type Tick struct {
	Pos   float64
	Label string
}

// LinearTicks returns n round ticks of s with labels formatted for the tick
// step.
func LinearTicks(s *scale.Linear, n int) []Tick {
	vals := s.Ticks(n)
	step := 0.0
	if len(vals) > 1 {
		step = vals[1] - vals[0]
	}
	out := make([]Tick, len(vals))
	for i, v := range vals {
		out[i] = Tick{Pos: s.Map(v), Label: TickLabel(v, step)}
	}
	return out
}

// BandTicks returns one tick per category of b.
func BandTicks(b *scale.Band) []Tick {
	out := make([]Tick, 0, len(b.Domain()))
	for _, c := range b.Domain() {
		pos, _ := b.Map(c)
		out = append(out, Tick{Pos: pos + b.Bandwidth()/2, Label: c})
	}
	return out
}

// Axis is an axis ready to be written.
type Axis struct {
	ID     string
	Class  string
	Orient Orient
	// Transform positions the axis group, e.g. translate(0,height).
	Transform string
	// Range is the extent of the domain line in pixels.
	Range [2]float64
	Ticks []Tick
	// TickSize defaults to 6. A negative size draws gridlines across the
	// plot.
	TickSize   float64
	HideLabels bool
	// LabelRotate rotates tick labels in degrees.
	LabelRotate float64
}

// WriteAxis writes a as a <g> with a domain path and one group per tick.
func WriteAxis(buf *bytes.Buffer, a Axis) {
	size := a.TickSize
	if size == 0 {
		size = defaultTickSize
	}
	k := 1.0
	if a.Orient == Left {
		k = -1
	}

	buf.WriteString(`  <g`)
	if a.ID != "" {
		fmt.Fprintf(buf, ` id="%s"`, EscapeXML(a.ID))
	}
	class := "axis"
	if a.Class != "" {
		class += " " + a.Class
	}
	fmt.Fprintf(buf, ` class="%s"`, class)
	if a.Transform != "" {
		fmt.Fprintf(buf, ` transform="%s"`, a.Transform)
	}
	anchor := "middle"
	if a.Orient == Left {
		anchor = "end"
	}
	fmt.Fprintf(buf, ` fill="none" font-size="10" font-family="sans-serif" text-anchor="%s">`+"\n", anchor)

	r0, r1 := a.Range[0], a.Range[1]
	outer := k * size
	if a.Orient == Bottom {
		fmt.Fprintf(buf, `    <path class="domain" stroke="currentColor" d="M%s,%sV0H%sV%s"/>`+"\n",
			N(r0), N(outer), N(r1), N(outer))
	} else {
		fmt.Fprintf(buf, `    <path class="domain" stroke="currentColor" d="M%s,%sH0V%sH%s"/>`+"\n",
			N(outer), N(r0), N(r1), N(outer))
	}

	for _, t := range a.Ticks {
		writeTick(buf, a, t, k*size)
	}
	buf.WriteString("  </g>\n")
}

func writeTick(buf *bytes.Buffer, a Axis, t Tick, length float64) {
	labelOffset := max(length, 0) + 3
	if a.Orient == Left {
		labelOffset = -(max(-length, 0) + 3)
	}

	if a.Orient == Bottom {
		fmt.Fprintf(buf, `    <g class="tick" transform="translate(%s,0)">`, N(t.Pos))
		fmt.Fprintf(buf, `<line stroke="currentColor" y2="%s"/>`, N(length))
	} else {
		fmt.Fprintf(buf, `    <g class="tick" transform="translate(0,%s)">`, N(t.Pos))
		fmt.Fprintf(buf, `<line stroke="currentColor" x2="%s"/>`, N(length))
	}

	if !a.HideLabels {
		switch {
		case a.Orient == Bottom && a.LabelRotate != 0:
			fmt.Fprintf(buf, `<text fill="currentColor" transform="translate(0,%s) rotate(%s)" dy="0.32em" text-anchor="start">%s</text>`,
				N(labelOffset), N(a.LabelRotate), EscapeXML(t.Label))
		case a.Orient == Bottom:
			fmt.Fprintf(buf, `<text fill="currentColor" y="%s" dy="0.71em">%s</text>`,
				N(labelOffset), EscapeXML(t.Label))
		default:
			fmt.Fprintf(buf, `<text fill="currentColor" x="%s" dy="0.32em">%s</text>`,
				N(labelOffset), EscapeXML(t.Label))
		}
	}
	buf.WriteString("</g>\n")
}
