package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/genoviz/pkg/shape"
)

// ViewBox is the user coordinate system of a document.
type ViewBox struct {
	X, Y, W, H float64
}

func (v ViewBox) String() string {
	return fmt.Sprintf("%s %s %s %s", N(v.X), N(v.Y), N(v.W), N(v.H))
}

// Header describes the root <svg> element.
type Header struct {
	ID      string
	Class   string
	ViewBox ViewBox
	Width   float64
	Height  float64
	// Data holds data-* attributes as name/value pairs, written in order.
	Data [][2]string
}

// Open writes the root element start tag.
func Open(buf *bytes.Buffer, h Header) {
	buf.WriteString(`<svg xmlns="http://www.w3.org/2000/svg"`)
	if h.ID != "" {
		fmt.Fprintf(buf, ` id="%s"`, EscapeXML(h.ID))
	}
	if h.Class != "" {
		fmt.Fprintf(buf, ` class="%s"`, EscapeXML(h.Class))
	}
	fmt.Fprintf(buf, ` viewBox="%s"`, h.ViewBox)
	if h.Width > 0 {
		fmt.Fprintf(buf, ` width="%s"`, N(h.Width))
	}
	if h.Height > 0 {
		fmt.Fprintf(buf, ` height="%s"`, N(h.Height))
	}
	for _, kv := range h.Data {
		fmt.Fprintf(buf, ` data-%s="%s"`, kv[0], EscapeXML(kv[1]))
	}
	buf.WriteString(">\n")
}

// Close writes the root element end tag.
func Close(buf *bytes.Buffer) {
	buf.WriteString("</svg>\n")
}

// Interaction embeds a style block and a script block. Either may be empty.
func Interaction(buf *bytes.Buffer, css, js string) {
	if css != "" {
		fmt.Fprintf(buf, "  <style>%s\n  </style>\n", css)
	}
	if js != "" {
		fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", js)
	}
}

// N formats a coordinate for attribute values.
func N(v float64) string { return shape.Num(v) }

// Translate returns a translate transform.
func Translate(x, y float64) string {
	return fmt.Sprintf("translate(%s,%s)", N(x), N(y))
}

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
