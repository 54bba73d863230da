package mount

import (
	"bytes"
	"fmt"
	"strconv"
)

// DefaultTooltipClass is the class used when NewTooltip is given none.
const DefaultTooltipClass = "hov-tooltip"

// Tooltip is a floating div that charts fill on hover. It starts hidden.
type Tooltip struct {
	id      string
	class   string
	content string
	opacity float64
}

// NewTooltip creates a hidden tooltip with the given class and appends it to
// m.
func NewTooltip(m *Mount, class string) *Tooltip {
	if class == "" {
		class = DefaultTooltipClass
	}
	t := &Tooltip{id: m.NextID("tooltip"), class: class}
	m.Append(t)
	return t
}

func (t *Tooltip) NodeID() string   { return t.id }
func (t *Tooltip) Class() string    { return t.class }
func (t *Tooltip) Content() string  { return t.content }
func (t *Tooltip) Opacity() float64 { return t.opacity }

// Show sets the content (trusted HTML) and makes the tooltip visible.
func (t *Tooltip) Show(html string) {
	t.content = html
	t.opacity = 1
}

// Hide makes the tooltip invisible and keeps its content.
func (t *Tooltip) Hide() { t.opacity = 0 }

func (t *Tooltip) Markup() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<div id="%s" class="%s" style="opacity:%s;z-index:1000;position:absolute;pointer-events:none">%s</div>`+"\n",
		t.id, t.class, strconv.FormatFloat(t.opacity, 'f', -1, 64), t.content)
	return buf.Bytes()
}
