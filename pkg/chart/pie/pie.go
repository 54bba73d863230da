// Package pie draws a pie chart of category counts with a hover tooltip.
//
// Slices follow the input order without sorting, colored by a Spectral ramp
// sized to the number of categories. Hovering a slice thins its stroke and
// shows a tooltip with the name, the grouped count and the percentage of the
// total.
package pie

import (
	"fmt"
	"html"
	"time"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/interact"
	"github.com/matzehuels/genoviz/pkg/mount"
	"github.com/matzehuels/genoviz/pkg/palette"
	"github.com/matzehuels/genoviz/pkg/scale"
	"github.com/matzehuels/genoviz/pkg/shape"
	"github.com/matzehuels/genoviz/pkg/svg"
)

const (
	innerRadius     = 10
	labelRadiusFrac = 0.8
	// valueLabelMinSpan is the smallest slice angle that gets a value
	// sub-label.
	valueLabelMinSpan = 0.25

	StrokeWidth      = ".2pt"
	HoverStrokeWidth = ".1pt"

	HoverDuration   = 100 * time.Millisecond
	TooltipDuration = 200 * time.Millisecond

	// DefaultLabelSize is the slice label font size in viewBox units.
	DefaultLabelSize = 4
)

// Option configures a Chart.
type Option func(*Chart)

// WithStyle overrides the default 100x100 size.
func WithStyle(s chart.Style) Option {
	return func(c *Chart) { c.style = c.style.Merge(s) }
}

// WithTooltipClass sets the class of the tooltip div.
func WithTooltipClass(class string) Option {
	return func(c *Chart) { c.tooltipClass = class }
}

// WithLabelSize sets the slice label font size; 0 hides labels.
func WithLabelSize(size float64) Option {
	return func(c *Chart) { c.labelSize = size }
}

// Chart is a pie chart session.
type Chart struct {
	id     string
	counts Counts
	total  float64
	colors *scale.Ordinal
	style  chart.Style

	slices []shape.Slice
	arc    shape.Arc
	label  shape.Arc

	tooltipClass string
	labelSize    float64
	tooltip      *mount.Tooltip
	attrs        *interact.Attrs
}

// Create validates counts, sets the range of colors to a Spectral ramp with
// one color per category, and appends the chart and its tooltip to m. A nil
// colors creates a private ordinal scale.
func Create(m *mount.Mount, colors *scale.Ordinal, counts Counts, opts ...Option) (*Chart, error) {
	c := &Chart{
		counts:       append(Counts(nil), counts...),
		style:        chart.DefaultStyle(chart.KindPie),
		tooltipClass: mount.DefaultTooltipClass,
		labelSize:    DefaultLabelSize,
		attrs:        interact.NewAttrs(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.style.Validate(); err != nil {
		return nil, err
	}
	if err := c.counts.Validate(); err != nil {
		return nil, err
	}

	if colors == nil {
		colors = scale.NewOrdinal(nil)
	}
	colors.SetRange(palette.PieSpectral(len(c.counts)))
	c.colors = colors

	c.total = c.counts.Total()
	c.slices = shape.Pie(c.counts.Values(), c.total)
	outer := min(c.style.Width, c.style.Height)/2 - 1
	c.arc = shape.Arc{Inner: innerRadius, Outer: outer}
	r := min(c.style.Width, c.style.Height) / 2 * labelRadiusFrac
	c.label = shape.Arc{Inner: r, Outer: r}

	c.id = m.NextID("pie")
	m.Append(c)
	c.tooltip = mount.NewTooltip(m, c.tooltipClass)
	return c, nil
}

func (c *Chart) NodeID() string   { return c.id }
func (c *Chart) Kind() chart.Kind { return chart.KindPie }
func (c *Chart) Markup() []byte   { return c.SVG() }

// Counts returns the chart's input.
func (c *Chart) Counts() Counts { return c.counts }

// Total returns the sum used for both layout and percentages.
func (c *Chart) Total() float64 { return c.total }

// Tooltip returns the tooltip node.
func (c *Chart) Tooltip() *mount.Tooltip { return c.tooltip }

// Slices returns the laid-out slices in input order.
func (c *Chart) Slices() []shape.Slice { return c.slices }

// Percent returns slice i's share of the total in percent.
func (c *Chart) Percent(i int) float64 {
	return 100 * c.counts[i].Value / c.total
}

// TooltipHTML returns the tooltip content for slice i, e.g.
// "A: 1,234 (30.00%)".
func (c *Chart) TooltipHTML(i int) string {
	e := c.counts[i]
	return fmt.Sprintf("%s: %s (%s%%)", html.EscapeString(e.Label), svg.Grouped(e.Value), svg.Fixed(c.Percent(i), 2))
}

func (c *Chart) arcID(i int) string { return fmt.Sprintf("%s-arc-%d", c.id, i) }
