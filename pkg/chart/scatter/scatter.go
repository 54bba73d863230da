// Package scatter draws a 2-D embedding (t-SNE, UMAP, PCA) as colored dots.
//
// Both axes are symmetric around the origin with 20% headroom over the
// largest absolute coordinate. Each record is drawn as a zero-length stroked
// path with a round cap, colored by one of its columns through an ordinal
// scale. Clicking a dot thickens it and invokes a callback; moving the
// pointer out restores it and invokes another.
package scatter

import (
	"fmt"
	"math"
	"time"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/interact"
	"github.com/matzehuels/genoviz/pkg/mount"
	"github.com/matzehuels/genoviz/pkg/palette"
	"github.com/matzehuels/genoviz/pkg/scale"
	"github.com/matzehuels/genoviz/pkg/svg"
)

const (
	DefaultColorBy     = 2
	DefaultStrokeWidth = 4.0

	// Headroom is the factor applied to the largest absolute coordinate.
	Headroom = 1.2

	ClickDuration = 100 * time.Millisecond
	LeaveDuration = 20 * time.Millisecond
)

// Option configures a Chart.
type Option func(*Chart)

// WithColorScale shares colors with other charts.
func WithColorScale(o *scale.Ordinal) Option { return func(c *Chart) { c.colors = o } }

// WithColorBy selects the column used for color.
func WithColorBy(col int) Option { return func(c *Chart) { c.colorBy = col } }

// WithStrokeWidth sets the dot diameter.
func WithStrokeWidth(w float64) Option { return func(c *Chart) { c.strokeWidth = w } }

// WithOnClick sets the click callback.
func WithOnClick(fn chart.Callback) Option { return func(c *Chart) { c.onClick = fn } }

// WithOnLeave sets the pointer-out callback.
func WithOnLeave(fn chart.Callback) Option { return func(c *Chart) { c.onLeave = fn } }

// Chart is a scatter session.
type Chart struct {
	id      string
	records []chart.Record
	xs, ys  []float64
	style   chart.Style

	x, y        *scale.Linear
	colors      *scale.Ordinal
	colorBy     int
	strokeWidth float64
	onClick     chart.Callback
	onLeave     chart.Callback

	attrs *interact.Attrs
}

// Create parses the first two columns of every record as coordinates and
// appends the chart to m. A zero style uses the defaults.
func Create(m *mount.Mount, records []chart.Record, style chart.Style, opts ...Option) (*Chart, error) {
	c := &Chart{
		records:     records,
		style:       chart.DefaultStyle(chart.KindScatter).Merge(style),
		colorBy:     DefaultColorBy,
		strokeWidth: DefaultStrokeWidth,
		onClick:     chart.Noop,
		onLeave:     chart.Noop,
		attrs:       interact.NewAttrs(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.style.Validate(); err != nil {
		return nil, err
	}
	if !(c.strokeWidth > 0) {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "stroke width must be positive, got %v", c.strokeWidth)
	}

	c.xs = make([]float64, len(records))
	c.ys = make([]float64, len(records))
	maxX, maxY := 0.0, 0.0
	for i, r := range records {
		var err error
		if c.xs[i], err = r.Float(0, i); err != nil {
			return nil, err
		}
		if c.ys[i], err = r.Float(1, i); err != nil {
			return nil, err
		}
		if err := errors.ValidateColumn(c.colorBy, len(r), i); err != nil {
			return nil, err
		}
		maxX = math.Max(maxX, math.Abs(c.xs[i]))
		maxY = math.Max(maxY, math.Abs(c.ys[i]))
	}

	if c.colors == nil {
		keys := make([]string, len(records))
		for i, r := range records {
			keys[i] = r.Col(DefaultColorBy)
		}
		c.colors = scale.NewOrdinal(palette.Category10).WithDomain(keys)
	}

	c.x = scale.NewLinear(-maxX*Headroom, maxX*Headroom, 0, c.style.Width)
	c.y = scale.NewLinear(-maxY*Headroom, maxY*Headroom, c.style.Height, 0)
	c.id = m.NextID("tsne")
	m.Append(c)
	return c, nil
}

func (c *Chart) NodeID() string   { return c.id }
func (c *Chart) Kind() chart.Kind { return chart.KindScatter }
func (c *Chart) Markup() []byte   { return c.SVG() }

// XDomain returns the symmetric x domain.
func (c *Chart) XDomain() (float64, float64) { return c.x.Domain() }

// YDomain returns the symmetric y domain.
func (c *Chart) YDomain() (float64, float64) { return c.y.Domain() }

// Records returns the input records.
func (c *Chart) Records() []chart.Record { return c.records }

// Color returns the stroke color of point i.
func (c *Chart) Color(i int) string {
	return c.colors.Map(c.records[i].Col(c.colorBy))
}

// StrokeWidth returns the current stroke width of point i.
func (c *Chart) StrokeWidth(i int) string {
	return c.attrs.Get(c.pointID(i), "stroke-width", svg.N(c.strokeWidth))
}

func (c *Chart) pointID(i int) string { return fmt.Sprintf("%s-pt-%d", c.id, i) }

// Click thickens point i and invokes the click callback with its record.
func (c *Chart) Click(i int) ([]interact.Patch, error) {
	if err := c.checkIndex(i); err != nil {
		return nil, err
	}
	p := c.attrs.Apply([]interact.Patch{
		{Target: c.pointID(i), Attr: "stroke-width", Value: svg.N(c.strokeWidth * 2), Duration: ClickDuration},
	})
	c.onClick(c.records[i])
	return p, nil
}

// Leave restores point i and invokes the leave callback with its record.
func (c *Chart) Leave(i int) ([]interact.Patch, error) {
	if err := c.checkIndex(i); err != nil {
		return nil, err
	}
	p := c.attrs.Apply([]interact.Patch{
		{Target: c.pointID(i), Attr: "stroke-width", Value: svg.N(c.strokeWidth), Duration: LeaveDuration},
	})
	c.onLeave(c.records[i])
	return p, nil
}

func (c *Chart) checkIndex(i int) error {
	if i < 0 || i >= len(c.records) {
		return errors.New(errors.ErrCodeInvalidEvent, "point index %d out of range [0, %d)", i, len(c.records))
	}
	return nil
}
