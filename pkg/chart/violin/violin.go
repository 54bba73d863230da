// Package violin draws per-category value distributions as mirrored density
// silhouettes overlaid with jittered points.
//
// Categories (column 2 of each record) are placed on a band scale in
// first-seen order; values (the last column) are read on a fixed 0-5 axis.
// Each category's values are binned and kernel-smoothed, and all
// silhouettes share one width scale so the widest peak across the chart is
// MaxHalfWidth pixels either side of its axis.
package violin

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/density"
	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/interact"
	"github.com/matzehuels/genoviz/pkg/mount"
	"github.com/matzehuels/genoviz/pkg/palette"
	"github.com/matzehuels/genoviz/pkg/scale"
)

const (
	// CategoryColumn holds the grouping key of a record.
	CategoryColumn = 2

	DefaultSeed = 42

	MaxHalfWidth = 20.0
	JitterWidth  = 5.0
	PointRadius  = 1.0

	// ValueMin and ValueMax bound the value axis. Values outside are clipped.
	ValueMin = 0.0
	ValueMax = 5.0

	StrokeWidth      = "0.5"
	HoverStrokeWidth = "1.5"

	ClickDuration = 100 * time.Millisecond
	LeaveDuration = 20 * time.Millisecond
)

// Option configures a Chart.
type Option func(*Chart)

// WithColorScale shares category colors with other charts.
func WithColorScale(o *scale.Ordinal) Option { return func(c *Chart) { c.colors = o } }

// WithSeed sets the jitter seed.
func WithSeed(seed uint64) Option { return func(c *Chart) { c.seed = seed } }

// WithOnClick sets the silhouette click callback. It receives the category
// key and the number of values in the group.
func WithOnClick(fn chart.Callback) Option { return func(c *Chart) { c.onClick = fn } }

// WithOnLeave sets the silhouette pointer-out callback.
func WithOnLeave(fn chart.Callback) Option { return func(c *Chart) { c.onLeave = fn } }

// Chart is a violin session.
type Chart struct {
	id      string
	records []chart.Record
	keys    []string
	values  []float64
	jitter  []float64

	groups []density.Group
	widthK float64

	style   chart.Style
	band    *scale.Band
	y       *scale.Linear
	colors  *scale.Ordinal
	seed    uint64
	onClick chart.Callback
	onLeave chart.Callback

	attrs *interact.Attrs
}

// Create groups records by category, estimates each group's density and
// appends the chart to m. A zero style uses the defaults.
func Create(m *mount.Mount, records []chart.Record, style chart.Style, opts ...Option) (*Chart, error) {
	c := &Chart{
		records: records,
		style:   chart.DefaultStyle(chart.KindViolin).Merge(style),
		seed:    DefaultSeed,
		onClick: chart.Noop,
		onLeave: chart.Noop,
		attrs:   interact.NewAttrs(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.style.Validate(); err != nil {
		return nil, err
	}

	c.keys = make([]string, len(records))
	c.values = make([]float64, len(records))
	index := make(map[string]int)
	for i, r := range records {
		// The value column is the last one and must follow the category.
		if err := errors.ValidateColumn(CategoryColumn, len(r)-1, i); err != nil {
			return nil, err
		}
		v, err := r.Float(len(r)-1, i)
		if err != nil {
			return nil, err
		}
		key := r[CategoryColumn]
		c.keys[i], c.values[i] = key, v
		g, ok := index[key]
		if !ok {
			g = len(c.groups)
			index[key] = g
			c.groups = append(c.groups, density.Group{Key: key})
		}
		c.groups[g].Values = append(c.groups[g].Values, v)
	}

	c.groups = density.Estimate(c.groups)
	c.widthK = density.Normalize(c.groups, MaxHalfWidth)

	categories := make([]string, len(c.groups))
	for i, g := range c.groups {
		categories[i] = g.Key
	}
	if c.colors == nil {
		c.colors = scale.NewOrdinal(palette.Category10).WithDomain(categories)
	}
	c.band = scale.NewBand(categories, 0, c.style.Width).Padding(1)
	c.y = scale.NewLinear(ValueMin, ValueMax, 0, c.axisY())

	rng := rand.New(rand.NewPCG(c.seed, c.seed))
	c.jitter = make([]float64, len(records))
	for i, key := range c.keys {
		x, _ := c.band.Map(key)
		c.jitter[i] = x - JitterWidth/2 + rng.Float64()*JitterWidth
	}

	c.id = m.NextID("violin")
	m.Append(c)
	return c, nil
}

// axisY is where the category axis sits and the extent of the value axis.
func (c *Chart) axisY() float64 { return c.style.OuterHeight() * 0.5 }

func (c *Chart) NodeID() string   { return c.id }
func (c *Chart) Kind() chart.Kind { return chart.KindViolin }
func (c *Chart) Markup() []byte   { return c.SVG() }

// Categories returns the category keys in first-seen order.
func (c *Chart) Categories() []string { return c.band.Domain() }

// Groups returns each category's values, bins and smoothed curve.
func (c *Chart) Groups() []density.Group { return c.groups }

// HalfWidth returns the widest half-width of group g's silhouette in
// pixels.
func (c *Chart) HalfWidth(g int) float64 {
	return density.Peak(c.groups[g].Curve) * c.widthK
}

func (c *Chart) violinID(g int) string { return fmt.Sprintf("%s-violin-%d", c.id, g) }
func (c *Chart) pointID(i int) string  { return fmt.Sprintf("%s-pt-%d", c.id, i) }

// Click emphasises silhouette g and invokes the click callback.
func (c *Chart) Click(g int) ([]interact.Patch, error) {
	if err := c.checkGroup(g); err != nil {
		return nil, err
	}
	p := c.attrs.Apply([]interact.Patch{
		{Target: c.violinID(g), Attr: "stroke-width", Value: HoverStrokeWidth, Duration: ClickDuration},
	})
	c.onClick(c.groupRecord(g))
	return p, nil
}

// Leave restores silhouette g and invokes the leave callback.
func (c *Chart) Leave(g int) ([]interact.Patch, error) {
	if err := c.checkGroup(g); err != nil {
		return nil, err
	}
	p := c.attrs.Apply([]interact.Patch{
		{Target: c.violinID(g), Attr: "stroke-width", Value: StrokeWidth, Duration: LeaveDuration},
	})
	c.onLeave(c.groupRecord(g))
	return p, nil
}

func (c *Chart) groupRecord(g int) chart.Record {
	return chart.Record{c.groups[g].Key, strconv.Itoa(len(c.groups[g].Values))}
}

func (c *Chart) checkGroup(g int) error {
	if g < 0 || g >= len(c.groups) {
		return errors.New(errors.ErrCodeInvalidEvent, "category index %d out of range [0, %d)", g, len(c.groups))
	}
	return nil
}
