// Package genome draws a horizontal genomic feature track with brush zoom.
//
// A track shows one chromosome window [min, max]: a bottom axis with
// gridlines, one rectangle per feature placed by its type's [Glyph], a
// centered name label and a strand arrowhead. Dragging a selection zooms the
// x domain to it; releasing twice with no selection inside the idle window
// resets to [min, max].
//
//	m := mount.New("tracks")
//	t, err := genome.Create(m, "2", 1000, 5000, features)
//	patches, changed := t.BrushEnd(&[2]float64{100, 400})
package genome

import (
	"fmt"
	"time"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/interact"
	"github.com/matzehuels/genoviz/pkg/mount"
	"github.com/matzehuels/genoviz/pkg/scale"
)

const (
	// HoverFill replaces a rectangle's fill while it is hovered.
	HoverFill = "#3598DB"

	HoverDuration = 100 * time.Millisecond
	ZoomDuration  = 1000 * time.Millisecond

	axisTicks   = 10
	labelOffset = 5
	labelSize   = "6pt"
)

// Option configures a Track.
type Option func(*Track)

// WithStyle overrides the default 985x60 plot area and its margins.
func WithStyle(s chart.Style) Option {
	return func(t *Track) { t.style = t.style.Merge(s) }
}

// WithGuardOptions configures the brush idle guard, e.g. to inject a clock.
func WithGuardOptions(opts ...interact.GuardOption) Option {
	return func(t *Track) { t.guardOpts = append(t.guardOpts, opts...) }
}

// Track is a genome track session.
type Track struct {
	id       string
	chrom    string
	min, max float64
	features []Feature
	glyphs   []Glyph

	style chart.Style
	x, y  *scale.Linear

	guardOpts []interact.GuardOption
	guard     *interact.IdleGuard
	attrs     *interact.Attrs
}

// Create validates features, builds a track over [min, max] on chromosome
// chrom and appends it to m.
func Create(m *mount.Mount, chrom string, min, max float64, features []Feature, opts ...Option) (*Track, error) {
	if err := errors.ValidateDomain(min, max); err != nil {
		return nil, err
	}
	t := &Track{
		chrom:    chrom,
		min:      min,
		max:      max,
		features: append([]Feature(nil), features...),
		glyphs:   make([]Glyph, len(features)),
		style:    chart.DefaultStyle(chart.KindGenome),
		attrs:    interact.NewAttrs(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.style.Validate(); err != nil {
		return nil, err
	}
	for i, f := range t.features {
		g, err := f.validate(i)
		if err != nil {
			return nil, err
		}
		t.glyphs[i] = g
	}

	t.x = scale.NewLinear(min, max, 0, t.style.Width)
	t.y = scale.NewLinear(0, 100, 0, t.style.Height)
	t.guard = interact.NewIdleGuard(t.guardOpts...)
	t.id = m.NextID("genome")
	m.Append(t)
	return t, nil
}

// Clear removes every chart from m.
func Clear(m *mount.Mount) { m.Clear() }

func (t *Track) NodeID() string   { return t.id }
func (t *Track) Kind() chart.Kind { return chart.KindGenome }
func (t *Track) Markup() []byte   { return t.SVG() }

// Chrom returns the chromosome label.
func (t *Track) Chrom() string { return t.chrom }

// Features returns the track's features.
func (t *Track) Features() []Feature { return t.features }

// Extent returns the full [min, max] window the track was created with.
func (t *Track) Extent() (float64, float64) { return t.min, t.max }

// Domain returns the currently visible window.
func (t *Track) Domain() (float64, float64) { return t.x.Domain() }

// Style returns the effective style.
func (t *Track) Style() chart.Style { return t.style }

func (t *Track) rectID(i int) string  { return fmt.Sprintf("%s-rect-%d", t.id, i) }
func (t *Track) labelID(i int) string { return fmt.Sprintf("%s-label-%d", t.id, i) }
func (t *Track) arrowID(i int) string { return fmt.Sprintf("%s-arrow-%d", t.id, i) }
func (t *Track) axisID() string       { return t.id + "-x-axis" }
func (t *Track) gridID() string       { return t.id + "-x-grid" }
func (t *Track) brushID() string      { return t.id + "-brush-selection" }

func (t *Track) checkIndex(i int) error {
	if i < 0 || i >= len(t.features) {
		return errors.New(errors.ErrCodeInvalidEvent, "feature index %d out of range [0, %d)", i, len(t.features))
	}
	return nil
}
