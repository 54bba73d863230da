package genome

import (
	"math"

	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/interact"
	"github.com/matzehuels/genoviz/pkg/svg"
)

// Hover highlights feature i.
func (t *Track) Hover(i int) ([]interact.Patch, error) {
	if err := t.checkIndex(i); err != nil {
		return nil, err
	}
	return t.attrs.Apply([]interact.Patch{
		{Target: t.rectID(i), Attr: "fill", Value: HoverFill, Duration: HoverDuration},
	}), nil
}

// Unhover restores the glyph fill of feature i.
func (t *Track) Unhover(i int) ([]interact.Patch, error) {
	if err := t.checkIndex(i); err != nil {
		return nil, err
	}
	return t.attrs.Apply([]interact.Patch{
		{Target: t.rectID(i), Attr: "fill", Value: t.glyphs[i].Fill, Duration: HoverDuration},
	}), nil
}

// BrushEnd handles the end of a brush gesture. sel is the selected pixel
// interval within the plot area, or nil when the brush was released with no
// selection. A zero-width selection counts as none.
//
// A selection zooms to it. The first empty release arms the idle guard and
// changes nothing; an empty release while the guard is armed resets the
// domain to the full extent. changed reports whether the domain was
// rewritten.
func (t *Track) BrushEnd(sel *[2]float64) (patches []interact.Patch, changed bool) {
	if sel == nil || sel[0] == sel[1] || math.IsNaN(sel[0]) || math.IsNaN(sel[1]) {
		if !t.guard.Armed() {
			t.guard.Arm()
			return nil, false
		}
		t.x.SetDomain(t.min, t.max)
		return t.rescale(), true
	}

	a, b := math.Min(sel[0], sel[1]), math.Max(sel[0], sel[1])
	t.x.SetDomain(t.x.Invert(a), t.x.Invert(b))
	patches = append(patches, interact.Patch{Target: t.brushID(), Attr: "display", Value: "none"})
	return append(patches, t.rescale()...), true
}

// ZoomTo sets the visible window directly, e.g. to restore a saved view.
func (t *Track) ZoomTo(lo, hi float64) ([]interact.Patch, error) {
	if err := errors.ValidateDomain(lo, hi); err != nil {
		return nil, err
	}
	t.x.SetDomain(lo, hi)
	return t.rescale(), nil
}

// rescale emits the transitions that follow a domain change.
func (t *Track) rescale() []interact.Patch {
	patches := []interact.Patch{
		{Target: t.axisID(), Attr: interact.AttrMarkup, Value: t.axisMarkup(), Duration: ZoomDuration},
		{Target: t.gridID(), Attr: interact.AttrMarkup, Value: t.gridMarkup(), Duration: ZoomDuration},
	}
	for i := range t.features {
		r := t.Rect(i)
		patches = append(patches,
			interact.Patch{Target: t.rectID(i), Attr: "x", Value: svg.N(r.X), Duration: ZoomDuration},
			interact.Patch{Target: t.rectID(i), Attr: "width", Value: svg.N(r.Width), Duration: ZoomDuration},
			interact.Patch{Target: t.arrowID(i), Attr: "transform", Value: svg.Translate(r.ArrowX, r.Y), Duration: ZoomDuration},
			interact.Patch{Target: t.labelID(i), Attr: "x", Value: svg.N(r.LabelX), Duration: ZoomDuration},
		)
	}
	return patches
}
