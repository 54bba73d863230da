package pie

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/interact"
	"github.com/matzehuels/genoviz/pkg/mount"
	"github.com/matzehuels/genoviz/pkg/scale"
	"github.com/matzehuels/genoviz/pkg/shape"
)

func mustCreate(t *testing.T, counts Counts, opts ...Option) *Chart {
	t.Helper()
	c, err := Create(mount.New("m"), nil, counts, opts...)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return c
}

func TestProportions(t *testing.T) {
	c := mustCreate(t, Counts{{"A", 3}, {"B", 7}})
	s := c.Slices()
	if got := s[0].Span() / shape.Tau; math.Abs(got-0.3) > 1e-12 {
		t.Errorf("A spans %v of the circle, want 0.3", got)
	}
	if got := s[1].Span() / shape.Tau; math.Abs(got-0.7) > 1e-12 {
		t.Errorf("B spans %v of the circle, want 0.7", got)
	}
	if got := c.TooltipHTML(0); got != "A: 3 (30.00%)" {
		t.Errorf("TooltipHTML(A) = %q", got)
	}
	if got := c.TooltipHTML(1); got != "B: 7 (70.00%)" {
		t.Errorf("TooltipHTML(B) = %q", got)
	}
}

func TestTooltipFormatting(t *testing.T) {
	c := mustCreate(t, Counts{{"big", 1234567}, {"<small>", 1}})
	if got := c.TooltipHTML(0); got != "big: 1,234,567 (100.00%)" {
		t.Errorf("TooltipHTML(big) = %q", got)
	}
	if got := c.TooltipHTML(1); !strings.HasPrefix(got, "&lt;small&gt;: 1 (0.00%)") {
		t.Errorf("TooltipHTML(small) = %q", got)
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		counts Counts
		code   errors.Code
	}{
		{"empty", Counts{}, errors.ErrCodeNonFiniteTotal},
		{"all zero", Counts{{"A", 0}, {"B", 0}}, errors.ErrCodeNonFiniteTotal},
		{"nan", Counts{{"A", math.NaN()}}, errors.ErrCodeNonFiniteTotal},
		{"inf", Counts{{"A", math.Inf(1)}}, errors.ErrCodeNonFiniteTotal},
		{"negative", Counts{{"A", 5}, {"B", -1}}, errors.ErrCodeNegativeCount},
		{"duplicate", Counts{{"A", 1}, {"A", 2}}, errors.ErrCodeDuplicateCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mount.New("m")
			_, err := Create(m, nil, tt.counts)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Create error = %v, want %s", err, tt.code)
			}
			if m.Len() != 0 {
				t.Error("nothing should be drawn on invalid input")
			}
		})
	}
}

func TestInsertionOrderKept(t *testing.T) {
	var counts Counts
	if err := json.Unmarshal([]byte(`{"zeta": 5, "alpha": 1, "mid": 3}`), &counts); err != nil {
		t.Fatal(err)
	}
	want := []string{"zeta", "alpha", "mid"}
	for i, e := range counts {
		if e.Label != want[i] {
			t.Fatalf("decoded order = %v, want %v", counts, want)
		}
	}
	c := mustCreate(t, counts)
	s := c.Slices()
	if s[0].StartAngle != 0 || s[1].StartAngle != s[0].EndAngle {
		t.Error("slices not laid out in input order")
	}

	out, err := json.Marshal(counts)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"zeta":5,"alpha":1,"mid":3}` {
		t.Errorf("Marshal = %s", out)
	}

	if err := json.Unmarshal([]byte(`[1,2]`), &counts); err == nil {
		t.Error("array input should be rejected")
	}
}

func TestColorsSizedToCategories(t *testing.T) {
	colors := scale.NewOrdinal(nil)
	mustCreateWith := func(counts Counts) {
		if _, err := Create(mount.New("m"), colors, counts); err != nil {
			t.Fatal(err)
		}
	}
	mustCreateWith(Counts{{"A", 1}, {"B", 1}, {"C", 1}})
	if got := len(colors.Range()); got != 3 {
		t.Errorf("range has %d colors, want 3", got)
	}
	a, b := colors.Map("A"), colors.Map("B")
	if a == b {
		t.Error("adjacent categories share a color")
	}

	mustCreateWith(Counts{{"only", 1}})
	if got := len(colors.Range()); got != 1 {
		t.Errorf("range has %d colors, want 1", got)
	}
}

func TestRadiiAndValueLabels(t *testing.T) {
	c := mustCreate(t, Counts{{"A", 99}, {"B", 1}})
	if c.arc.Inner != 10 || c.arc.Outer != 49 {
		t.Errorf("arc radii = %v/%v, want 10/49", c.arc.Inner, c.arc.Outer)
	}
	if c.label.Inner != 40 {
		t.Errorf("label radius = %v, want 40", c.label.Inner)
	}
	geo := c.Geometry()
	if !geo.Slices[0].ShowValue {
		t.Error("wide slice should show its value")
	}
	if geo.Slices[1].ShowValue {
		t.Error("slice narrower than 0.25 rad should hide its value")
	}
	out := string(c.SVG())
	if strings.Count(out, `fill-opacity="0.7"`) != 1 {
		t.Error("expected exactly one value sub-label")
	}
	for _, want := range []string{`viewBox="-50 -50 100 100"`, "Total = 100", `stroke="white"`} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestHoverUnhoverRoundTrip(t *testing.T) {
	c := mustCreate(t, Counts{{"A", 3}, {"B", 7}})
	before := string(c.SVG())

	p, err := c.Hover(0)
	if err != nil {
		t.Fatal(err)
	}
	if !hasPatch(p, c.arcID(0), "stroke-width", HoverStrokeWidth) {
		t.Errorf("Hover patches = %+v", p)
	}
	if !hasPatch(p, c.Tooltip().NodeID(), "opacity", "1") {
		t.Error("Hover should reveal the tooltip")
	}
	if c.Tooltip().Opacity() != 1 || c.Tooltip().Content() != "A: 3 (30.00%)" {
		t.Errorf("tooltip = %q opacity %v", c.Tooltip().Content(), c.Tooltip().Opacity())
	}

	if _, err := c.Unhover(0); err != nil {
		t.Fatal(err)
	}
	if c.Tooltip().Opacity() != 0 {
		t.Error("Unhover should hide the tooltip")
	}
	if string(c.SVG()) != before {
		t.Error("hover then unhover changed the rendered chart")
	}

	if _, err := c.Hover(2); !errors.Is(err, errors.ErrCodeInvalidEvent) {
		t.Errorf("Hover(2) error = %v", err)
	}
}

func TestCreateAppendsChartAndTooltip(t *testing.T) {
	m := mount.New("m")
	if _, err := Create(m, nil, Counts{{"A", 1}}, WithTooltipClass("custom")); err != nil {
		t.Fatal(err)
	}
	kids := m.Children()
	if len(kids) != 2 {
		t.Fatalf("mount has %d children, want chart and tooltip", len(kids))
	}
	if tip, ok := kids[1].(*mount.Tooltip); !ok || tip.Class() != "custom" {
		t.Errorf("second child = %#v", kids[1])
	}
}

func hasPatch(ps []interact.Patch, target, attr, value string) bool {
	for _, p := range ps {
		if p.Target == target && p.Attr == attr && p.Value == value {
			return true
		}
	}
	return false
}
