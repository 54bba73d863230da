package genome

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/interact"
	"github.com/matzehuels/genoviz/pkg/mount"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func sampleFeatures() []Feature {
	return []Feature{
		{Start: 1000, End: 2000, Strand: Forward, Type: Gene, Name: "AT2G01010"},
		{Start: 2500, End: 2600, Strand: Reverse, Type: GRNA, Name: "g1"},
		{Start: 3000, End: 3000, Strand: Forward, Type: TE, Name: "empty"},
		{Start: 4000, End: 4800, Strand: Reverse, Type: CDS, Name: "cds"},
	}
}

func newTrack(t *testing.T, opts ...Option) (*Track, *clock) {
	t.Helper()
	clk := &clock{t: time.Unix(0, 0)}
	opts = append(opts, WithGuardOptions(interact.WithClock(clk.now)))
	tr, err := Create(mount.New("m"), "2", 1000, 5000, sampleFeatures(), opts...)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return tr, clk
}

func TestParseFeatureType(t *testing.T) {
	tests := []struct {
		in   string
		want FeatureType
	}{
		{"exon", Exon}, {"gene", Gene}, {"transcript", Transcript},
		{"CDS", CDS}, {"cds", CDS}, {"stop_codon", StopCodon},
		{"three_prime_utr", ThreePrimeUTR}, {"te", TE}, {"grna", GRNA},
	}
	for _, tt := range tests {
		got, err := ParseFeatureType(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseFeatureType(%q) = %v, %v", tt.in, got, err)
		}
	}
	for _, in := range []string{"promoter", "", "  "} {
		if _, err := ParseFeatureType(in); !errors.Is(err, errors.ErrCodeUnknownFeature) {
			t.Errorf("ParseFeatureType(%q) error = %v, want UNKNOWN_FEATURE", in, err)
		}
	}
}

func TestZeroFeatureTypeIsInvalid(t *testing.T) {
	var typ FeatureType
	if typ.String() != "unknown" {
		t.Errorf("String() = %q, want unknown", typ.String())
	}
	if _, err := GlyphFor(typ); !errors.Is(err, errors.ErrCodeUnknownFeature) {
		t.Errorf("GlyphFor(zero) error = %v", err)
	}
	if _, err := typ.MarshalText(); err == nil {
		t.Error("MarshalText of the zero type should fail")
	}
	f := Feature{Start: 1, End: 5, Strand: Forward, Name: "g1"}
	if err := f.Validate(0); !errors.Is(err, errors.ErrCodeUnknownFeature) {
		t.Errorf("Validate without a type = %v, want UNKNOWN_FEATURE", err)
	}
}

func TestGlyphTable(t *testing.T) {
	tests := []struct {
		typ  FeatureType
		want Glyph
	}{
		{Exon, Glyph{20, 10, "#0E0080"}},
		{CDS, Glyph{20, 15, "#0E0080"}},
		{StopCodon, Glyph{20, 15, "#000"}},
		{ThreePrimeUTR, Glyph{20, 10, "#000"}},
		{TE, Glyph{40, 10, "#479AB3"}},
		{GRNA, Glyph{10, 5, "red"}},
	}
	for _, tt := range tests {
		got, err := GlyphFor(tt.typ)
		if err != nil || got != tt.want {
			t.Errorf("GlyphFor(%s) = %+v, %v; want %+v", tt.typ, got, err, tt.want)
		}
	}
	if _, err := GlyphFor(FeatureType(99)); err == nil {
		t.Error("GlyphFor(99) should fail")
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
		features []Feature
		code     errors.Code
	}{
		{"inverted domain", 10, 5, nil, errors.ErrCodeInvalidRange},
		{"empty domain", 5, 5, nil, errors.ErrCodeInvalidRange},
		{"start after end", 0, 10, []Feature{{Start: 8, End: 2, Strand: Forward, Type: Gene}}, errors.ErrCodeInvalidRange},
		{"bad strand", 0, 10, []Feature{{Start: 1, End: 2, Strand: ".", Type: Gene}}, errors.ErrCodeInvalidStrand},
		{"unknown type", 0, 10, []Feature{{Start: 1, End: 2, Strand: Forward, Type: FeatureType(42)}}, errors.ErrCodeUnknownFeature},
		{"missing type", 0, 10, []Feature{{Start: 1, End: 2, Strand: Forward}}, errors.ErrCodeUnknownFeature},
		{"nan start", 0, 10, []Feature{{Start: math.NaN(), End: 2, Strand: Forward, Type: Gene}}, errors.ErrCodeInvalidCoordinate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mount.New("m")
			_, err := Create(m, "1", tt.min, tt.max, tt.features)
			if !errors.Is(err, tt.code) {
				t.Fatalf("Create error = %v, want %s", err, tt.code)
			}
			if m.Len() != 0 {
				t.Error("failed Create should not append to the mount")
			}
		})
	}
}

func TestRectWidthMatchesScale(t *testing.T) {
	tr, _ := newTrack(t)
	for i, f := range tr.Features() {
		r := tr.Rect(i)
		want := tr.x.Map(f.End) - tr.x.Map(f.Start)
		if r.Width != want || r.Width < 0 {
			t.Errorf("feature %d width = %v, want %v (>= 0)", i, r.Width, want)
		}
		if r.X != tr.x.Map(f.Start) {
			t.Errorf("feature %d x = %v", i, r.X)
		}
	}
}

func TestGeometryPlacement(t *testing.T) {
	tr, _ := newTrack(t)
	// x: [1000,5000] -> [0,985]; y: [0,100] -> [0,60].
	r := tr.Rect(0)
	if math.Abs(r.X) > 1e-9 || math.Abs(r.Width-246.25) > 1e-9 {
		t.Errorf("gene rect x=%v width=%v, want 0 and 246.25", r.X, r.Width)
	}
	if r.Y != 12 || r.Height != 10 {
		t.Errorf("gene rect y=%v height=%v, want 12 and 10", r.Y, r.Height)
	}
	if r.LabelY != 9 || math.Abs(r.LabelX-123.125) > 1e-9 {
		t.Errorf("label at (%v, %v), want (123.125, 9)", r.LabelX, r.LabelY)
	}
	if r.ArrowX != r.X+r.Width {
		t.Errorf("forward arrow at %v, want rect end", r.ArrowX)
	}
	rev := tr.Rect(1)
	if rev.ArrowX != rev.X {
		t.Errorf("reverse arrow at %v, want rect start %v", rev.ArrowX, rev.X)
	}
}

func TestArrowPath(t *testing.T) {
	if got := arrowPath(10, Forward); got != "M0,0V10L5,5Z" {
		t.Errorf("forward = %q", got)
	}
	if got := arrowPath(5, Reverse); got != "M0,0V5L-2.5,2.5Z" {
		t.Errorf("reverse = %q", got)
	}
}

func TestBrushZoomAndDoubleReset(t *testing.T) {
	tr, clk := newTrack(t)
	lo, hi := tr.Domain()

	patches, changed := tr.BrushEnd(&[2]float64{197, 394})
	if !changed {
		t.Fatal("selection should zoom")
	}
	d0, d1 := tr.Domain()
	if math.Abs(d0-1800) > 1e-9 || math.Abs(d1-2600) > 1e-9 {
		t.Errorf("zoomed domain = [%v, %v], want [1800, 2600]", d0, d1)
	}
	for _, p := range patches {
		if p.Target != tr.brushID() && p.Duration != ZoomDuration {
			t.Errorf("patch %+v should animate over %v", p, ZoomDuration)
		}
	}

	// First empty release only arms the guard.
	if p, changed := tr.BrushEnd(nil); changed || p != nil {
		t.Fatalf("first empty release changed the chart: %v", p)
	}
	clk.advance(100 * time.Millisecond)
	if _, changed := tr.BrushEnd(nil); !changed {
		t.Fatal("second empty release inside the idle window should reset")
	}
	if d0, d1 := tr.Domain(); d0 != lo || d1 != hi {
		t.Errorf("reset domain = [%v, %v], want exactly [%v, %v]", d0, d1, lo, hi)
	}
}

func TestBrushResetRequiresIdleWindow(t *testing.T) {
	tr, clk := newTrack(t)
	tr.BrushEnd(&[2]float64{0, 100})
	zoomed0, zoomed1 := tr.Domain()

	tr.BrushEnd(nil)
	clk.advance(400 * time.Millisecond)
	if _, changed := tr.BrushEnd(&[2]float64{5, 5}); changed {
		t.Error("empty release after the idle window should only re-arm")
	}
	if d0, d1 := tr.Domain(); d0 != zoomed0 || d1 != zoomed1 {
		t.Error("domain changed without a reset")
	}
}

func TestTracksHaveIndependentGuards(t *testing.T) {
	a, _ := newTrack(t)
	b, _ := newTrack(t)
	a.BrushEnd(nil)
	if _, changed := b.BrushEnd(nil); changed {
		t.Error("arming one track's guard affected another track")
	}
}

func TestHoverUnhoverRoundTrip(t *testing.T) {
	tr, _ := newTrack(t)
	before := tr.Rect(3).Fill
	svgBefore := string(tr.SVG())

	p, err := tr.Hover(3)
	if err != nil {
		t.Fatal(err)
	}
	want := []interact.Patch{{Target: tr.rectID(3), Attr: "fill", Value: HoverFill, Duration: HoverDuration}}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("Hover patches = %+v", p)
	}
	if tr.Rect(3).Fill != HoverFill {
		t.Error("hover not reflected in geometry")
	}

	if _, err := tr.Unhover(3); err != nil {
		t.Fatal(err)
	}
	if got := tr.Rect(3).Fill; got != before {
		t.Errorf("fill after unhover = %q, want %q", got, before)
	}
	if string(tr.SVG()) != svgBefore {
		t.Error("hover then unhover changed the rendered SVG")
	}

	if _, err := tr.Hover(99); !errors.Is(err, errors.ErrCodeInvalidEvent) {
		t.Errorf("Hover(99) error = %v", err)
	}
}

func TestZoomTo(t *testing.T) {
	tr, _ := newTrack(t)
	if _, err := tr.ZoomTo(2000, 3000); err != nil {
		t.Fatal(err)
	}
	if d0, d1 := tr.Domain(); d0 != 2000 || d1 != 3000 {
		t.Errorf("Domain = [%v, %v]", d0, d1)
	}
	if _, err := tr.ZoomTo(3000, 2000); !errors.Is(err, errors.ErrCodeInvalidRange) {
		t.Errorf("ZoomTo inverted error = %v", err)
	}
}

func TestCreateAppendsAndClear(t *testing.T) {
	m := mount.New("m")
	a, err := Create(m, "1", 0, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Create(m, "1", 0, 100, nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() != 2 || a.NodeID() == b.NodeID() {
		t.Errorf("mount has %d children, ids %q %q", m.Len(), a.NodeID(), b.NodeID())
	}
	Clear(m)
	if m.Len() != 0 {
		t.Error("Clear left children")
	}
}

func TestSVGContent(t *testing.T) {
	tr, _ := newTrack(t, WithStyle(chart.Style{Height: 60}))
	out := string(tr.SVG())
	for _, want := range []string{
		`viewBox="0 0 1000 100"`,
		`class="gtf-rect"`,
		`font-size="6pt"`,
		"chromosome2",
		"Select to zoom. Double-click to recover",
		"5' =&gt;  3'",
		`d="M0,0V10L5,5Z"`,
		`class="reverse"`,
		"<script",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}
