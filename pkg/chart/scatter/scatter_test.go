package scatter

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/mount"
	"github.com/matzehuels/genoviz/pkg/palette"
	"github.com/matzehuels/genoviz/pkg/scale"
)

func sample() []chart.Record {
	return []chart.Record{
		{"-3.5", "1", "T cell", "s1"},
		{"2", "-8", "B cell", "s1"},
		{"0.5", "4", "T cell", "s2"},
	}
}

func TestDomainsAreSymmetricWithHeadroom(t *testing.T) {
	c, err := Create(mount.New("m"), sample(), chart.Style{})
	if err != nil {
		t.Fatal(err)
	}
	x0, x1 := c.XDomain()
	if math.Abs(x0+4.2) > 1e-12 || math.Abs(x1-4.2) > 1e-12 {
		t.Errorf("x domain = [%v, %v], want [-4.2, 4.2]", x0, x1)
	}
	y0, y1 := c.YDomain()
	if math.Abs(y0+9.6) > 1e-12 || math.Abs(y1-9.6) > 1e-12 {
		t.Errorf("y domain = [%v, %v], want [-9.6, 9.6]", y0, y1)
	}

	// The origin maps to the center of the plot area, y grows upward.
	s := chart.DefaultStyle(chart.KindScatter)
	if got := c.x.Map(0); got != s.Width/2 {
		t.Errorf("x(0) = %v, want %v", got, s.Width/2)
	}
	if c.Point(2).Y >= s.Height/2 {
		t.Error("positive y should be drawn above the center")
	}
}

func TestDefaultColorsByThirdColumn(t *testing.T) {
	c, err := Create(mount.New("m"), sample(), chart.Style{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Color(0) != palette.Category10[0] || c.Color(1) != palette.Category10[1] {
		t.Errorf("colors = %s, %s", c.Color(0), c.Color(1))
	}
	if c.Color(2) != c.Color(0) {
		t.Error("same category should share a color")
	}
}

func TestSharedColorScaleAndColorBy(t *testing.T) {
	shared := scale.NewOrdinal([]string{"#111111", "#222222"})
	a, err := Create(mount.New("m"), sample(), chart.Style{}, WithColorScale(shared), WithColorBy(3))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Create(mount.New("m"), sample()[1:], chart.Style{}, WithColorScale(shared), WithColorBy(3))
	if err != nil {
		t.Fatal(err)
	}
	if a.Color(0) != "#111111" || a.Color(2) != "#222222" {
		t.Errorf("colors = %s, %s", a.Color(0), a.Color(2))
	}
	if a.Color(2) != b.Color(1) {
		t.Error("shared scale gave one key two colors")
	}
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		records []chart.Record
		opts    []Option
		code    errors.Code
	}{
		{"bad x", []chart.Record{{"abc", "1", "c"}}, nil, errors.ErrCodeInvalidCoordinate},
		{"inf y", []chart.Record{{"1", "Inf", "c"}}, nil, errors.ErrCodeInvalidCoordinate},
		{"short record", []chart.Record{{"1"}}, nil, errors.ErrCodeInvalidColumn},
		{"color-by out of range", []chart.Record{{"1", "2", "c"}}, []Option{WithColorBy(7)}, errors.ErrCodeInvalidColumn},
		{"zero stroke", []chart.Record{{"1", "2", "c"}}, []Option{WithStrokeWidth(0)}, errors.ErrCodeInvalidStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Create(mount.New("m"), tt.records, chart.Style{}, tt.opts...)
			if !errors.Is(err, tt.code) {
				t.Errorf("Create error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestClickLeaveCallbacksAndRoundTrip(t *testing.T) {
	var clicked, left []chart.Record
	c, err := Create(mount.New("m"), sample(), chart.Style{},
		WithStrokeWidth(3),
		WithOnClick(func(r chart.Record) { clicked = append(clicked, r) }),
		WithOnLeave(func(r chart.Record) { left = append(left, r) }),
	)
	if err != nil {
		t.Fatal(err)
	}
	before := string(c.SVG())

	p, err := c.Click(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 1 || p[0].Value != "6" || p[0].Duration != ClickDuration {
		t.Errorf("Click patches = %+v", p)
	}
	if c.StrokeWidth(1) != "6" {
		t.Errorf("stroke after click = %s", c.StrokeWidth(1))
	}
	if len(clicked) != 1 || clicked[0][2] != "B cell" {
		t.Errorf("onclick got %v", clicked)
	}

	p, err = c.Leave(1)
	if err != nil {
		t.Fatal(err)
	}
	if p[0].Value != "3" || p[0].Duration != LeaveDuration {
		t.Errorf("Leave patches = %+v", p)
	}
	if len(left) != 1 {
		t.Errorf("onleave called %d times", len(left))
	}
	if string(c.SVG()) != before {
		t.Error("click then leave changed the rendered chart")
	}

	if _, err := c.Click(-1); !errors.Is(err, errors.ErrCodeInvalidEvent) {
		t.Errorf("Click(-1) error = %v", err)
	}
}

func TestSVGFrame(t *testing.T) {
	c, err := Create(mount.New("m"), sample(), chart.Style{Width: 500, Height: 300, Margin: chart.Margin{Top: 10, Bottom: 20, Left: 5, Right: 5}})
	if err != nil {
		t.Fatal(err)
	}
	out := string(c.SVG())
	for _, want := range []string{
		`viewBox="0 0 600 330"`,
		`width="410"`,
		`height="330"`,
		`stroke-linecap="round"`,
		`class="tsne-circle"`,
		"h0\"",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}
