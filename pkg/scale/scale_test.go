package scale

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLinearMapInvert(t *testing.T) {
	tests := []struct {
		name           string
		d0, d1, r0, r1 float64
		x, want        float64
	}{
		{"identity", 0, 10, 0, 10, 3, 3},
		{"stretch", 0, 100, 0, 60, 20, 12},
		{"offset domain", 1000, 2000, 0, 500, 1500, 250},
		{"reversed range", -5, 5, 100, 0, 5, 0},
		{"reversed range mid", -5, 5, 100, 0, 0, 50},
		{"extrapolate", 0, 10, 0, 100, 20, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewLinear(tt.d0, tt.d1, tt.r0, tt.r1)
			got := s.Map(tt.x)
			if !approx(got, tt.want) {
				t.Errorf("Map(%v) = %v, want %v", tt.x, got, tt.want)
			}
			if back := s.Invert(got); !approx(back, tt.x) {
				t.Errorf("Invert(Map(%v)) = %v", tt.x, back)
			}
		})
	}
}

func TestLinearDegenerateDomain(t *testing.T) {
	s := NewLinear(0, 0, 0, 200)
	if got := s.Map(0); got != 100 {
		t.Errorf("Map on degenerate domain = %v, want 100", got)
	}
}

func TestLinearSetDomain(t *testing.T) {
	s := NewLinear(0, 100, 0, 1000)
	s.SetDomain(25, 50)
	if got := s.Map(25); got != 0 {
		t.Errorf("Map(25) = %v, want 0", got)
	}
	if got := s.Map(50); !approx(got, 1000) {
		t.Errorf("Map(50) = %v, want 1000", got)
	}
	d0, d1 := s.Domain()
	if d0 != 25 || d1 != 50 {
		t.Errorf("Domain() = [%v, %v], want [25, 50]", d0, d1)
	}
}

func TestLinearTicks(t *testing.T) {
	s := NewLinear(0, 100, 0, 500)
	ticks := s.Ticks(10)
	if len(ticks) == 0 || len(ticks) > 11 {
		t.Fatalf("Ticks(10) returned %d ticks: %v", len(ticks), ticks)
	}
	for i, v := range ticks {
		if v < 0 || v > 100 {
			t.Errorf("tick %v outside domain", v)
		}
		if i > 0 && v <= ticks[i-1] {
			t.Errorf("ticks not increasing: %v", ticks)
		}
	}
	if ticks[0] != 0 || ticks[len(ticks)-1] != 100 {
		t.Errorf("ticks = %v, want to include both domain ends", ticks)
	}

	if got := NewLinear(3, 3, 0, 1).Ticks(5); got != nil {
		t.Errorf("Ticks on degenerate domain = %v, want nil", got)
	}
}

func TestBandPaddingOne(t *testing.T) {
	b := NewBand([]string{"a", "b", "c"}, 0, 400).Padding(1)
	want := map[string]float64{"a": 100, "b": 200, "c": 300}
	for cat, w := range want {
		got, ok := b.Map(cat)
		if !ok {
			t.Fatalf("Map(%q) not found", cat)
		}
		if !approx(got, w) {
			t.Errorf("Map(%q) = %v, want %v", cat, got, w)
		}
	}
	if bw := b.Bandwidth(); bw != 0 {
		t.Errorf("Bandwidth() = %v, want 0", bw)
	}
	if _, ok := b.Map("missing"); ok {
		t.Error("Map(missing) should report false")
	}
}

func TestBandSingleCategoryCentered(t *testing.T) {
	b := NewBand([]string{"only", "only"}, 0, 300).Padding(1)
	if len(b.Domain()) != 1 {
		t.Fatalf("Domain() = %v, want one entry", b.Domain())
	}
	got, _ := b.Map("only")
	if !approx(got, 150) {
		t.Errorf("Map(only) = %v, want 150", got)
	}
}

func TestOrdinalImplicitDomain(t *testing.T) {
	o := NewOrdinal([]string{"red", "green"})
	if got := o.Map("x"); got != "red" {
		t.Errorf("Map(x) = %q, want red", got)
	}
	if got := o.Map("y"); got != "green" {
		t.Errorf("Map(y) = %q, want green", got)
	}
	if got := o.Map("z"); got != "red" {
		t.Errorf("Map(z) = %q, want red (cycled)", got)
	}
	if got := o.Map("x"); got != "red" {
		t.Errorf("Map(x) again = %q, want red", got)
	}
	if d := o.Domain(); len(d) != 3 {
		t.Errorf("Domain() = %v, want 3 entries", d)
	}
}

func TestOrdinalExplicitDomainAndRange(t *testing.T) {
	o := NewOrdinal(nil).WithDomain([]string{"b", "a", "b"})
	if got := o.Map("a"); got != "" {
		t.Errorf("Map with empty range = %q, want empty", got)
	}
	o.SetRange([]string{"#1", "#2"})
	if got := o.Map("b"); got != "#1" {
		t.Errorf("Map(b) = %q, want #1", got)
	}
	if got := o.Map("a"); got != "#2" {
		t.Errorf("Map(a) = %q, want #2", got)
	}
}
