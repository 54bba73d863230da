package scale

import "math"

// Band positions discrete categories along a continuous range, reserving
// inner and outer padding as fractions of the step between bands.
type Band struct {
	domain       []string
	index        map[string]int
	r0, r1       float64
	paddingInner float64
	paddingOuter float64
	align        float64
}

// NewBand returns a band scale over domain in the given order. Duplicate
// categories keep their first position.
func NewBand(domain []string, r0, r1 float64) *Band {
	b := &Band{r0: r0, r1: r1, align: 0.5, index: make(map[string]int)}
	for _, d := range domain {
		if _, ok := b.index[d]; ok {
			continue
		}
		b.index[d] = len(b.domain)
		b.domain = append(b.domain, d)
	}
	return b
}

// Padding sets both inner and outer padding.
func (b *Band) Padding(p float64) *Band {
	b.paddingInner = math.Min(1, p)
	b.paddingOuter = p
	return b
}

// Domain returns the ordered categories.
func (b *Band) Domain() []string { return b.domain }

// Step is the distance between the starts of adjacent bands.
func (b *Band) Step() float64 {
	n := float64(len(b.domain))
	span := b.r1 - b.r0
	denom := math.Max(1, n-b.paddingInner+b.paddingOuter*2)
	return span / denom
}

// Bandwidth is the width of each band.
func (b *Band) Bandwidth() float64 {
	return b.Step() * (1 - b.paddingInner)
}

// Map returns the start of the band for category, and false if the category
// is not in the domain.
func (b *Band) Map(category string) (float64, bool) {
	i, ok := b.index[category]
	if !ok {
		return 0, false
	}
	n := float64(len(b.domain))
	step := b.Step()
	start := b.r0 + (b.r1-b.r0-step*(n-b.paddingInner))*b.align
	return start + step*float64(i), true
}
