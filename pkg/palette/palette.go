// Package palette provides the color schemes used by genoviz charts.
//
// Discrete schemes are lists of hex strings ready to drop into SVG fill and
// stroke attributes. Continuous schemes are go-gg palettes sampled into
// discrete lists with [Quantize].
package palette

import (
	"image/color"

	"github.com/aclements/go-gg/palette"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Category10 is the ten-color categorical scheme used for scatter and violin
// categories.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// spectralStops are the ColorBrewer Spectral control colors, red to violet.
var spectralStops = []color.RGBA{
	{0x9e, 0x01, 0x42, 0xff},
	{0xd5, 0x3e, 0x4f, 0xff},
	{0xf4, 0x6d, 0x43, 0xff},
	{0xfd, 0xae, 0x61, 0xff},
	{0xfe, 0xe0, 0x8b, 0xff},
	{0xff, 0xff, 0xbf, 0xff},
	{0xe6, 0xf5, 0x98, 0xff},
	{0xab, 0xdd, 0xa4, 0xff},
	{0x66, 0xc2, 0xa5, 0xff},
	{0x32, 0x88, 0xbd, 0xff},
	{0x5e, 0x4f, 0xa2, 0xff},
}

// SpectralGradient is the continuous diverging Spectral scheme over [0, 1].
var SpectralGradient palette.Continuous = palette.RGBGradient{Colors: spectralStops}

// Quantize samples p at n evenly spaced points of [0, 1]. A single sample is
// taken at the midpoint.
func Quantize(p palette.Continuous, n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		t := 0.5
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = Hex(p.Map(t))
	}
	return out
}

// PieSpectral returns n Spectral colors sampled from the inner 80% of the
// scheme, in reverse order so the first slice is violet and the last red.
func PieSpectral(n int) []string {
	inner := palette.Continuous(remap{p: SpectralGradient, lo: 0.1, hi: 0.9})
	out := Quantize(inner, n)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Hex formats c as a lowercase #rrggbb string.
func Hex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// remap restricts a continuous palette to the sub-interval [lo, hi].
type remap struct {
	p      palette.Continuous
	lo, hi float64
}

func (r remap) Map(x float64) color.Color {
	return r.p.Map(r.lo + x*(r.hi-r.lo))
}
