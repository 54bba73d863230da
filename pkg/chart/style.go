package chart

import "github.com/matzehuels/genoviz/pkg/errors"

// Margin is the space reserved around the plot area.
type Margin struct {
	Top    float64 `toml:"top" json:"top"`
	Right  float64 `toml:"right" json:"right"`
	Bottom float64 `toml:"bottom" json:"bottom"`
	Left   float64 `toml:"left" json:"left"`
}

// Style sizes a chart. Width and Height are the plot area; margins are
// added around it.
type Style struct {
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
	Margin Margin  `toml:"margin" json:"margin"`
}

// OuterWidth is Width plus the horizontal margins.
func (s Style) OuterWidth() float64 { return s.Width + s.Margin.Left + s.Margin.Right }

// OuterHeight is Height plus the vertical margins.
func (s Style) OuterHeight() float64 { return s.Height + s.Margin.Top + s.Margin.Bottom }

// Validate rejects non-positive or non-finite dimensions.
func (s Style) Validate() error {
	return errors.ValidateDimensions(s.Width, s.Height)
}

// Merge returns s with every non-zero field of o applied on top.
func (s Style) Merge(o Style) Style {
	if o.Width != 0 {
		s.Width = o.Width
	}
	if o.Height != 0 {
		s.Height = o.Height
	}
	if o.Margin.Top != 0 {
		s.Margin.Top = o.Margin.Top
	}
	if o.Margin.Right != 0 {
		s.Margin.Right = o.Margin.Right
	}
	if o.Margin.Bottom != 0 {
		s.Margin.Bottom = o.Margin.Bottom
	}
	if o.Margin.Left != 0 {
		s.Margin.Left = o.Margin.Left
	}
	return s
}

// DefaultStyle returns the built-in style for kind. Genome tracks use a
// 1000x100 frame with margins subtracted, so the plot area is 985x60.
func DefaultStyle(kind Kind) Style {
	switch kind {
	case KindGenome:
		m := Margin{Top: 20, Right: 15, Bottom: 20, Left: 0}
		return Style{Width: 1000 - m.Left - m.Right, Height: 100 - m.Top - m.Bottom, Margin: m}
	case KindPie:
		return Style{Width: 100, Height: 100}
	case KindViolin:
		return Style{Width: 460, Height: 400, Margin: Margin{Top: 10, Right: 30, Bottom: 30, Left: 40}}
	default:
		return Style{Width: 400, Height: 400, Margin: Margin{Top: 10, Right: 30, Bottom: 30, Left: 30}}
	}
}
