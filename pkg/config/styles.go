package config

import (
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/errors"
)

// PieStyle is the pie frame plus its label size (0 hides labels).
type PieStyle struct {
	chart.Style
	LabelSize float64 `toml:"label_size" json:"label_size"`
}

// ScatterStyle is the scatter frame plus point encoding.
type ScatterStyle struct {
	chart.Style
	ColorBy     int      `toml:"color_by" json:"color_by"`
	StrokeWidth float64  `toml:"stroke_width" json:"stroke_width"`
	Palette     []string `toml:"palette" json:"palette,omitempty"`
}

// ViolinStyle is the violin frame plus the jitter seed.
type ViolinStyle struct {
	chart.Style
	Seed    uint64   `toml:"seed" json:"seed"`
	Palette []string `toml:"palette" json:"palette,omitempty"`
}

// Styles holds one style per chart kind.
type Styles struct {
	Genome  chart.Style  `toml:"genome" json:"genome"`
	Pie     PieStyle     `toml:"pie" json:"pie"`
	Scatter ScatterStyle `toml:"scatter" json:"scatter"`
	Violin  ViolinStyle  `toml:"violin" json:"violin"`
}

// Defaults mirror the chart packages' own defaults.
const (
	DefaultPieLabelSize       = 4
	DefaultColorBy            = 2
	DefaultScatterStrokeWidth = 4
	DefaultViolinSeed         = 42
)

// DefaultStyles returns the built-in styles.
func DefaultStyles() Styles {
	return Styles{
		Genome:  chart.DefaultStyle(chart.KindGenome),
		Pie:     PieStyle{Style: chart.DefaultStyle(chart.KindPie), LabelSize: DefaultPieLabelSize},
		Scatter: ScatterStyle{Style: chart.DefaultStyle(chart.KindScatter), ColorBy: DefaultColorBy, StrokeWidth: DefaultScatterStrokeWidth},
		Violin:  ViolinStyle{Style: chart.DefaultStyle(chart.KindViolin), Seed: DefaultViolinSeed},
	}
}

// LoadStyles reads the TOML file at path over the defaults. An empty path
// returns the defaults.
func LoadStyles(path string) (Styles, error) {
	s := DefaultStyles()
	if path == "" {
		return s, nil
	}
	var file Styles
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return s, errors.Wrap(errors.ErrCodeInvalidStyle, err, "style file %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return s, errors.New(errors.ErrCodeInvalidStyle, "style file %s: unknown key %s", path, undecoded[0])
	}
	s = s.Merge(file)
	if err := s.Validate(); err != nil {
		return s, errors.Wrap(errors.ErrCodeInvalidStyle, err, "style file %s", path)
	}
	return s, nil
}

// Merge overrides s with the non-zero fields of o.
func (s Styles) Merge(o Styles) Styles {
	s.Genome = s.Genome.Merge(o.Genome)

	s.Pie.Style = s.Pie.Style.Merge(o.Pie.Style)
	if o.Pie.LabelSize != 0 {
		s.Pie.LabelSize = o.Pie.LabelSize
	}

	s.Scatter.Style = s.Scatter.Style.Merge(o.Scatter.Style)
	if o.Scatter.ColorBy != 0 {
		s.Scatter.ColorBy = o.Scatter.ColorBy
	}
	if o.Scatter.StrokeWidth != 0 {
		s.Scatter.StrokeWidth = o.Scatter.StrokeWidth
	}
	if len(o.Scatter.Palette) > 0 {
		s.Scatter.Palette = o.Scatter.Palette
	}

	s.Violin.Style = s.Violin.Style.Merge(o.Violin.Style)
	if o.Violin.Seed != 0 {
		s.Violin.Seed = o.Violin.Seed
	}
	if len(o.Violin.Palette) > 0 {
		s.Violin.Palette = o.Violin.Palette
	}
	return s
}

// Validate checks every frame and the scatter stroke width.
func (s Styles) Validate() error {
	frames := []struct {
		table string
		style chart.Style
	}{
		{"genome", s.Genome},
		{"pie", s.Pie.Style},
		{"scatter", s.Scatter.Style},
		{"violin", s.Violin.Style},
	}
	for _, f := range frames {
		if err := f.style.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStyle, err, "[%s]", f.table)
		}
	}
	if s.Scatter.StrokeWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "[scatter] stroke_width must be positive, got %v", s.Scatter.StrokeWidth)
	}
	if s.Scatter.ColorBy < 0 {
		return errors.New(errors.ErrCodeInvalidStyle, "[scatter] color_by must not be negative, got %d", s.Scatter.ColorBy)
	}
	return nil
}
