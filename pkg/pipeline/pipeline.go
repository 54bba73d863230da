// Package pipeline turns raw chart input into rendered artifacts.
//
// The same pipeline backs the CLI, the HTTP render endpoint and server
// sessions, so defaults and validation live here once:
//
//  1. Decode: parse the input bytes with pkg/io for the chart kind
//  2. Build: create the chart on a fresh mount with the configured style
//  3. Render: produce each requested format (svg, html, png, pdf, json)
//
// [Runner] wraps the stages with an artifact cache keyed by input hash and
// render options:
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Kind:    "genome",
//	    Data:    tsv,
//	    Chrom:   "2L",
//	    Min:     1000,
//	    Max:     5000,
//	    Formats: []string{"svg", "html"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/genoviz/pkg/cache"
	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/config"
	"github.com/matzehuels/genoviz/pkg/errors"
	gio "github.com/matzehuels/genoviz/pkg/io"
)

const (
	// DefaultSeed seeds violin jitter when neither options nor style set one.
	DefaultSeed = uint64(42)

	// DefaultPNGScale renders PNGs at twice the SVG size.
	DefaultPNGScale = 2.0
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatHTML: true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentType returns the MIME type of an output format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// ValidateFormat checks that format is an output format. Matching is
// case-sensitive.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (must be one of: svg, html, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks every format.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateKind resolves a chart kind name ("scatter" is accepted for tsne).
func ValidateKind(kind string) (chart.Kind, error) {
	return chart.ParseKind(kind)
}

// Options configures one pipeline run. It is JSON-serializable for API
// requests; Data travels separately.
type Options struct {
	Kind string `json:"kind"`
	// InputFormat is tsv, csv or json. Empty uses the kind's natural
	// format: tsv for genome, json for pie, tsv for tsne and violin.
	InputFormat string `json:"input_format,omitempty"`
	Data        []byte `json:"-"`

	// Genome track range and optional zoom.
	Chrom  string      `json:"chrom,omitempty"`
	Min    float64     `json:"min,omitempty"`
	Max    float64     `json:"max,omitempty"`
	Domain *[2]float64 `json:"domain,omitempty"`

	// Scatter encoding. Nil and zero take the style file values.
	ColorBy     *int    `json:"color_by,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`

	// Violin jitter seed. Zero takes the style file value.
	Seed uint64 `json:"seed,omitempty"`

	Formats []string `json:"formats,omitempty"`
	Title   string   `json:"title,omitempty"`
	// Refresh bypasses cached artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Styles *config.Styles `json:"-"`
	Logger *log.Logger    `json:"-"`

	kind      chart.Kind
	validated bool
}

// ValidateAndSetDefaults checks the options and fills defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	kind, err := ValidateKind(o.Kind)
	if err != nil {
		return err
	}
	o.kind = kind
	o.Kind = string(kind)

	if o.InputFormat == "" {
		o.InputFormat = string(defaultInputFormat(kind))
	}
	if _, err := gio.ParseFormat(o.InputFormat); err != nil {
		return err
	}
	if kind == chart.KindGenome {
		if err := errors.ValidateDomain(o.Min, o.Max); err != nil {
			return err
		}
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = dedupe(o.Formats)
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}

	if o.Styles == nil {
		s := config.DefaultStyles()
		o.Styles = &s
	}
	if o.Seed == 0 {
		o.Seed = o.Styles.Violin.Seed
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.ColorBy == nil {
		cb := o.Styles.Scatter.ColorBy
		o.ColorBy = &cb
	}
	if o.StrokeWidth == 0 {
		o.StrokeWidth = o.Styles.Scatter.StrokeWidth
	}
	if o.Title == "" {
		o.Title = "genoviz " + o.Kind
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ChartKind returns the resolved kind. Valid after ValidateAndSetDefaults.
func (o *Options) ChartKind() chart.Kind { return o.kind }

// ArtifactKeyOpts returns the cache key options for format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch o.kind {
	case chart.KindGenome:
		k.Chrom, k.Min, k.Max = o.Chrom, o.Min, o.Max
		k.Style = o.Styles.Genome
		if o.Domain != nil {
			k.Style = []any{o.Styles.Genome, *o.Domain}
		}
	case chart.KindPie:
		k.Style = o.Styles.Pie
	case chart.KindScatter:
		k.ColorBy, k.StrokeWidth = *o.ColorBy, o.StrokeWidth
		k.Style = o.Styles.Scatter
	case chart.KindViolin:
		k.Seed = o.Seed
		k.Style = o.Styles.Violin
	}
	if format == FormatHTML {
		k.Style = []any{k.Style, o.Title}
	}
	return k
}

func defaultInputFormat(kind chart.Kind) gio.Format {
	if kind == chart.KindPie {
		return gio.FormatJSON
	}
	return gio.FormatTSV
}

func dedupe(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		if !slices.Contains(out, x) {
			out = append(out, x)
		}
	}
	return out
}
