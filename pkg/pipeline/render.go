package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/chart/genome"
	"github.com/matzehuels/genoviz/pkg/chart/pie"
	"github.com/matzehuels/genoviz/pkg/chart/scatter"
	"github.com/matzehuels/genoviz/pkg/chart/violin"
	"github.com/matzehuels/genoviz/pkg/errors"
	"github.com/matzehuels/genoviz/pkg/mount"
	"github.com/matzehuels/genoviz/pkg/observability"
	"github.com/matzehuels/genoviz/pkg/render"
)

// Geometry returns the serializable layout of c.
func Geometry(c chart.Chart) (any, error) {
	switch v := c.(type) {
	case *genome.Track:
		return v.Geometry(), nil
	case *pie.Chart:
		return v.Geometry(), nil
	case *scatter.Chart:
		return v.Geometry(), nil
	case *violin.Chart:
		return v.Geometry(), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "no geometry for chart kind %s", c.Kind())
}

// Render produces each format for chart c hosted on m.
func Render(ctx context.Context, c chart.Chart, m *mount.Mount, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Kind, opts.Formats)
	start := time.Now()
	artifacts, err := renderFormats(ctx, c, m, opts)
	hooks.OnRenderComplete(ctx, opts.Kind, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, c chart.Chart, m *mount.Mount, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	var svg []byte
	svgOnce := func() []byte {
		if svg == nil {
			svg = c.SVG()
		}
		return svg
	}

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data = svgOnce()
		case FormatHTML:
			data = m.Page(mount.WithTitle(opts.Title))
		case FormatPNG:
			data, err = render.ToPNG(ctx, svgOnce(), DefaultPNGScale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, svgOnce())
		case FormatJSON:
			var geo any
			if geo, err = Geometry(c); err == nil {
				data, err = json.MarshalIndent(geo, "", "  ")
			}
		default:
			err = ValidateFormat(format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
