package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/chart/genome"
	"github.com/matzehuels/genoviz/pkg/chart/pie"
	"github.com/matzehuels/genoviz/pkg/chart/scatter"
	"github.com/matzehuels/genoviz/pkg/chart/violin"
	gio "github.com/matzehuels/genoviz/pkg/io"
	"github.com/matzehuels/genoviz/pkg/mount"
	"github.com/matzehuels/genoviz/pkg/observability"
	"github.com/matzehuels/genoviz/pkg/scale"
)

// Callbacks are the record callbacks handed to scatter and violin charts.
// Genome and pie charts ignore them.
type Callbacks struct {
	OnClick chart.Callback
	OnLeave chart.Callback
}

// Build decodes opts.Data and creates the chart on m. It returns the chart
// and the number of input rows.
func Build(ctx context.Context, m *mount.Mount, opts Options, cb Callbacks) (chart.Chart, int, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, 0, err
	}
	if cb.OnClick == nil {
		cb.OnClick = chart.Noop
	}
	if cb.OnLeave == nil {
		cb.OnLeave = chart.Noop
	}
	format := gio.Format(opts.InputFormat)
	r := bytes.NewReader(opts.Data)
	styles := opts.Styles
	hooks := observability.Pipeline()

	hooks.OnDecodeStart(ctx, opts.Kind, opts.InputFormat)
	start := time.Now()
	var (
		c    chart.Chart
		rows int
		err  error
	)
	switch opts.kind {
	case chart.KindGenome:
		var features []genome.Feature
		if features, err = gio.ReadFeatures(r, format); err != nil {
			break
		}
		rows = len(features)
		var t *genome.Track
		if t, err = genome.Create(m, opts.Chrom, opts.Min, opts.Max, features, genome.WithStyle(styles.Genome)); err != nil {
			break
		}
		if opts.Domain != nil {
			_, err = t.ZoomTo(opts.Domain[0], opts.Domain[1])
		}
		c = t

	case chart.KindPie:
		var counts pie.Counts
		if counts, err = gio.ReadCounts(r, format); err != nil {
			break
		}
		rows = len(counts)
		c, err = pie.Create(m, nil, counts,
			pie.WithStyle(styles.Pie.Style), pie.WithLabelSize(styles.Pie.LabelSize))

	case chart.KindScatter:
		var records []chart.Record
		if records, err = gio.ReadRecords(r, format); err != nil {
			break
		}
		rows = len(records)
		so := []scatter.Option{
			scatter.WithColorBy(*opts.ColorBy),
			scatter.WithStrokeWidth(opts.StrokeWidth),
			scatter.WithOnClick(cb.OnClick),
			scatter.WithOnLeave(cb.OnLeave),
		}
		if len(styles.Scatter.Palette) > 0 {
			so = append(so, scatter.WithColorScale(scale.NewOrdinal(styles.Scatter.Palette)))
		}
		c, err = scatter.Create(m, records, styles.Scatter.Style, so...)

	case chart.KindViolin:
		var records []chart.Record
		if records, err = gio.ReadRecords(r, format); err != nil {
			break
		}
		rows = len(records)
		vo := []violin.Option{
			violin.WithSeed(opts.Seed),
			violin.WithOnClick(cb.OnClick),
			violin.WithOnLeave(cb.OnLeave),
		}
		if len(styles.Violin.Palette) > 0 {
			vo = append(vo, violin.WithColorScale(scale.NewOrdinal(styles.Violin.Palette)))
		}
		c, err = violin.Create(m, records, styles.Violin.Style, vo...)
	}
	hooks.OnDecodeComplete(ctx, opts.Kind, opts.InputFormat, rows, time.Since(start), err)
	if err != nil {
		return nil, rows, err
	}
	return c, rows, nil
}
