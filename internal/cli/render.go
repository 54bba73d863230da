package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/errors"
	gio "github.com/matzehuels/genoviz/pkg/io"
	"github.com/matzehuels/genoviz/pkg/pipeline"
)

// renderFlags holds the flags shared by every render subcommand.
type renderFlags struct {
	output    string // output file (single format) or base path (multiple)
	formats   string // comma-separated output formats
	input     string // input format override: tsv, csv, json
	styleFile string // TOML style file
	title     string // HTML page title
	noCache   bool   // bypass the artifact cache entirely
	refresh   bool   // re-render and overwrite cached artifacts
}

// renderCommand creates the render command with one subcommand per chart
// kind.
func (c *CLI) renderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a chart from an input file",
		Long: `Render a chart from an input file.

Each chart kind has its own subcommand and input:

  genome  features: start, end, strand, feature[, name] (TSV or JSON array)
  pie     counts: a JSON object of label to count, or label/count rows
  tsne    cells: x, y and further columns; --color-by picks the color column
  violin  cells: the category in column 3, the value in the last column

Results are cached locally for faster subsequent runs.`,
	}

	cmd.AddCommand(c.renderGenomeCommand())
	cmd.AddCommand(c.renderPieCommand())
	cmd.AddCommand(c.renderScatterCommand())
	cmd.AddCommand(c.renderViolinCommand())

	return cmd
}

func addRenderFlags(cmd *cobra.Command, f *renderFlags) {
	cmd.ValidArgsFunction = completeInputFile
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), html, png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&f.input, "input", "", "input format: tsv, csv, json (default from file extension)")
	cmd.Flags().StringVar(&f.styleFile, "style-file", "", "TOML style file")
	cmd.Flags().StringVar(&f.title, "title", "", "HTML page title")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "re-render even when cached")
}

func (c *CLI) renderGenomeCommand() *cobra.Command {
	var (
		f    renderFlags
		zoom string
	)
	opts := pipeline.Options{Kind: "genome"}

	cmd := &cobra.Command{
		Use:   "genome [features.tsv]",
		Short: "Render a genome feature track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if zoom != "" {
				d, err := parseZoom(zoom)
				if err != nil {
					return err
				}
				opts.Domain = &d
			}
			return c.runRender(cmd.Context(), args[0], opts, f)
		},
	}
	addRenderFlags(cmd, &f)
	cmd.Flags().StringVar(&opts.Chrom, "chrom", "", "chromosome name")
	cmd.Flags().Float64Var(&opts.Min, "min", 0, "track start coordinate")
	cmd.Flags().Float64Var(&opts.Max, "max", 0, "track end coordinate")
	cmd.Flags().StringVar(&zoom, "zoom", "", "initial visible window as lo,hi")
	cmd.MarkFlagRequired("max")
	return cmd
}

func (c *CLI) renderPieCommand() *cobra.Command {
	var f renderFlags
	opts := pipeline.Options{Kind: "pie"}

	cmd := &cobra.Command{
		Use:   "pie [counts.json]",
		Short: "Render a pie chart of category counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts, f)
		},
	}
	addRenderFlags(cmd, &f)
	return cmd
}

func (c *CLI) renderScatterCommand() *cobra.Command {
	var (
		f       renderFlags
		colorBy int
	)
	opts := pipeline.Options{Kind: "tsne"}

	cmd := &cobra.Command{
		Use:     "tsne [cells.tsv]",
		Aliases: []string{"scatter"},
		Short:   "Render a t-SNE scatter plot",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("color-by") {
				opts.ColorBy = &colorBy
			}
			return c.runRender(cmd.Context(), args[0], opts, f)
		},
	}
	addRenderFlags(cmd, &f)
	cmd.Flags().IntVar(&colorBy, "color-by", 2, "column holding the color category")
	cmd.Flags().Float64Var(&opts.StrokeWidth, "stroke-width", 0, "point stroke width (default from style)")
	return cmd
}

func (c *CLI) renderViolinCommand() *cobra.Command {
	var f renderFlags
	opts := pipeline.Options{Kind: "violin"}

	cmd := &cobra.Command{
		Use:   "violin [cells.tsv]",
		Short: "Render a violin plot with jittered points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts, f)
		},
	}
	addRenderFlags(cmd, &f)
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "jitter seed (default from style, then 42)")
	return cmd
}

// parseZoom parses a "lo,hi" window.
func parseZoom(s string) ([2]float64, error) {
	lo, hi, ok := strings.Cut(s, ",")
	if !ok {
		return [2]float64{}, errors.New(errors.ErrCodeInvalidRange, "zoom %q must be lo,hi", s)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return [2]float64{}, errors.Wrap(errors.ErrCodeInvalidRange, err, "zoom %q", s)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return [2]float64{}, errors.Wrap(errors.ErrCodeInvalidRange, err, "zoom %q", s)
	}
	if err := errors.ValidateDomain(a, b); err != nil {
		return [2]float64{}, err
	}
	return [2]float64{a, b}, nil
}

// runRender reads input and runs it through the cached pipeline.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, f renderFlags) error {
	logger := loggerFromContext(ctx)

	opts.Formats = parseFormats(f.formats)
	if err := pipeline.ValidateFormats(opts.Formats); err != nil {
		return err
	}
	styles, err := loadStyles(f.styleFile)
	if err != nil {
		return err
	}
	opts.Styles = styles
	opts.Title = f.title
	opts.Refresh = f.refresh
	opts.Logger = logger

	opts.InputFormat = f.input
	if opts.InputFormat == "" && opts.Kind != "pie" {
		opts.InputFormat = string(gio.FormatFromPath(input))
	}
	if opts.Data, err = os.ReadFile(input); err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}

	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	watch := startStopwatch(logger, "kind", opts.Kind, "input", input)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", opts.Kind))
	restore := followStages(spinner)
	spinner.Start()
	res, err := runner.Execute(ctx, opts)
	restore()
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spinner.Stop()
	watch.done("rendered", "rows", res.Stats.Rows, "cached", res.CacheInfo.RenderHit)

	return writeArtifacts(artifactWriteParams{
		kind:      res.Kind,
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    f.output,
		rows:      res.Stats.Rows,
		cacheHit:  res.CacheInfo.RenderHit,
		extraArgs: inspectArgs(res.Kind, opts),
	})
}

// artifactWriteParams describes rendered artifacts and where they go.
type artifactWriteParams struct {
	kind      chart.Kind
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	rows      int
	cacheHit  bool
	extraArgs string // flags repeated in the suggested inspect command
}

// writeArtifacts writes one file per format. A single format goes to output
// verbatim; several formats share output (or the input name) as base path.
func writeArtifacts(p artifactWriteParams) error {
	if p.output == "-" {
		if len(p.formats) != 1 {
			return fmt.Errorf("stdout output needs exactly one format, got %d", len(p.formats))
		}
		_, err := os.Stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	printSuccess("Rendered %s", filepath.Base(p.input))
	printStats(p.kind, p.rows, p.cacheHit)
	base := basePath(p.output, p.input)
	for _, format := range p.formats {
		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeFile(path, p.artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	if p.kind != "" {
		printNextStep("Explore interactively", fmt.Sprintf("%s inspect %s %s%s", appName, p.kind, p.input, p.extraArgs))
	}
	return nil
}

// inspectArgs returns the flags inspect needs to rebuild the same chart.
func inspectArgs(kind chart.Kind, opts pipeline.Options) string {
	if kind != chart.KindGenome {
		return ""
	}
	return fmt.Sprintf(" --chrom %s --min %v --max %v", opts.Chrom, opts.Min, opts.Max)
}

func writeFile(path string, data []byte) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .html, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
