package cli

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/genoviz/pkg/chart"
	"github.com/matzehuels/genoviz/pkg/chart/genome"
	"github.com/matzehuels/genoviz/pkg/chart/pie"
	"github.com/matzehuels/genoviz/pkg/chart/scatter"
	"github.com/matzehuels/genoviz/pkg/chart/violin"
	"github.com/matzehuels/genoviz/pkg/interact"
	gio "github.com/matzehuels/genoviz/pkg/io"
	"github.com/matzehuels/genoviz/pkg/mount"
	"github.com/matzehuels/genoviz/pkg/pipeline"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

const (
	// maxColumnWidth caps table column widths; longer cells are truncated.
	maxColumnWidth = 24
	// maxPatchLines caps the patch log shown under the table.
	maxPatchLines = 8
)

// inspectCommand creates the inspect command that opens a chart in the
// terminal and drives its interactions from the keyboard.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		input     string
		styleFile string
		colorBy   int
	)
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "inspect <kind> <file>",
		Short: "Explore a chart's elements and interactions in the terminal",
		Long: `Explore a chart's elements and interactions in the terminal.

Every feature, slice, point or violin is listed. Select one and press enter
to hover or click it; the resulting DOM patches and callback record are
shown below the table. Genome tracks also zoom to the selected feature.`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: completeKindAndFile,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Kind = args[0]
			if cmd.Flags().Changed("color-by") {
				opts.ColorBy = &colorBy
			}
			styles, err := loadStyles(styleFile)
			if err != nil {
				return err
			}
			opts.Styles = styles
			opts.InputFormat = input
			if input == "" && opts.Kind != "pie" {
				opts.InputFormat = string(gio.FormatFromPath(args[1]))
			}
			if opts.Data, err = os.ReadFile(args[1]); err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}
			return runInspect(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "input format: tsv, csv, json (default from file extension)")
	cmd.Flags().StringVar(&styleFile, "style-file", "", "TOML style file")
	cmd.Flags().StringVar(&opts.Chrom, "chrom", "", "chromosome name (genome)")
	cmd.Flags().Float64Var(&opts.Min, "min", 0, "track start coordinate (genome)")
	cmd.Flags().Float64Var(&opts.Max, "max", 0, "track end coordinate (genome)")
	cmd.Flags().IntVar(&colorBy, "color-by", 2, "column holding the color category (tsne)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "jitter seed (violin)")

	return cmd
}

func runInspect(ctx context.Context, opts pipeline.Options) error {
	m, err := newInspectModel(ctx, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}

// =============================================================================
// inspectModel - Interactive chart explorer
// =============================================================================

// inspectModel is the bubbletea model for exploring one chart.
type inspectModel struct {
	chart chart.Chart
	tbl   table.Model

	// patches are the DOM changes from the last action.
	patches []interact.Patch
	// record is written by the chart's click and leave callbacks.
	record *chart.Record
	status string
	err    error
}

// newInspectModel builds the chart described by opts on a detached mount.
func newInspectModel(ctx context.Context, opts pipeline.Options) (inspectModel, error) {
	record := new(chart.Record)
	capture := func(r chart.Record) { *record = r }

	c, _, err := pipeline.Build(ctx, mount.New(appName), opts, pipeline.Callbacks{
		OnClick: capture,
		OnLeave: capture,
	})
	if err != nil {
		return inspectModel{}, err
	}
	return inspectModel{
		chart:  c,
		tbl:    newElementTable(chartRows(c)),
		record: record,
	}, nil
}

// newElementTable sizes each column to its widest cell.
func newElementTable(headers []string, rows [][]string) table.Model {
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		w := len(h)
		for _, r := range rows {
			w = max(w, len(r[i]))
		}
		cols[i] = table.Column{Title: h, Width: min(w+2, maxColumnWidth)}
	}
	trows := make([]table.Row, len(rows))
	for i, r := range rows {
		trows[i] = table.Row(r)
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorDim).
		BorderBottom(true).
		Foreground(colorGray).
		Bold(true)
	styles.Selected = listSelectedStyle

	return table.New(
		table.WithColumns(cols),
		table.WithRows(trows),
		table.WithFocused(true),
		table.WithHeight(15),
		table.WithStyles(styles),
	)
}

// chartRows tabulates the interactive elements of c.
func chartRows(c chart.Chart) ([]string, [][]string) {
	var rows [][]string
	switch c := c.(type) {
	case *genome.Track:
		for _, f := range c.Features() {
			rows = append(rows, []string{f.Name, f.Type.String(), fmtNum(f.Start), fmtNum(f.End), string(f.Strand)})
		}
		return []string{"Name", "Feature", "Start", "End", "Strand"}, rows
	case *pie.Chart:
		for i, e := range c.Counts() {
			rows = append(rows, []string{e.Label, fmtNum(e.Value), fmt.Sprintf("%.1f%%", c.Percent(i))})
		}
		return []string{"Category", "Count", "Share"}, rows
	case *scatter.Chart:
		for i, r := range c.Records() {
			p := c.Point(i)
			rows = append(rows, []string{strconv.Itoa(i), fmtNum(p.X), fmtNum(p.Y), strings.Join(r[min(2, len(r)):], " ")})
		}
		return []string{"#", "X", "Y", "Columns"}, rows
	case *violin.Chart:
		for _, g := range c.Groups() {
			rows = append(rows, []string{g.Key, strconv.Itoa(len(g.Values))})
		}
		return []string{"Category", "Values"}, rows
	}
	return nil, nil
}

func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter", " ":
			return m.apply(m.activate), nil
		case "x", "backspace":
			return m.apply(m.deactivate), nil
		case "z":
			return m.apply(m.zoom), nil
		case "r":
			return m.apply(m.reset), nil
		}
	case tea.WindowSizeMsg:
		m.tbl.SetHeight(max(msg.Height-12, 5))
		return m, nil
	}
	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

// apply runs an action on the selected element and records its outcome.
func (m inspectModel) apply(action func(int) ([]interact.Patch, string, error)) inspectModel {
	if len(m.tbl.Rows()) == 0 {
		return m
	}
	*m.record = nil
	patches, status, err := action(m.tbl.Cursor())
	m.patches, m.status, m.err = patches, status, err
	return m
}

func (m inspectModel) activate(i int) ([]interact.Patch, string, error) {
	switch c := m.chart.(type) {
	case *genome.Track:
		p, err := c.Hover(i)
		return p, "hover", err
	case *pie.Chart:
		p, err := c.Hover(i)
		return p, "hover: " + c.Tooltip().Content(), err
	case *scatter.Chart:
		p, err := c.Click(i)
		return p, "click", err
	case *violin.Chart:
		p, err := c.Click(i)
		return p, "click", err
	}
	return nil, "", nil
}

func (m inspectModel) deactivate(i int) ([]interact.Patch, string, error) {
	switch c := m.chart.(type) {
	case *genome.Track:
		p, err := c.Unhover(i)
		return p, "unhover", err
	case *pie.Chart:
		p, err := c.Unhover(i)
		return p, "unhover", err
	case *scatter.Chart:
		p, err := c.Leave(i)
		return p, "leave", err
	case *violin.Chart:
		p, err := c.Leave(i)
		return p, "leave", err
	}
	return nil, "", nil
}

// zoom narrows a genome track to the selected feature with a tenth of its
// length as padding either side.
func (m inspectModel) zoom(i int) ([]interact.Patch, string, error) {
	t, ok := m.chart.(*genome.Track)
	if !ok {
		return nil, "zoom is only available for genome tracks", nil
	}
	f := t.Features()[i]
	lo, hi := math.Min(f.Start, f.End), math.Max(f.Start, f.End)
	pad := (hi - lo) / 10
	if pad == 0 {
		pad = 1
	}
	start, end := t.Extent()
	lo, hi = math.Max(start, lo-pad), math.Min(end, hi+pad)
	p, err := t.ZoomTo(lo, hi)
	return p, fmt.Sprintf("zoom %s-%s", fmtNum(lo), fmtNum(hi)), err
}

func (m inspectModel) reset(int) ([]interact.Patch, string, error) {
	t, ok := m.chart.(*genome.Track)
	if !ok {
		return nil, "reset is only available for genome tracks", nil
	}
	p, err := t.ZoomTo(t.Extent())
	return p, "reset zoom", err
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Inspect %s", m.chart.Kind())))
	if t, ok := m.chart.(*genome.Track); ok {
		lo, hi := t.Domain()
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s:%s-%s", t.Chrom(), fmtNum(lo), fmtNum(hi))))
	}
	b.WriteString("\n")
	help := "↑/↓ navigate  ⏎ activate  x release  q quit"
	if m.chart.Kind() == chart.KindGenome {
		help = "↑/↓ navigate  ⏎ hover  x unhover  z zoom  r reset  q quit"
	}
	b.WriteString(listDimStyle.Render(help))
	b.WriteString("\n\n")

	b.WriteString(m.tbl.View())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.tbl.Cursor()+1, len(m.tbl.Rows()))))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error())
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(StyleHighlight.Render(m.status))
		b.WriteString("\n")
	}
	if len(*m.record) > 0 {
		b.WriteString(StyleSuccess.Render("record: "))
		b.WriteString(StyleValue.Render(strings.Join(*m.record, ", ")))
		b.WriteString("\n")
	}
	for i, p := range m.patches {
		if i == maxPatchLines {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  … %d more", len(m.patches)-i)))
			b.WriteString("\n")
			break
		}
		value := p.Value
		if p.Attr == interact.AttrMarkup {
			value = fmt.Sprintf("<%d bytes>", len(p.Value))
		}
		line := fmt.Sprintf("  #%s %s=%s", p.Target, p.Attr, value)
		if p.Duration > 0 {
			line += listDimStyle.Render(fmt.Sprintf(" (%s)", p.Duration))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
