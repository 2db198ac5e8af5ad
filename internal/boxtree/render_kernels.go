package boxtree

import (
	"bytes"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jesseduffield/asciigraph"
)

// FormatTable is the table capability's rendering kernel: spec.md §1
// places the table kernel out of scope as "given cell buffers and data,
// produce glyph grids... the core treats them as pure functions", and
// that's exactly the shape of tabwriter — rows in, aligned columns out,
// nothing about boxes or streams touched here.
func FormatTable(rows [][]string) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		w.Write([]byte(strings.Join(row, "\t") + "\n"))
	}
	w.Flush()
	return strings.TrimRight(buf.String(), "\n")
}

// ChartOptions carries the subset of asciigraph's plot options the chart
// capability exposes in configuration.
type ChartOptions struct {
	Height  int
	Width   int
	Caption string
}

// FormatChart is the chart capability's rendering kernel: a numeric
// series in, a glyph grid out, via the pack's own asciigraph library.
func FormatChart(series []float64, opts ChartOptions) string {
	var plotOpts []asciigraph.Option
	if opts.Height > 0 {
		plotOpts = append(plotOpts, asciigraph.Height(opts.Height))
	}
	if opts.Width > 0 {
		plotOpts = append(plotOpts, asciigraph.Width(opts.Width))
	}
	if opts.Caption != "" {
		plotOpts = append(plotOpts, asciigraph.Caption(opts.Caption))
	}
	return asciigraph.Plot(series, plotOpts...)
}

// ParseSeries turns a script's line-oriented numeric output (one value
// per line, as a script emitting chart data would produce) into a
// series for FormatChart. Non-numeric lines are skipped rather than
// failing the whole series, since a script's stderr commonly interleaves
// with its stdout in the non-streaming capture path.
func ParseSeries(lines []string) []float64 {
	out := make([]float64, 0, len(lines))
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		v, err := strconv.ParseFloat(l, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
